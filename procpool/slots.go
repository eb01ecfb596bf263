/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package procpool

import (
	"context"
	"net"
	"sync"

	libsem "github.com/nabbar/httpd10/semaphore"
)

// slotState is one state of the per-slot state machine: FREE ->
// OCCUPIED (accepted) -> HANDED_OFF (fd transferred to a worker) ->
// FREE (worker signals completion).
type slotState uint8

const (
	slotFree slotState = iota
	slotOccupied
	slotHandedOff
)

type slot struct {
	state slotState
	conn  *net.TCPConn
	addr  string
}

// slotTable is the parent-side registry of up to Config.MaxClients
// in-flight client connections. The count is bounded twice over: the
// fixed-size slots array is the state machine's bookkeeping, and sem
// is the semaphore.Sem weighted pool that actually refuses the
// (MaxClients+1)th acquire instead of merely running out of array
// slots to scan.
type slotTable struct {
	mu    sync.Mutex
	slots []slot
	sem   libsem.Sem
}

func newSlotTable(n int, progress bool) *slotTable {
	return &slotTable{
		slots: make([]slot, n),
		sem:   libsem.New(context.Background(), int64(n), progress),
	}
}

// acquire finds a FREE slot, marks it OCCUPIED and stores conn, and
// returns its index. ok is false when the semaphore is already at
// MaxClients.
func (t *slotTable) acquire(conn *net.TCPConn) (idx int, ok bool) {
	if !t.sem.NewWorkerTry() {
		return 0, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.slots {
		if t.slots[i].state == slotFree {
			addr := ""
			if ra := conn.RemoteAddr(); ra != nil {
				addr = ra.String()
			}
			t.slots[i] = slot{state: slotOccupied, conn: conn, addr: addr}
			return i, true
		}
	}

	t.sem.DeferWorker()
	return 0, false
}

// handoff transitions idx from OCCUPIED to HANDED_OFF.
func (t *slotTable) handoff(idx int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots[idx].state = slotHandedOff
}

// release transitions idx back to FREE, returning the connection that
// occupied it so the caller can close it if still open, and frees the
// matching semaphore slot.
func (t *slotTable) release(idx int) *net.TCPConn {
	t.mu.Lock()
	defer t.mu.Unlock()

	c := t.slots[idx].conn
	if t.slots[idx].state != slotFree {
		t.sem.DeferWorker()
	}
	t.slots[idx] = slot{}
	return c
}

// releaseOneHandedOff frees the first HANDED_OFF slot it finds and
// returns its connection, used when the exit pipe reports a worker is
// done but not which slot it served (the parent frees the
// lowest-indexed HANDED_OFF slot, which need not be the one served).
func (t *slotTable) releaseOneHandedOff() (*net.TCPConn, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.slots {
		if t.slots[i].state == slotHandedOff {
			c := t.slots[i].conn
			t.slots[i] = slot{}
			t.sem.DeferWorker()
			return c, true
		}
	}
	return nil, false
}

// occupiedConns returns every connection still tracked by the table,
// used by Shutdown to close whatever is left.
func (t *slotTable) occupiedConns() []*net.TCPConn {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []*net.TCPConn
	for _, s := range t.slots {
		if s.conn != nil {
			out = append(out, s.conn)
		}
	}
	return out
}
