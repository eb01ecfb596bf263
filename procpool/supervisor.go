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
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/nabbar/httpd10/ipcsem"
	liblog "github.com/nabbar/httpd10/logger"
	loglvl "github.com/nabbar/httpd10/logger/level"
	errpool "github.com/nabbar/httpd10/errors/pool"
)

// supervisor is the parent-side implementation of Supervisor. It owns
// the listening socket, the handoff socket pair, the exit pipe, and
// the fixed worker pool, mirroring how the teacher's socket/server
// packages split "own the listener" from "serve one connection" -
// here the serving half runs in a separate OS process instead of a
// goroutine, since workers must be able to crash independently.
type supervisor struct {
	cfg Config

	ln *net.TCPListener

	handoffParent int // fd kept by the parent
	handoffChild  *os.File // inherited end, duplicated into every worker

	exitRead  *os.File
	exitWrite *os.File // inherited end, duplicated into every worker

	semWrite ipcsem.Semaphore
	semRead  ipcsem.Semaphore
	semPipe  ipcsem.Semaphore

	mu      sync.Mutex
	workers map[int]*exec.Cmd

	slots *slotTable

	shutdown chan struct{}
	once     sync.Once

	log liblog.Logger
}

func newSupervisor(cfg Config) *supervisor {
	return &supervisor{
		cfg:      cfg,
		workers:  make(map[int]*exec.Cmd),
		slots:    newSlotTable(cfg.MaxClients, cfg.Progress),
		shutdown: make(chan struct{}),
		log:      cfg.logger(),
	}
}

func (s *supervisor) Start() error {
	ln, err := net.Listen(s.cfg.Network, s.cfg.ListenAddr)
	if err != nil {
		return s.log.CheckError(loglvl.ErrorLevel, loglvl.NilLevel, "listen", ErrorListen.Error(err))
	}
	tln, ok := ln.(*net.TCPListener)
	if !ok {
		_ = ln.Close()
		return ErrorListen.Error(nil)
	}
	s.ln = tln

	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return ErrorSocketPair.Error(err)
	}
	s.handoffParent = fds[0]
	s.handoffChild = os.NewFile(uintptr(fds[1]), "handoff-child")

	r, w, err := os.Pipe()
	if err != nil {
		return ErrorExitPipe.Error(err)
	}
	s.exitRead = r
	s.exitWrite = w

	if s.semWrite, err = ipcsem.New(s.cfg.SemDir, s.cfg.SemWriteName); err != nil {
		return ErrorSemaphore.Error(err)
	}
	if s.semRead, err = ipcsem.New(s.cfg.SemDir, s.cfg.SemReadName); err != nil {
		return ErrorSemaphore.Error(err)
	}
	if s.semPipe, err = ipcsem.New(s.cfg.SemDir, s.cfg.SemPipeName); err != nil {
		return ErrorSemaphore.Error(err)
	}

	for i := 0; i < s.cfg.WorkerCount; i++ {
		if err = s.forkWorker(); err != nil {
			return err
		}
	}

	s.log.Info("listening", liblog.Fields{"addr": s.cfg.ListenAddr, "workers": s.cfg.WorkerCount})

	return nil
}

// forkWorker execs a fresh worker process, inheriting the handoff
// socket's child end and the exit pipe's write end as fd 3 and 4. Go
// cannot fork() a running process and keep goroutines consistent, so
// every worker is a freshly exec'd copy of the same binary invoked
// with the hidden worker subcommand, per the teacher's own preference
// for os/exec over cgo-level process primitives.
func (s *supervisor) forkWorker() error {
	args := append([]string{"worker"}, s.cfg.WorkerArgs...)
	cmd := exec.Command(s.cfg.WorkerBinary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.ExtraFiles = []*os.File{s.handoffChild, s.exitWrite}

	if err := cmd.Start(); err != nil {
		return s.log.CheckError(loglvl.ErrorLevel, loglvl.NilLevel, "fork worker", ErrorForkWorker.Error(err))
	}

	s.mu.Lock()
	s.workers[cmd.Process.Pid] = cmd
	s.mu.Unlock()

	s.log.Info("worker forked", liblog.Fields{"pid": cmd.Process.Pid})

	return nil
}

// Run polls the listen socket, the exit pipe, and accepts connections
// until ctx is done.
func (s *supervisor) Run(ctx context.Context) error {
	go s.reapLoop(ctx)
	go s.exitSignalLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.shutdown:
			return nil
		default:
		}

		_ = s.ln.SetDeadline(time.Now().Add(200 * time.Millisecond))
		conn, err := s.ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-ctx.Done():
				return nil
			default:
				continue
			}
		}

		tconn, ok := conn.(*net.TCPConn)
		if !ok {
			_ = conn.Close()
			continue
		}

		idx, ok := s.slots.acquire(tconn)
		if !ok {
			_ = tconn.Close()
			continue
		}

		s.handOff(idx, tconn)
	}
}

// handOff sends the accepted connection's file descriptor to exactly
// one worker, serialized by the write semaphore, and marks the slot
// HANDED_OFF so Run never hands the same fd out twice.
func (s *supervisor) handOff(idx int, conn *net.TCPConn) {
	f, err := conn.File()
	if err != nil {
		s.log.Warning("handoff: duplicate client fd", err)
		s.slots.release(idx)
		return
	}
	defer f.Close()

	if err = s.semWrite.Lock(context.Background()); err != nil {
		s.slots.release(idx)
		return
	}

	err = sendFD(s.handoffParent, int(f.Fd()))
	_ = s.semWrite.Unlock()

	if err != nil {
		s.log.CheckError(loglvl.ErrorLevel, loglvl.NilLevel, "handoff: send fd", ErrorHandoffSend.Error(err))
		s.slots.release(idx)
		return
	}

	s.slots.handoff(idx)
}

// exitSignalLoop reads one byte at a time off the exit pipe and frees
// the lowest-indexed HANDED_OFF slot per byte, closing its connection.
// Reaping and reforking workers is left to reapLoop.
func (s *supervisor) exitSignalLoop(ctx context.Context) {
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.shutdown:
			return
		default:
		}

		_ = s.exitRead.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		if _, err := s.exitRead.Read(buf); err != nil {
			continue
		}

		if conn, ok := s.slots.releaseOneHandedOff(); ok && conn != nil {
			_ = conn.Close()
		}
	}
}

// reapLoop periodically reaps exited worker pids via a non-blocking
// wait and forks replacements until WorkerCount is restored.
func (s *supervisor) reapLoop(ctx context.Context) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.shutdown:
			return
		case <-ticker.C:
			s.reapExited()
		}
	}
}

func (s *supervisor) reapExited() {
	s.mu.Lock()
	var dead []int
	for pid, cmd := range s.workers {
		var ws syscall.WaitStatus
		p, err := syscall.Wait4(pid, &ws, syscall.WNOHANG, nil)
		if err == nil && p == pid {
			dead = append(dead, pid)
			_ = cmd
		}
	}
	for _, pid := range dead {
		delete(s.workers, pid)
		s.log.Warning("worker exited", liblog.Fields{"pid": pid})
	}
	missing := s.cfg.WorkerCount - len(s.workers)
	s.mu.Unlock()

	for i := 0; i < missing; i++ {
		_ = s.forkWorker()
	}
}

// Shutdown closes the listen socket, every tracked client connection,
// terminates each worker, and releases the handoff pair, exit pipe and
// named semaphores. Every close and signal error encountered along the
// way is collected in an errors/pool.Pool instead of being discarded,
// the way the teacher's own multi-resource teardown paths report a
// combined failure rather than only the first one. Errors from waiting
// on the terminated workers are logged, not collected.
func (s *supervisor) Shutdown() error {
	s.once.Do(func() { close(s.shutdown) })

	errs := errpool.New()

	if s.ln != nil {
		errs.Add(s.ln.Close())
	}

	for _, c := range s.slots.occupiedConns() {
		errs.Add(c.Close())
	}

	s.mu.Lock()
	for _, cmd := range s.workers {
		if cmd.Process != nil {
			errs.Add(cmd.Process.Signal(syscall.SIGTERM))
		}
	}
	for pid, cmd := range s.workers {
		if err := cmd.Wait(); err != nil {
			s.log.Warning("worker wait", liblog.Fields{"pid": pid, "err": err.Error()})
		}
	}
	s.mu.Unlock()

	if s.handoffChild != nil {
		errs.Add(s.handoffChild.Close())
	}
	if s.handoffParent != 0 {
		errs.Add(unix.Close(s.handoffParent))
	}
	if s.exitRead != nil {
		errs.Add(s.exitRead.Close())
	}
	if s.exitWrite != nil {
		errs.Add(s.exitWrite.Close())
	}

	for _, sem := range []ipcsem.Semaphore{s.semWrite, s.semRead, s.semPipe} {
		if sem != nil {
			errs.Add(sem.Close())
		}
	}

	s.log.Info("shutdown complete", liblog.Fields{"errors": errs.Len()})

	if err := errs.Error(); err != nil {
		return err
	}

	return nil
}
