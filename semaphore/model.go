/*
 * MIT License
 *
 * Copyright (c) 2019 Nicolas JUHEL
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

package semaphore

import (
	"context"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"golang.org/x/sync/semaphore"
)

type sem struct {
	context.Context

	n   int64
	w   *semaphore.Weighted
	mpb *mpb.Progress

	mut sync.Mutex
}

func newSem(ctx context.Context, n int64, withProgress bool) *sem {
	if ctx == nil {
		ctx = context.Background()
	}

	s := &sem{
		Context: ctx,
		n:       n,
	}

	if n > 0 {
		s.w = semaphore.NewWeighted(n)
	}

	if withProgress {
		s.mpb = mpb.NewWithContext(ctx)
	}

	return s
}

func (s *sem) New() Sem {
	return newSemSharingMPB(s.Context, s.n, s.mpb)
}

func (s *sem) Clone() Sem {
	return s.New()
}

func newSemSharingMPB(ctx context.Context, n int64, p *mpb.Progress) *sem {
	s := &sem{Context: ctx, n: n, mpb: p}
	if n > 0 {
		s.w = semaphore.NewWeighted(n)
	}
	return s
}

func (s *sem) NewWorker() error {
	if s.w == nil {
		return nil
	}
	return s.w.Acquire(s.Context, 1)
}

func (s *sem) NewWorkerTry() bool {
	if s.w == nil {
		return true
	}
	return s.w.TryAcquire(1)
}

func (s *sem) DeferWorker() {
	if s.w == nil {
		return
	}
	s.w.Release(1)
}

func (s *sem) WaitAll() error {
	if s.w == nil {
		return nil
	}
	if s.n <= 0 {
		return nil
	}
	if err := s.w.Acquire(s.Context, s.n); err != nil {
		return err
	}
	s.w.Release(s.n)
	return nil
}

func (s *sem) DeferMain() {
	s.mut.Lock()
	defer s.mut.Unlock()

	if s.mpb != nil {
		s.mpb.Wait()
	}
}

func (s *sem) Weighted() int64 {
	if s.n <= 0 {
		return -1
	}
	return s.n
}

func (s *sem) GetMPB() interface{} {
	if s.mpb == nil {
		return nil
	}
	return s.mpb
}

func (s *sem) BarBytes(title, msg string, total int64, drop bool, queue Bar) Bar {
	return newBar(s, total, drop, barKindBytes, title, msg, queue)
}

func (s *sem) BarTime(title, msg string, total int64, drop bool, queue Bar) Bar {
	return newBar(s, total, drop, barKindTime, title, msg, queue)
}

func (s *sem) BarNumber(title, msg string, total int64, drop bool, queue Bar) Bar {
	return newBar(s, total, drop, barKindNumber, title, msg, queue)
}

func (s *sem) BarOpts(total int64, drop bool) Bar {
	return newBar(s, total, drop, barKindNumber, "", "", nil)
}
