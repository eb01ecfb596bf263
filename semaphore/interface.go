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

// Package semaphore bounds in-process concurrency with a weighted slot pool,
// optionally rendered as an mpb progress bar fleet. procpool/slots uses this
// to cap the number of client connections handed off to workers at once.
package semaphore

import (
	"context"
	"runtime"
)

// Sem is a weighted worker-slot pool. It embeds context.Context so callers
// can pass a Sem anywhere a deadline-aware context is expected.
type Sem interface {
	context.Context

	// New returns a fresh Sem sharing the same weight and MPB container.
	New() Sem
	// Clone is an alias of New kept for parity with the teacher's API.
	Clone() Sem

	NewWorker() error
	NewWorkerTry() bool
	DeferWorker()
	WaitAll() error
	DeferMain()

	Weighted() int64
	GetMPB() interface{}

	BarBytes(title, msg string, total int64, drop bool, queue Bar) Bar
	BarTime(title, msg string, total int64, drop bool, queue Bar) Bar
	BarNumber(title, msg string, total int64, drop bool, queue Bar) Bar
	BarOpts(total int64, drop bool) Bar
}

// Bar is a progress indicator tied to a Sem's worker pool. Bar.NewWorker /
// Bar.DeferWorker acquire/release a slot the same way Sem's do, additionally
// advancing the bar by one unit on release.
type Bar interface {
	NewWorker() error
	DeferWorker()

	Inc(n int)
	Inc64(n int64)
	Dec64(n int64)

	Total() int64
	Current() int64
	Completed() bool
	Complete()

	GetMPB() interface{}
}

// New returns a Sem bounding n simultaneous workers. n <= 0 means unlimited
// (Weighted() reports -1). withProgress wires an mpb.Progress container so
// Bar* constructors render real progress bars instead of no-ops.
func New(ctx context.Context, n int64, withProgress bool) Sem {
	return newSem(ctx, n, withProgress)
}

// MaxSimultaneous returns a sane default worker-pool size derived from the
// number of logical CPUs. New does not consult it: n <= 0 passed to New
// means unlimited.
func MaxSimultaneous() int64 {
	n := int64(runtime.NumCPU())
	if n < 1 {
		return 1
	}
	return n
}

// SetSimultaneous returns n unchanged when it is positive and falls back
// to MaxSimultaneous for non-positive values.
func SetSimultaneous(n int64) int64 {
	if n <= 0 {
		return MaxSimultaneous()
	}
	return n
}
