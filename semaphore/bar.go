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
	"sync/atomic"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type barKind uint8

const (
	barKindNumber barKind = iota
	barKindBytes
	barKindTime
)

type bar struct {
	s *sem

	total   int64
	current int64
	done    int32

	b *mpb.Bar
}

func newBar(s *sem, total int64, drop bool, kind barKind, title, msg string, queue Bar) *bar {
	bo := &bar{s: s}

	if s.mpb == nil {
		return bo
	}

	bo.total = total

	opts := []mpb.BarOption{
		mpb.PrependDecorators(decor.Name(title), decor.Name(" "+msg+" ")),
		mpb.AppendDecorators(decor.Percentage()),
	}

	switch kind {
	case barKindBytes:
		opts = append(opts, mpb.BarRemoveOnComplete())
	case barKindTime:
		opts = append(opts, mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)))
	}

	if drop {
		opts = append(opts, mpb.BarRemoveOnComplete())
	}

	bo.b = s.mpb.AddBar(total, opts...)
	return bo
}

func (b *bar) NewWorker() error {
	return b.s.NewWorker()
}

// DeferWorker releases the underlying slot and advances the bar by one.
func (b *bar) DeferWorker() {
	b.Inc(1)
	b.s.DeferWorker()
}

func (b *bar) Inc(n int) {
	b.Inc64(int64(n))
}

func (b *bar) Inc64(n int64) {
	atomic.AddInt64(&b.current, n)
	if b.b != nil {
		b.b.IncrBy(int(n))
	}
}

func (b *bar) Dec64(n int64) {
	atomic.AddInt64(&b.current, -n)
	if b.b != nil {
		b.b.IncrBy(int(-n))
	}
}

func (b *bar) Total() int64 {
	return b.total
}

func (b *bar) Current() int64 {
	return atomic.LoadInt64(&b.current)
}

func (b *bar) Completed() bool {
	if b.b != nil {
		return b.b.Completed()
	}
	return atomic.LoadInt32(&b.done) == 1
}

func (b *bar) Complete() {
	atomic.StoreInt32(&b.done, 1)
	if b.b != nil {
		b.b.SetCurrent(b.total)
	}
}

func (b *bar) GetMPB() interface{} {
	if b.b == nil {
		return nil
	}
	return b.b
}
