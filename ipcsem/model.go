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

package ipcsem

import (
	"context"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

const pollInterval = 2 * time.Millisecond

type sem struct {
	mut  sync.Mutex
	name string
	path string
	file *os.File
	held bool
}

func (s *sem) Name() string {
	return s.name
}

func (s *sem) TryLock() (bool, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	if s.held {
		return false, ErrorAlreadyHeld.Error(nil)
	}

	err := unix.Flock(int(s.file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		s.held = true
		return true, nil
	}
	if err == unix.EWOULDBLOCK {
		return false, nil
	}

	return false, ErrorFlock.Error(err)
}

func (s *sem) Lock(ctx context.Context) error {
	for {
		ok, err := s.TryLock()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (s *sem) Unlock() error {
	s.mut.Lock()
	defer s.mut.Unlock()

	if !s.held {
		return ErrorNotHeld.Error(nil)
	}

	if err := unix.Flock(int(s.file.Fd()), unix.LOCK_UN); err != nil {
		return ErrorFlock.Error(err)
	}

	s.held = false
	return nil
}

func (s *sem) Close() error {
	return s.file.Close()
}
