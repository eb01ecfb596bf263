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

// Package ipcsem implements a named semaphore shared across
// independent OS processes, backed by an advisory flock on a file in
// the filesystem. It gives the pre-fork worker pool a mutex the
// kernel arbitrates fairly without any of the workers sharing memory.
package ipcsem

import (
	"context"
	"os"
)

// Semaphore is a cross-process mutual-exclusion lock identified by a
// name shared by every process that opens it.
type Semaphore interface {
	// Lock blocks until the semaphore is acquired or ctx is done.
	Lock(ctx context.Context) error
	// Unlock releases a held lock. Unlocking an unheld semaphore is a
	// programming error and returns an error rather than panicking.
	Unlock() error
	// TryLock attempts to acquire without blocking.
	TryLock() (bool, error)
	// Name returns the semaphore's name, as passed to New.
	Name() string
	// Close releases the underlying file handle. It does not remove
	// the backing file: other processes may still hold it open.
	Close() error
}

// New opens (creating if absent) the named semaphore backed by a file
// under dir. Every process that calls New with the same dir and name
// contends on the same lock.
func New(dir, name string) (Semaphore, error) {
	if name == "" {
		return nil, ErrorEmptyName.Error(nil)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, ErrorOpenFile.Error(err)
	}

	path := dir + string(os.PathSeparator) + name + ".lock"

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, ErrorOpenFile.Error(err)
	}

	return &sem{name: name, path: path, file: f}, nil
}
