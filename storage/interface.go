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

// Package storage defines the common contract both entity backends
// (the plain filesystem tree and the keyed record store) satisfy, so
// the method engine can select one by the incoming request's
// "database" header without knowing which is behind it.
package storage

import (
	"time"
)

// Backend persists and retrieves a request entity keyed by its
// request-URI. Read must report ErrNotFound when the key is absent,
// never a wrapped or backend-specific error.
type Backend interface {
	// Read returns the stored entity and its last-modified time.
	Read(key string) (data []byte, modified time.Time, err error)
	// Write stores data under key, stamped with modified. created is
	// true when the key did not already exist (maps to 201), false
	// when an existing entry was overwritten (maps to 200).
	Write(key string, data []byte, modified time.Time) (created bool, err error)
}

// ErrNotFound is returned by Read when key has no stored entity.
var ErrNotFound = notFoundError{}

type notFoundError struct{}

func (notFoundError) Error() string { return "storage: key not found" }
