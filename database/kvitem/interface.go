/*
 * MIT License
 *
 * Copyright (c) 2023 Nicolas JUHEL
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

package kvitem

import (
	"sync/atomic"

	libkvt "github.com/nabbar/httpd10/database/kvtypes"
)

// KVItem is a single key bound to a driver: it caches a loaded and a
// pending-write model side by side so callers can detect and commit
// changes explicitly instead of round-tripping the driver on every
// field access.
type KVItem[K comparable, M any] = libkvt.KVItem[K, M]

func New[K comparable, M any](drv libkvt.KVDriver[K, M], key K) KVItem[K, M] {
	var (
		ml = new(atomic.Value)
		mw = new(atomic.Value)
	)

	return &itm[K, M]{
		d:  drv,
		k:  key,
		ml: ml,
		ms: mw,
	}
}
