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

package kvtable

import (
	"sync/atomic"

	libkvd "github.com/nabbar/httpd10/database/kvitem"
	libkvt "github.com/nabbar/httpd10/database/kvtypes"
)

type tbl[K comparable, M any] struct {
	d *atomic.Value
}

func (o *tbl[K, M]) getDriver() libkvt.KVDriver[K, M] {
	if o == nil {
		return nil
	}

	i := o.d.Load()
	if i == nil {
		return nil
	} else if d, k := i.(libkvt.KVDriver[K, M]); !k {
		return nil
	} else {
		return d
	}
}

func (o *tbl[K, M]) Get(key K) (libkvt.KVItem[K, M], error) {
	drv := o.getDriver()
	if drv == nil {
		return nil, ErrorBadDriver.Error(nil)
	}

	item := libkvd.New[K, M](drv, key)
	return item, item.Load()
}

func (o *tbl[K, M]) Del(key K) error {
	if drv := o.getDriver(); drv == nil {
		return ErrorBadDriver.Error(nil)
	} else {
		return drv.Del(key)
	}
}

func (o *tbl[K, M]) List() ([]libkvt.KVItem[K, M], error) {
	drv := o.getDriver()
	if drv == nil {
		return nil, ErrorBadDriver.Error(nil)
	}

	l, e := drv.List()
	if e != nil {
		return nil, e
	}

	res := make([]libkvt.KVItem[K, M], 0, len(l))
	for _, k := range l {
		item := libkvd.New[K, M](drv, k)
		_ = item.Load()
		res = append(res, item)
	}

	return res, nil
}

func (o *tbl[K, M]) Search(pattern K) ([]libkvt.KVItem[K, M], error) {
	drv := o.getDriver()
	if drv == nil {
		return nil, ErrorBadDriver.Error(nil)
	}

	l, e := drv.Search(pattern)
	if e != nil {
		return nil, e
	}

	res := make([]libkvt.KVItem[K, M], 0, len(l))
	for _, k := range l {
		item := libkvd.New[K, M](drv, k)
		_ = item.Load()
		res = append(res, item)
	}

	return res, nil
}

func (o *tbl[K, M]) Walk(fct libkvt.FuncWalk[K, M]) error {
	drv := o.getDriver()
	if drv == nil {
		return ErrorBadDriver.Error(nil)
	}

	return drv.Walk(func(key K, model M) bool {
		item := libkvd.New[K, M](drv, key)
		item.Set(model)
		return fct(item)
	})
}
