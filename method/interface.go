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

// Package method implements the GET/HEAD/POST dispatch engine: given
// a parsed request and the two storage backends, it decides which
// backend answers the request and assembles the response the codec
// will serialize.
package method

import (
	"github.com/nabbar/httpd10/httpmsg"
	"github.com/nabbar/httpd10/storage"
)

// Backends exposes the two storage.Backend implementations the engine
// chooses between by the request's database header.
type Backends struct {
	Filesystem storage.Backend
	Record     storage.Backend
}

func (b Backends) select_(req *httpmsg.Request) storage.Backend {
	v, ok := req.Header(httpmsg.HeaderDatabase)
	if ok && equalFoldTrue(v) {
		return b.Record
	}
	return b.Filesystem
}

func equalFoldTrue(v string) bool {
	if len(v) != 4 {
		return false
	}
	for i, c := range []byte("true") {
		d := v[i]
		if d >= 'A' && d <= 'Z' {
			d += 'a' - 'A'
		}
		if d != c {
			return false
		}
	}
	return true
}

// Dispatch selects the handler for req.Method and returns the
// response to serialize. It never returns an error: every outcome,
// including a malformed or unsupported request, is expressed as an
// httpmsg.Response.
func Dispatch(req *httpmsg.Request, backends Backends) *httpmsg.Response {
	switch req.Method {
	case "GET":
		return handleGet(req, backends.select_(req))
	case "HEAD":
		resp := handleGet(req, backends.select_(req))
		resp.Body = nil
		return resp
	case "POST":
		return handlePost(req, backends.select_(req))
	default:
		return &httpmsg.Response{Status: httpmsg.StatusNotImplemented}
	}
}
