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

package method

import (
	"strconv"

	"github.com/nabbar/httpd10/httpmsg"
	"github.com/nabbar/httpd10/storage"
)

// handleGet implements the GET semantics: load the entity's bytes and
// last-modified stamp from backend, answer 404 if the key is absent,
// 304 if an If-Modified-Since header is present and still covers the
// stored stamp, or 200 with the entity body otherwise. HEAD reuses
// this and discards the body afterward.
func handleGet(req *httpmsg.Request, backend storage.Backend) *httpmsg.Response {
	data, modified, err := backend.Read(req.RequestURI)
	if err == storage.ErrNotFound {
		return &httpmsg.Response{Status: httpmsg.StatusNotFound}
	}
	if err != nil {
		return &httpmsg.Response{Status: httpmsg.StatusInternalServerError}
	}

	if v, ok := req.Header("if-modified-since"); ok {
		if since, perr := httpmsg.ParseDate(v); perr == nil {
			if !modified.After(since) {
				return &httpmsg.Response{Status: httpmsg.StatusNotModified}
			}
		}
	}

	return &httpmsg.Response{
		Status: httpmsg.StatusOK,
		Headers: []httpmsg.Header{
			{Name: "content-type", Value: "text/html"},
			{Name: "content-length", Value: strconv.Itoa(len(data))},
		},
		Body: data,
	}
}
