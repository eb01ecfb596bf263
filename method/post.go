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
	"time"

	"github.com/nabbar/httpd10/httpmsg"
	"github.com/nabbar/httpd10/storage"
)

// handlePost implements the POST semantics: a Content-Length header is
// mandatory (absent or unparsable maps to 400), the entity is upserted
// under req.RequestURI stamped with the current HTTP/1.0-format UTC
// time, and the response echoes the body with 201 on insert or 200 on
// overwrite.
func handlePost(req *httpmsg.Request, backend storage.Backend) *httpmsg.Response {
	v, ok := req.Header("content-length")
	if !ok {
		return &httpmsg.Response{Status: httpmsg.StatusBadRequest}
	}
	if n, err := strconv.Atoi(v); err != nil || n < 0 {
		return &httpmsg.Response{Status: httpmsg.StatusBadRequest}
	}

	created, err := backend.Write(req.RequestURI, req.Body, time.Now())
	if err != nil {
		return &httpmsg.Response{Status: httpmsg.StatusInternalServerError}
	}

	status := httpmsg.StatusOK
	if created {
		status = httpmsg.StatusCreated
	}

	return &httpmsg.Response{
		Status: status,
		Headers: []httpmsg.Header{
			{Name: "content-type", Value: "text/html"},
			{Name: "content-length", Value: strconv.Itoa(len(req.Body))},
		},
		Body: req.Body,
	}
}
