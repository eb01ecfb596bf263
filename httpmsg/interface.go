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

// Package httpmsg implements the HTTP/1.0 wire codec: a request framer that
// reads a request-line and classified headers off a byte stream, and a
// response writer that serializes a status line, headers and body as one
// contiguous, CRLF-framed byte sequence.
package httpmsg

import (
	"io"
)

// HeaderClass partitions a header field name into one of the four fixed
// sets the request framer recognizes.
type HeaderClass uint8

const (
	ClassGeneral HeaderClass = iota
	ClassRequest
	ClassEntity
	ClassExtension
)

// Header is one parsed, classified header field. Name is lowercased and
// trimmed; Value is trimmed of leading/trailing whitespace.
type Header struct {
	Name  string
	Value string
	Class HeaderClass
}

// Request is the parsed fingerprint of an HTTP/1.0 request.
type Request struct {
	Method     string
	RequestURI string
	Version    string
	Headers    []Header
	Body       []byte

	// ID is a per-request correlation id stamped by the framer, used for
	// log correlation only; it has no wire representation.
	ID string
}

// Header returns the first header value matching name
// (case-insensitive), and whether it was found.
func (r *Request) Header(name string) (string, bool) {
	n := normalizeName(name)
	for _, h := range r.Headers {
		if h.Name == n {
			return h.Value, true
		}
	}
	return "", false
}

// HeaderAll returns every header value for name, in arrival order.
func (r *Request) HeaderAll(name string) []string {
	n := normalizeName(name)
	var out []string
	for _, h := range r.Headers {
		if h.Name == n {
			out = append(out, h.Value)
		}
	}
	return out
}

// FramingError marks a malformed request line, header, or Content-Length
// that should map to 400 Bad Request without aborting the connection.
type FramingError struct {
	Message string
}

func (e *FramingError) Error() string { return e.Message }

// ReadRequest reads one HTTP/1.0 request off r. Bytes buffered past the
// body are discarded: exactly one request per connection is supported.
func ReadRequest(r io.Reader) (*Request, error) {
	return readRequest(r)
}

// Response is the logical form of an HTTP/1.0 response, serialized by
// WriteResponse in the exact order mandated by the wire format: status
// line, headers, a blank line, then the body.
type Response struct {
	Status  StatusCode
	Headers []Header
	Body    []byte
}

// WriteResponse serializes resp to w as one contiguous write.
func WriteResponse(w io.Writer, resp *Response) error {
	return writeResponse(w, resp)
}
