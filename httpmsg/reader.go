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

package httpmsg

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const terminator = "\r\n\r\n"

// readRequest grows buf one read at a time until the CRLFCRLF terminator
// appears, tokenizes the head by CRLF, then reads the entity body (if any)
// by Content-Length.
func readRequest(r io.Reader) (*Request, error) {
	head, rest, err := readUntilTerminator(r)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(head, "\r\n")
	if len(lines) == 0 {
		return nil, &FramingError{Message: "empty request"}
	}

	req := &Request{ID: uuid.NewString()}

	if err := parseRequestLine(lines[0], req); err != nil {
		return nil, err
	}

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		if err := parseHeaderLine(line, req); err != nil {
			return nil, err
		}
	}

	n, hasLen, err := contentLength(req)
	if err != nil {
		return nil, err
	}
	if hasLen && n > 0 {
		body := make([]byte, n)
		copy(body, rest)
		if len(rest) < n {
			if _, err := io.ReadFull(r, body[len(rest):]); err != nil {
				return nil, err
			}
		}
		req.Body = body
	}

	return req, nil
}

func readUntilTerminator(r io.Reader) (head string, rest []byte, err error) {
	buf := make([]byte, 0, 512)
	chunk := make([]byte, 512)

	for {
		if idx := bytes.Index(buf, []byte(terminator)); idx >= 0 {
			return string(buf[:idx]), buf[idx+len(terminator):], nil
		}

		n, rerr := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if rerr != nil {
			if rerr == io.EOF {
				return "", nil, &FramingError{Message: "connection closed before header terminator"}
			}
			return "", nil, rerr
		}
	}
}

func parseRequestLine(line string, req *Request) error {
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return &FramingError{Message: "malformed request line"}
	}
	req.Method = parts[0]
	req.RequestURI = parts[1]
	req.Version = parts[2]
	return nil
}

func parseHeaderLine(line string, req *Request) error {
	idx := strings.Index(line, ": ")
	if idx < 0 {
		return &FramingError{Message: "malformed header: " + line}
	}

	name := normalizeName(line[:idx])
	value := strings.TrimSpace(line[idx+2:])

	req.Headers = append(req.Headers, Header{
		Name:  name,
		Value: value,
		Class: classify(name),
	})

	return nil
}

func contentLength(req *Request) (n int, present bool, err error) {
	v, ok := req.Header("content-length")
	if !ok {
		return 0, false, nil
	}

	n, err = strconv.Atoi(v)
	if err != nil {
		return 0, false, &FramingError{Message: "malformed Content-Length"}
	}
	if n < 0 {
		return 0, false, &FramingError{Message: "negative Content-Length"}
	}

	return n, true, nil
}
