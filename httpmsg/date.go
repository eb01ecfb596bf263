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

import "time"

// dateLayout is the RFC 1123 date format HTTP/1.0 uses (RFC 1945 §3.3),
// always rendered in GMT.
const dateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// FormatDate renders t as an HTTP/1.0-format timestamp in UTC, used for
// the record-store's stored timestamp.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDate parses an HTTP/1.0-format timestamp, as found in an
// If-Modified-Since request header or a record-store entry's prefix.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
