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

import "strings"

var generalHeaders = map[string]bool{
	"date":   true,
	"pragma": true,
}

var requestHeaders = map[string]bool{
	"authorization":     true,
	"from":              true,
	"if-modified-since": true,
	"referer":           true,
	"user-agent":        true,
}

var entityHeaders = map[string]bool{
	"allow":            true,
	"content-encoding": true,
	"content-length":   true,
	"content-type":     true,
	"expires":          true,
	"last-modified":    true,
}

// normalizeName lowercases and trims a header field name the way every
// lookup in this package expects it.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// classify returns the HeaderClass for an already-normalized field name.
func classify(name string) HeaderClass {
	switch {
	case generalHeaders[name]:
		return ClassGeneral
	case requestHeaders[name]:
		return ClassRequest
	case entityHeaders[name]:
		return ClassEntity
	default:
		return ClassExtension
	}
}

// HeaderDatabase is the non-standard extension header name (§6) that
// selects the keyed-store backend when its value is "true".
const HeaderDatabase = "database"
