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

// Package logger provides the structured logging façade used across this
// codebase. It wraps sirupsen/logrus the way the rest of the stack expects:
// a Logger interface obtained from a FuncLog, carrying per-call fields.
package logger

import (
	"context"

	loglvl "github.com/nabbar/httpd10/logger/level"
)

// Fields is a flat bag of structured, per-call log attributes (request id,
// method, URI, worker pid, ...).
type Fields map[string]interface{}

// Clone returns a shallow copy so callers can extend it without mutating
// the caller's map.
func (f Fields) Clone() Fields {
	n := make(Fields, len(f))
	for k, v := range f {
		n[k] = v
	}
	return n
}

func (f Fields) Add(key string, val interface{}) Fields {
	n := f.Clone()
	n[key] = val
	return n
}

// Logger is the logging contract every package in this module consumes.
type Logger interface {
	SetLevel(lvl loglvl.Level)
	GetLevel() loglvl.Level

	SetFields(f Fields) Logger
	WithField(key string, val interface{}) Logger

	Debug(message string, data interface{}, args ...interface{})
	Info(message string, data interface{}, args ...interface{})
	Warning(message string, data interface{}, args ...interface{})
	Error(message string, data interface{}, args ...interface{})
	Fatal(message string, data interface{}, args ...interface{})
	Panic(message string, data interface{}, args ...interface{})

	// CheckError logs err at lvlKO (if non-nil) or lvlOK (if provided and
	// err is nil), returning err unchanged so call sites can chain it.
	CheckError(lvlKO, lvlOK loglvl.Level, message string, err error) error

	Clone() Logger
}

// FuncLog is the constructor signature passed around instead of a bare
// Logger value, so components can obtain a fresh, correctly-leveled logger
// lazily at the point of use.
type FuncLog func() Logger

// New returns a default Logger bound to ctx, writing to stdout via
// logrus at InfoLevel. ctx is reserved for future cancellation-aware
// sinks; it is not consulted for formatting today.
func New(_ context.Context) Logger {
	return newLogrus()
}

// NewDiscard returns a Logger that never writes, for components built
// without an explicit FuncLog (unit tests, callers that don't care about
// lifecycle events).
func NewDiscard() Logger {
	return discardLogger{}
}
