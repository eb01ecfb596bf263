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

package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	loglvl "github.com/nabbar/httpd10/logger/level"
)

type logrusLogger struct {
	mut sync.Mutex
	log *logrus.Logger
	fld Fields
}

func newLogrus() *logrusLogger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)

	return &logrusLogger{
		log: l,
		fld: make(Fields),
	}
}

func (o *logrusLogger) SetLevel(lvl loglvl.Level) {
	o.mut.Lock()
	defer o.mut.Unlock()
	o.log.SetLevel(lvl.Logrus())
}

func (o *logrusLogger) GetLevel() loglvl.Level {
	o.mut.Lock()
	defer o.mut.Unlock()

	switch o.log.GetLevel() {
	case logrus.DebugLevel, logrus.TraceLevel:
		return loglvl.DebugLevel
	case logrus.InfoLevel:
		return loglvl.InfoLevel
	case logrus.WarnLevel:
		return loglvl.WarnLevel
	case logrus.ErrorLevel:
		return loglvl.ErrorLevel
	case logrus.FatalLevel:
		return loglvl.FatalLevel
	case logrus.PanicLevel:
		return loglvl.PanicLevel
	}

	return loglvl.InfoLevel
}

func (o *logrusLogger) SetFields(f Fields) Logger {
	o.mut.Lock()
	defer o.mut.Unlock()
	o.fld = f.Clone()
	return o
}

func (o *logrusLogger) WithField(key string, val interface{}) Logger {
	o.mut.Lock()
	n := &logrusLogger{
		log: o.log,
		fld: o.fld.Add(key, val),
	}
	o.mut.Unlock()
	return n
}

func (o *logrusLogger) entry(message string, data interface{}) *logrus.Entry {
	f := make(logrus.Fields, len(o.fld)+1)
	for k, v := range o.fld {
		f[k] = v
	}
	if data != nil {
		f["data"] = data
	}
	return o.log.WithFields(f).WithField("message", message)
}

func (o *logrusLogger) Debug(message string, data interface{}, args ...interface{}) {
	o.entry(message, data).Debugf(message, args...)
}

func (o *logrusLogger) Info(message string, data interface{}, args ...interface{}) {
	o.entry(message, data).Infof(message, args...)
}

func (o *logrusLogger) Warning(message string, data interface{}, args ...interface{}) {
	o.entry(message, data).Warnf(message, args...)
}

func (o *logrusLogger) Error(message string, data interface{}, args ...interface{}) {
	o.entry(message, data).Errorf(message, args...)
}

func (o *logrusLogger) Fatal(message string, data interface{}, args ...interface{}) {
	o.entry(message, data).Fatalf(message, args...)
}

func (o *logrusLogger) Panic(message string, data interface{}, args ...interface{}) {
	o.entry(message, data).Panicf(message, args...)
}

func (o *logrusLogger) CheckError(lvlKO, lvlOK loglvl.Level, message string, err error) error {
	if err != nil {
		o.entry(message, err).Log(lvlKO.Logrus(), message+": "+err.Error())
		return err
	}
	if lvlOK != loglvl.NilLevel {
		o.entry(message, nil).Log(lvlOK.Logrus(), message)
	}
	return nil
}

func (o *logrusLogger) Clone() Logger {
	o.mut.Lock()
	defer o.mut.Unlock()

	l := logrus.New()
	l.SetOutput(o.log.Out)
	l.SetFormatter(o.log.Formatter)
	l.SetLevel(o.log.GetLevel())

	return &logrusLogger{
		log: l,
		fld: o.fld.Clone(),
	}
}

// discardLogger implements Logger with every call a no-op, backing
// NewDiscard. It exists separately from logrusLogger instead of routing
// through a NilLevel setting, since this codebase's level-to-logrus
// mapping for NilLevel does not actually suppress logrus output.
type discardLogger struct{}

func (discardLogger) SetLevel(loglvl.Level)         {}
func (discardLogger) GetLevel() loglvl.Level         { return loglvl.NilLevel }
func (d discardLogger) SetFields(Fields) Logger      { return d }
func (d discardLogger) WithField(string, interface{}) Logger { return d }
func (discardLogger) Debug(string, interface{}, ...interface{})   {}
func (discardLogger) Info(string, interface{}, ...interface{})    {}
func (discardLogger) Warning(string, interface{}, ...interface{}) {}
func (discardLogger) Error(string, interface{}, ...interface{})   {}
func (discardLogger) Fatal(string, interface{}, ...interface{})   {}
func (discardLogger) Panic(string, interface{}, ...interface{})   {}
func (discardLogger) CheckError(_, _ loglvl.Level, _ string, err error) error { return err }
func (d discardLogger) Clone() Logger { return d }
