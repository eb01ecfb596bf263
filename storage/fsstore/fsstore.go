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

// Package fsstore implements storage.Backend directly against a
// filesystem tree rooted at write_root: the request URI is the
// relative path, and the file's own mtime is the entity's
// last-modified time.
package fsstore

import (
	"os"
	"path/filepath"
	"time"

	liblog "github.com/nabbar/httpd10/logger"
	loglvl "github.com/nabbar/httpd10/logger/level"
	libsto "github.com/nabbar/httpd10/storage"
)

const dirMode = 0755

type store struct {
	root string
	log  liblog.Logger
}

// New returns a storage.Backend rooted at root. root is created on
// first write if it does not yet exist. log may be nil, in which case
// write/read lifecycle events are discarded.
func New(root string, log ...liblog.FuncLog) libsto.Backend {
	lg := liblog.NewDiscard()
	if len(log) > 0 && log[0] != nil {
		lg = log[0]()
	}
	return &store{root: filepath.Clean(root), log: lg}
}

func (s *store) path(key string) string {
	return filepath.Join(s.root, filepath.Clean("/"+key))
}

func (s *store) Read(key string) ([]byte, time.Time, error) {
	p := s.path(key)

	fi, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, libsto.ErrNotFound
		}
		return nil, time.Time{}, s.log.CheckError(loglvl.ErrorLevel, loglvl.NilLevel, "fsstore stat", libsto.ErrorRead.Error(err))
	}
	if !fi.Mode().IsRegular() {
		return nil, time.Time{}, libsto.ErrNotFound
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, time.Time{}, s.log.CheckError(loglvl.ErrorLevel, loglvl.NilLevel, "fsstore read", libsto.ErrorRead.Error(err))
	}

	return data, fi.ModTime(), nil
}

func (s *store) Write(key string, data []byte, modified time.Time) (bool, error) {
	p := s.path(key)

	if err := os.MkdirAll(filepath.Dir(p), dirMode); err != nil {
		return false, libsto.ErrorWrite.Error(err)
	}

	_, statErr := os.Stat(p)
	created := os.IsNotExist(statErr)

	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return false, s.log.CheckError(loglvl.ErrorLevel, loglvl.NilLevel, "fsstore open", libsto.ErrorWrite.Error(err))
	}
	defer func() { _ = f.Close() }()

	if _, err = f.Write(data); err != nil {
		return false, s.log.CheckError(loglvl.ErrorLevel, loglvl.NilLevel, "fsstore write", libsto.ErrorWrite.Error(err))
	}

	if created {
		s.log.Info("file inserted", liblog.Fields{"key": key})
	} else {
		s.log.Info("file overwritten", liblog.Fields{"key": key})
	}

	if !modified.IsZero() {
		_ = os.Chtimes(p, modified, modified)
	}

	return created, nil
}
