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

// Package recordstore implements storage.Backend over an embedded
// nutsdb keyed store. It layers the generic kvdriver/kvtable wiring
// over nutsdb's bucket API the same way the teacher's database
// packages layer a function-table driver over any concrete engine,
// and protects every upsert with a cross-process ipcsem lock since
// multiple worker processes share the same database file.
package recordstore

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/nutsdb/nutsdb"

	libkvd "github.com/nabbar/httpd10/database/kvdriver"
	libkvt "github.com/nabbar/httpd10/database/kvtable"
	libkvy "github.com/nabbar/httpd10/database/kvtypes"
	"github.com/nabbar/httpd10/httpmsg"
	"github.com/nabbar/httpd10/ipcsem"
	liblog "github.com/nabbar/httpd10/logger"
	loglvl "github.com/nabbar/httpd10/logger/level"
	libsto "github.com/nabbar/httpd10/storage"
)

const bucket = "entities"

// separator terminates the timestamp prefix of an encoded record.
// The value is timestamp + sep + entity + sep: a single trailing
// separator, not two, per the store's on-disk format.
const separator = byte(0)

type recordStore struct {
	db    *nutsdb.DB
	table libkvt.KVTable[string, []byte]
	sem   ipcsem.Semaphore
	log   liblog.Logger
}

// New opens (creating if absent) a nutsdb database rooted at dir and
// wraps it as a storage.Backend. sem guards the insert-then-overwrite
// upsert sequence across every worker process sharing dir. log may be
// nil, in which case store lifecycle events are discarded.
func New(dir string, sem ipcsem.Semaphore, log liblog.FuncLog) (libsto.Backend, error) {
	opt := nutsdb.DefaultOptions
	opt.Dir = dir

	lg := liblog.NewDiscard()
	if log != nil {
		lg = log()
	}

	db, err := nutsdb.Open(opt)
	if err != nil {
		return nil, lg.CheckError(loglvl.ErrorLevel, loglvl.NilLevel, "open record store", libsto.ErrorWrite.Error(err))
	}

	cmp := libkvy.NewCompare[string](
		func(ref, part string) bool { return ref == part },
		func(ref, part string) bool { return strings.Contains(ref, part) },
		func(part string) bool { return part == "" },
	)

	rs := &recordStore{db: db, sem: sem, log: lg}

	var newFunc libkvd.FuncNew[string, []byte]
	newFunc = func() libkvy.KVDriver[string, []byte] {
		return libkvd.New[string, []byte](cmp, newFunc, rs.get, rs.set, rs.del, rs.list, rs.search, nil)
	}

	drv := libkvd.New[string, []byte](cmp, newFunc, rs.get, rs.set, rs.del, rs.list, rs.search, nil)
	rs.table = libkvt.New[string, []byte](drv)

	return rs, nil
}

func (r *recordStore) get(key string) ([]byte, error) {
	var out []byte

	err := r.db.View(func(tx *nutsdb.Tx) error {
		e, err := tx.Get(bucket, []byte(key))
		if err != nil {
			return err
		}
		out = append([]byte(nil), e.Value...)
		return nil
	})
	if err != nil {
		return nil, libsto.ErrNotFound
	}

	return out, nil
}

func (r *recordStore) set(key string, value []byte) error {
	return r.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Put(bucket, []byte(key), value, 0)
	})
}

func (r *recordStore) del(key string) error {
	return r.db.Update(func(tx *nutsdb.Tx) error {
		return tx.Delete(bucket, []byte(key))
	})
}

func (r *recordStore) list() ([]string, error) {
	var out []string

	err := r.db.View(func(tx *nutsdb.Tx) error {
		entries, err := tx.GetAll(bucket)
		if err != nil {
			if err == nutsdb.ErrBucketEmpty || err == nutsdb.ErrBucketNotFound {
				return nil
			}
			return err
		}
		for _, e := range entries {
			out = append(out, string(e.Key))
		}
		return nil
	})

	return out, err
}

func (r *recordStore) search(pattern string) ([]string, error) {
	var out []string

	err := r.db.View(func(tx *nutsdb.Tx) error {
		entries, err := tx.PrefixScan(bucket, []byte(pattern), 0, 1<<20)
		if err != nil {
			if err == nutsdb.ErrBucketEmpty || err == nutsdb.ErrBucketNotFound || err == nutsdb.ErrPrefixScan {
				return nil
			}
			return err
		}
		for _, e := range entries {
			out = append(out, string(e.Key))
		}
		return nil
	})

	return out, err
}

func encodeRecord(modified time.Time, entity []byte) []byte {
	buf := make([]byte, 0, len(httpmsg.FormatDate(modified))+len(entity)+2)
	buf = append(buf, []byte(httpmsg.FormatDate(modified))...)
	buf = append(buf, separator)
	buf = append(buf, entity...)
	buf = append(buf, separator)
	return buf
}

func decodeRecord(raw []byte) (time.Time, []byte, error) {
	idx := bytes.IndexByte(raw, separator)
	if idx < 0 {
		return time.Time{}, nil, libsto.ErrorMalformedRecord.Error(nil)
	}

	ts, err := httpmsg.ParseDate(string(raw[:idx]))
	if err != nil {
		return time.Time{}, nil, libsto.ErrorMalformedRecord.Error(err)
	}

	entity := raw[idx+1:]
	if n := len(entity); n > 0 && entity[n-1] == separator {
		entity = entity[:n-1]
	}

	return ts, entity, nil
}

func (r *recordStore) Read(key string) ([]byte, time.Time, error) {
	item, err := r.table.Get(key)
	if err != nil {
		return nil, time.Time{}, libsto.ErrNotFound
	}

	return decodeRecord(item.Get())
}

// Write upserts key: it looks the key up to learn whether it already
// holds a record, then stores the fresh record with a single put that
// replaces any previous value. The whole sequence runs under sem so
// concurrent workers cannot interleave the read-then-write.
func (r *recordStore) Write(key string, data []byte, modified time.Time) (bool, error) {
	if err := r.sem.Lock(context.Background()); err != nil {
		return false, libsto.ErrorWrite.Error(err)
	}
	defer func() { _ = r.sem.Unlock() }()

	record := encodeRecord(modified, data)

	_, err := r.get(key)
	created := err != nil

	if err = r.set(key, record); err != nil {
		return false, r.log.CheckError(loglvl.ErrorLevel, loglvl.NilLevel, "record store upsert", libsto.ErrorWrite.Error(err))
	}

	if created {
		r.log.Info("record inserted", liblog.Fields{"key": key})
	} else {
		r.log.Info("record overwritten", liblog.Fields{"key": key})
	}

	return created, nil
}

// Close releases the underlying database handle.
func (r *recordStore) Close() error {
	return r.db.Close()
}

// Walk visits every key currently in the store, in the order the
// underlying nutsdb bucket iterator returns them, decoding each raw
// value into its stamped modification time and entity body. fn's
// return stops the walk early when false, the same short-circuit
// convention as kvtypes.FuncWalk.
func (r *recordStore) Walk(fn func(key string, modified time.Time, entity []byte) bool) error {
	return r.table.Walk(func(item libkvy.KVItem[string, []byte]) bool {
		modified, entity, err := decodeRecord(item.Get())
		if err != nil {
			return true
		}
		return fn(item.Key(), modified, entity)
	})
}

// Viewer is the read-only surface a store inspector needs: walk every
// record and release the handle when done. *recordStore satisfies it
// without any further adaptation.
type Viewer interface {
	Walk(fn func(key string, modified time.Time, entity []byte) bool) error
	Close() error
}

// OpenViewer opens dir the same way New does, but returns the Viewer
// surface instead of a storage.Backend, for tools that only ever read
// and enumerate (cmd/httpd10-dbview).
func OpenViewer(dir string, sem ipcsem.Semaphore, log liblog.FuncLog) (Viewer, error) {
	b, err := New(dir, sem, log)
	if err != nil {
		return nil, err
	}
	return b.(Viewer), nil
}
