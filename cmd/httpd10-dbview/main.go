/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

// Command httpd10-dbview is the auxiliary record-store viewer described
// in spec.md §6: it opens a recordstore through OpenViewer, walks every
// key, and prints one line per record to stdout. The named semaphore is
// opened but not locked during the walk.
// Grounded on the original ndbm-database-viewer tool this codebase's
// record store replaces.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"

	"github.com/nabbar/httpd10/ipcsem"
	liblog "github.com/nabbar/httpd10/logger"
	"github.com/nabbar/httpd10/storage/recordstore"
)

const usage = "usage: httpd10-dbview -d <database-name> [-s <semaphore-name>] [-t]\n" +
	"\t-d <database-name>: the path to the record store to view.\n" +
	"\t[-s <semaphore-name>]: the record store's semaphore name.\n" +
	"\t[-t]: trace program execution.\n"

var traceColor = color.New(color.FgYellow)

func trace(on bool) {
	if !on {
		return
	}
	pc, file, line, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	_, _ = traceColor.Fprintf(os.Stdout, "TRACE: %s : %s : @ %d\n", file, fn, line)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("httpd10-dbview", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	dbName := fs.String("d", "", "path to the record store")
	semName := fs.String("s", "", "name of the semaphore guarding the store")
	traceOn := fs.Bool("t", false, "trace program execution")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	trace(*traceOn)

	if *dbName == "" {
		fmt.Fprint(os.Stdout, usage)
		return 1
	}

	semDir, semLabel := ".", *semName
	if semLabel == "" {
		semLabel = "httpd10-dbview"
	}

	trace(*traceOn)
	sem, err := ipcsem.New(semDir, semLabel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = sem.Close() }()

	trace(*traceOn)
	view, err := recordstore.OpenViewer(*dbName, sem, liblog.NewDiscard)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = view.Close() }()

	count := 0
	trace(*traceOn)
	err = view.Walk(func(key string, modified time.Time, entity []byte) bool {
		trace(*traceOn)
		fmt.Printf("{ key: %q, value: %q }\n", key, modified.UTC().Format(time.RFC1123)+" "+string(entity))
		count++
		return true
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if count == 0 {
		fmt.Fprintln(os.Stdout, "no records found; check the path to the database to ensure it is correct.")
	}

	return 0
}
