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

package main

import (
	"os"

	"github.com/nabbar/httpd10/ipcsem"
	liblog "github.com/nabbar/httpd10/logger"
	"github.com/nabbar/httpd10/method"
	"github.com/nabbar/httpd10/procpool"
	"github.com/nabbar/httpd10/storage/fsstore"
	"github.com/nabbar/httpd10/storage/recordstore"
)

// openBackends builds the two storage.Backend implementations the
// method engine dispatches between. Both the parent (for config
// validation on serve) and every worker process call this with the
// same cfg, so they agree on where the filesystem tree and the record
// store live.
func openBackends(cfg serverConfig, log liblog.FuncLog) (method.Backends, error) {
	sem, err := ipcsem.New(cfg.SemDir, cfg.SemRecordName)
	if err != nil {
		return method.Backends{}, ErrorBackendOpen.Error(err)
	}

	rs, err := recordstore.New(cfg.RecordStoreDir, sem, log)
	if err != nil {
		return method.Backends{}, ErrorBackendOpen.Error(err)
	}

	fs := fsstore.New(cfg.WriteRoot, log)

	return method.Backends{Filesystem: fs, Record: rs}, nil
}

// procpoolConfig adapts a serverConfig into the procpool.Config the
// supervisor and WorkerLoop both consume, re-exec'ing the running
// binary (os.Executable(), falling back to os.Args[0]) as each worker.
func procpoolConfig(cfg serverConfig, cfgFile string, log liblog.FuncLog) procpool.Config {
	var args []string
	if cfgFile != "" {
		args = []string{"--config", cfgFile}
	}

	return procpool.Config{
		ListenAddr:   cfg.ListenAddr,
		Network:      cfg.Network,
		WorkerCount:  cfg.WorkerCount,
		MaxClients:   cfg.MaxClients,
		Progress:     cfg.Progress,
		WorkerBinary: selfPath(),
		WorkerArgs:   args,
		SemDir:       cfg.SemDir,
		SemWriteName: cfg.SemWriteName,
		SemReadName:  cfg.SemReadName,
		SemPipeName:  cfg.SemPipeName,
		Log:          log,
	}
}

func selfPath() string {
	if p, err := os.Executable(); err == nil {
		return p
	}
	return os.Args[0]
}
