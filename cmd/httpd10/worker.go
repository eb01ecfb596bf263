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
	"github.com/spf13/cobra"

	liblog "github.com/nabbar/httpd10/logger"
	"github.com/nabbar/httpd10/procpool"
)

// newWorkerCmd builds the hidden "worker" subcommand forkWorker re-execs
// the running binary with. It is never invoked directly by an operator;
// the supervisor puts it in front of WorkerArgs and sets the handoff fds it
// expects to inherit before starting the process.
func newWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "worker",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(newViper(), cfgFile)
			if err != nil {
				return err
			}

			log := func() liblog.Logger { return liblog.New(cmd.Context()) }

			backends, err := openBackends(cfg, log)
			if err != nil {
				return err
			}
			if c, ok := backends.Record.(interface{ Close() error }); ok {
				defer func() { _ = c.Close() }()
			}

			return procpool.WorkerLoop(cmd.Context(), procpoolConfig(cfg, cfgFile, log), backends)
		},
	}
	return cmd
}
