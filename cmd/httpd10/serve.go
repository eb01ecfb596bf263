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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	liblog "github.com/nabbar/httpd10/logger"
	"github.com/nabbar/httpd10/procpool"
)

// newServeCmd builds the "serve" subcommand: load config, open both
// storage backends long enough to fail fast on a bad path, bind the
// supervisor, run until SIGINT/SIGTERM, then tear everything down.
func newServeCmd() *cobra.Command {
	var progress bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "bind the listen socket and run the worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(newViper(), cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("progress") {
				cfg.Progress = progress
			}

			log := func() liblog.Logger { return liblog.New(cmd.Context()) }

			// Fail fast on a bad write root or record-store path before
			// any worker is forked.
			backends, err := openBackends(cfg, log)
			if err != nil {
				return err
			}
			if c, ok := backends.Record.(interface{ Close() error }); ok {
				_ = c.Close()
			}

			sup, err := procpool.New(procpoolConfig(cfg, cfgFile, log))
			if err != nil {
				return ErrorServe.Error(err)
			}

			if err = sup.Start(); err != nil {
				return ErrorServe.Error(err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runErr := sup.Run(ctx)
			shutErr := sup.Shutdown()

			if runErr != nil {
				return ErrorServe.Error(runErr)
			}
			return shutErr
		},
	}

	cmd.Flags().BoolVar(&progress, "progress", false, "render an mpb progress bar tracking slot-table occupancy")

	return cmd
}
