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

// Command httpd10 is the HTTP/1.0 origin server described in this
// module: a pre-fork supervisor (procpool) dispatching accepted
// connections to worker processes that speak the HTTP/1.0 codec
// (httpmsg) and answer GET/HEAD/POST against a filesystem tree or a
// keyed record store (storage).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nabbar/httpd10/version"
)

var (
	cfgFile string
	appVersion = version.NewVersion(
		version.License_MIT,
		"httpd10",
		"HTTP/1.0 origin server with a process-pool dispatcher",
		"2025-01-01T00:00:00Z",
		"dev",
		"0.1.0",
		"Nicolas JUHEL",
		"HTTPD10",
		serverConfig{},
		0,
	)
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "httpd10",
		Short:   "HTTP/1.0 origin server",
		Long:    appVersion.GetInfo(),
		Version: appVersion.GetRelease(),
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newWorkerCmd())

	return root
}

func newViper() *viper.Viper {
	return viper.New()
}

// Execute runs the root command, printing any error to stderr and
// exiting 1, per spec.md §6's exit-code contract.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
