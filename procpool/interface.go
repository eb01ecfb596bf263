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

// Package procpool implements the listener/pre-fork supervisor (C1) and
// the connection handoff channel (C2): the parent owns the listening
// socket and a fixed pool of worker processes, and hands each accepted
// connection to exactly one worker over a domain-socket pair guarded by
// named semaphores, the same way the teacher's socket/server packages
// separate "owns the listener" from "serves one connection".
package procpool

import (
	"context"

	validator "github.com/go-playground/validator/v10"

	liblog "github.com/nabbar/httpd10/logger"
)

// Config describes one supervisor instance. It is validated with
// validator tags the same way the teacher's component configs are
// (config/components/*/config.go).
type Config struct {
	ListenAddr string `mapstructure:"listen_addr" validate:"required"`
	Network    string `mapstructure:"network" validate:"required,oneof=tcp tcp4 tcp6"`

	WorkerCount int `mapstructure:"worker_count" validate:"min=1"`
	MaxClients  int `mapstructure:"max_clients" validate:"min=1"`

	// Progress renders an mpb bar tracking slot-table occupancy while
	// the supervisor runs, the same opt-in the teacher's semaphore
	// package itself exposes via New's withProgress argument.
	Progress bool `mapstructure:"progress"`

	// WorkerBinary is the executable re-invoked for each worker, with
	// WorkerArgs appended and the hidden worker subcommand prepended.
	WorkerBinary string   `mapstructure:"-" validate:"required"`
	WorkerArgs   []string `mapstructure:"-"`

	// SemDir holds the lock files backing the three named semaphores.
	SemDir       string `mapstructure:"sem_dir" validate:"required"`
	SemWriteName string `mapstructure:"sem_write_name" validate:"required"`
	SemReadName  string `mapstructure:"sem_read_name" validate:"required"`
	SemPipeName  string `mapstructure:"sem_pipe_name" validate:"required"`

	// Log obtains the logger.Logger for lifecycle events: the supervisor
	// calls it once when created, and WorkerLoop once per worker. A nil
	// Log is replaced by a
	// logger discarding every call, the same default the teacher's own
	// components fall back to when no FuncLog is configured.
	Log liblog.FuncLog `mapstructure:"-" validate:"-"`
}

func (c Config) logger() liblog.Logger {
	if c.Log == nil {
		return liblog.NewDiscard()
	}
	return c.Log()
}

var validate = validator.New()

// Validate checks c against its struct tags.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// Supervisor owns the listening socket and the worker pool for one
// Config. Start binds and forks; Run polls until ctx is done; Shutdown
// tears every resource down, including the named semaphores.
type Supervisor interface {
	Start() error
	Run(ctx context.Context) error
	Shutdown() error
}

// New validates cfg and returns a Supervisor ready for Start.
func New(cfg Config) (Supervisor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, ErrorBadConfig.Error(err)
	}
	return newSupervisor(cfg), nil
}
