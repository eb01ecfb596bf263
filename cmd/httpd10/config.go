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
	validator "github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// serverConfig is the shape viper unmarshals the YAML/env config into,
// following the same validated-struct pattern as the teacher's
// config/components/*/config.go.
type serverConfig struct {
	ListenAddr string `mapstructure:"listen_addr" validate:"required"`
	Network    string `mapstructure:"network" validate:"required,oneof=tcp tcp4 tcp6"`

	WorkerCount int `mapstructure:"worker_count" validate:"min=1"`
	MaxClients  int `mapstructure:"max_clients" validate:"min=1"`

	WriteRoot     string `mapstructure:"write_root" validate:"required"`
	RecordStoreDir string `mapstructure:"record_store_dir" validate:"required"`

	SemDir       string `mapstructure:"sem_dir" validate:"required"`
	SemWriteName string `mapstructure:"sem_write_name" validate:"required"`
	SemReadName  string `mapstructure:"sem_read_name" validate:"required"`
	SemPipeName  string `mapstructure:"sem_pipe_name" validate:"required"`
	SemRecordName string `mapstructure:"sem_record_name" validate:"required"`

	Progress bool `mapstructure:"progress"`
}

// defaultConfig mirrors spec.md §6: fixed, opaque identifiers that
// won't collide with unrelated processes on the host, used whenever
// the loaded config doesn't override them.
func defaultConfig() serverConfig {
	return serverConfig{
		ListenAddr:     ":8080",
		Network:        "tcp",
		WorkerCount:    8,
		MaxClients:     64,
		WriteRoot:      "httpd10-root",
		RecordStoreDir: "httpd10-records",
		SemDir:         ".",
		SemWriteName:   "httpd10-handoff-write",
		SemReadName:    "httpd10-handoff-read",
		SemPipeName:    "httpd10-exit-pipe",
		SemRecordName:  "httpd10-record-store",
	}
}

var validate = validator.New()

func (c serverConfig) Validate() error {
	return validate.Struct(c)
}

// loadConfig binds defaults, an optional config file, and HTTPD10_*
// environment overrides into a validated serverConfig.
func loadConfig(v *viper.Viper, cfgFile string) (serverConfig, error) {
	cfg := defaultConfig()

	v.SetEnvPrefix("httpd10")
	v.AutomaticEnv()
	v.SetDefault("listen_addr", cfg.ListenAddr)
	v.SetDefault("network", cfg.Network)
	v.SetDefault("worker_count", cfg.WorkerCount)
	v.SetDefault("max_clients", cfg.MaxClients)
	v.SetDefault("write_root", cfg.WriteRoot)
	v.SetDefault("record_store_dir", cfg.RecordStoreDir)
	v.SetDefault("sem_dir", cfg.SemDir)
	v.SetDefault("sem_write_name", cfg.SemWriteName)
	v.SetDefault("sem_read_name", cfg.SemReadName)
	v.SetDefault("sem_pipe_name", cfg.SemPipeName)
	v.SetDefault("sem_record_name", cfg.SemRecordName)
	v.SetDefault("progress", cfg.Progress)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return serverConfig{}, ErrorConfigLoad.Error(err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return serverConfig{}, ErrorConfigLoad.Error(err)
	}

	if err := cfg.Validate(); err != nil {
		return serverConfig{}, ErrorConfigInvalid.Error(err)
	}

	return cfg, nil
}
