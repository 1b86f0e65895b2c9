/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package config loads the settings of the licensecode command from a .env
// file, the environment and command-line flags, in increasing precedence.
package config

import (
	"flag"
	"io"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode"
)

type Config struct {
	// Decoding
	Format  string `env:"LICENSECODE_FORMAT" envDefault:"drivers"`
	Hex     bool   `env:"LICENSECODE_HEX"`
	Pretty  bool   `env:"LICENSECODE_PRETTY"`
	Workers int    `env:"LICENSECODE_WORKERS" envDefault:"4"`

	// Service
	Serve bool   `env:"-"` // flag only
	Addr  string `env:"LICENSECODE_ADDR" envDefault:"localhost:8080"`

	LogLevel string `env:"LICENSECODE_LOG_LEVEL" envDefault:"info"`

	// Set by Load from Format, LogLevel and the positional arguments.
	DecodeFormat licensecode.Format `env:"-"`
	Level        zapcore.Level      `env:"-"`
	Files        []string           `env:"-"`
}

// Load builds a Config from the .env file in the working directory (if any),
// the environment and args, which shouldn't include the program name.
//
// Flag usage and parse errors are written to output.
func Load(args []string, output io.Writer) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "unable to parse environment")
	}

	fs := flag.NewFlagSet("licensecode", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Format, "format", cfg.Format, "barcode format: drivers or vehicle")
	fs.BoolVar(&cfg.Hex, "hex", cfg.Hex, "inputs are hex-encoded")
	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "print colored, human-readable records instead of JSON")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of inputs decoded at once")
	fs.BoolVar(&cfg.Serve, "serve", cfg.Serve, "run the HTTP decode service instead of decoding files")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for -serve")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.Usage = func() {
		_, _ = io.WriteString(fs.Output(),
			"usage: licensecode [flags] [file ...]\n\n"+
				"Decodes barcode captures from the given files, or stdin if there are none.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Files = fs.Args()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	f, err := licensecode.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	c.DecodeFormat = f

	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, but is %d", c.Workers)
	}

	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid log level")
	}
	c.Level = lvl

	if c.Serve && c.Addr == "" {
		return errors.New("-serve requires a listen address")
	}
	return nil
}
