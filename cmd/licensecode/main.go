/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Command licensecode decodes driver's license and vehicle license barcode
// captures from files or stdin, or serves the decoders over HTTP.
package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/internal/config"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/internal/render"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/internal/server"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2

	stdinName       = "-"
	shutdownTimeout = 10 * time.Second
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		_, _ = io.WriteString(stderr, "licensecode: "+err.Error()+"\n")
		return exitUsage
	}

	logger := newLogger(cfg.Level, stderr)
	sugar := logger.Sugar()
	defer func() {
		_ = logger.Sync()
	}()

	if cfg.Serve {
		if err := serve(cfg, sugar); err != nil {
			sugar.Errorw("server failed", "error", err)
			return exitFailure
		}
		return exitOK
	}

	if !decodeAll(cfg, sugar, stdin, stdout) {
		return exitFailure
	}
	return exitOK
}

func newLogger(level zapcore.Level, out io.Writer) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(out)),
		level,
	)
	return zap.New(core)
}

func serve(cfg *config.Config, log *zap.SugaredLogger) error {
	srv := server.NewHTTPServer(cfg.Addr, server.New(log))

	errs := make(chan error, 1)
	go func() {
		log.Infow("starting licensecode server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errs:
		return errors.Wrap(err, "unable to serve")
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}
	return nil
}

// decodeAll decodes every input and writes the results in input order. It
// reports whether all of them decoded.
func decodeAll(cfg *config.Config, log *zap.SugaredLogger, stdin io.Reader, stdout io.Writer) bool {
	sources := cfg.Files
	if len(sources) == 0 {
		sources = []string{stdinName}
	}

	// stdin can only be read once, however often it's named
	var stdinData []byte
	var stdinErr error
	for _, src := range sources {
		if src == stdinName {
			stdinData, stdinErr = io.ReadAll(stdin)
			stdinErr = errors.Wrap(stdinErr, "unable to read stdin")
			break
		}
	}

	results := make([]render.Result, len(sources))
	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if src == stdinName {
				results[i] = decode(cfg, src, stdinData, stdinErr)
			} else {
				data, err := os.ReadFile(src)
				results[i] = decode(cfg, src, data, errors.Wrapf(err, "unable to read %s", src))
			}
			return nil
		})
	}
	_ = g.Wait()

	write := render.JSON
	if cfg.Pretty {
		write = render.Pretty
	}

	ok := true
	for _, res := range results {
		if res.Err != nil {
			ok = false
			log.Debugw("decode failed", "source", res.Source,
				"kind", licensecode.KindOf(res.Err).String(), "error", res.Err)
		}
		if err := write(stdout, res); err != nil {
			log.Errorw("unable to write result", "source", res.Source, "error", err)
			ok = false
		}
	}
	return ok
}

func decode(cfg *config.Config, src string, data []byte, readErr error) render.Result {
	res := render.Result{Source: src}
	if readErr != nil {
		res.Err = readErr
		return res
	}

	if cfg.Hex {
		res.Record, res.Err = licensecode.DecodeString(cfg.DecodeFormat, string(data))
	} else {
		res.Record, res.Err = licensecode.Decode(cfg.DecodeFormat, data)
	}
	return res
}
