/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package driver implements the Driver (spec §4.7): it owns lifetimes,
// wires the other components, runs the outer loop around the Copy Engine,
// and classifies the result into an exit code (spec §6).
package driver

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/logmux/apis/status"
	"dirpx.dev/logmux/apis/tick"
	"dirpx.dev/logmux/internal/cli"
	"dirpx.dev/logmux/runtime/engine"
	"dirpx.dev/logmux/runtime/fifo"
	"dirpx.dev/logmux/runtime/pidfile"
	rsink "dirpx.dev/logmux/runtime/sink"
	"dirpx.dev/logmux/runtime/signalcoord"
)

// Exit codes (spec §6).
const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitInterrupted = 2
)

// Run wires and executes one complete program run, returning the process
// exit code.
func Run(cfg *cli.Config) int {
	log := newLogger(cfg.Quiet)
	defer log.Sync() //nolint:errcheck

	if cfg.PidFile != "" {
		if err := pidfile.Write(cfg.PidFile); err != nil {
			logErr(log, cfg.Quiet, "write pidfile", err)
			return ExitError
		}
		defer func() {
			if err := pidfile.Remove(cfg.PidFile); err != nil {
				logErr(log, cfg.Quiet, "remove pidfile", err)
			}
		}()
	}

	coord, err := signalcoord.New()
	if err != nil {
		logErr(log, cfg.Quiet, "install signal handlers", err)
		return ExitError
	}
	defer coord.Close()

	useSplice := !cfg.NoSplice && len(cfg.Sinks) == 1 && cfg.Sinks[0].IsPath()
	builder := &rsink.Builder{Log: log}
	initTick := tick.Context{Now: time.Now(), Splice: useSplice}

	entries := make([]engine.Entry, 0, len(cfg.Sinks))
	for _, spec := range cfg.Sinks {
		ctrl, err := builder.Initialize(spec, initTick)
		if err != nil {
			logErr(log, cfg.Quiet, "initialize sink", err)
			for _, e := range entries {
				_ = e.Ctrl.Close()
			}
			return ExitError
		}
		entries = append(entries, engine.Entry{Spec: spec, Ctrl: ctrl})
	}

	var st status.Status
	if cfg.FIFOPath != "" {
		st, err = runFIFO(cfg, coord, log, entries)
	} else {
		eng := engine.New(os.Stdin, entries, coord, log, cfg.ExitOnWriteError, cfg.Quiet, cfg.NoSplice)
		st, err = eng.Run()
		eng.Close()
	}

	return classify(st, err, coord, log, cfg.Quiet)
}

// runFIFO implements spec §4.7's FIFO loop: create once, then open-run-close
// repeatedly until EOF stops recurring or a termination signal was seen.
func runFIFO(cfg *cli.Config, coord *signalcoord.Coordinator, log *zap.SugaredLogger, entries []engine.Entry) (status.Status, error) {
	f, err := fifo.Ensure(cfg.FIFOPath)
	if err != nil {
		return status.Error, err
	}
	defer func() {
		if err := f.Unlink(); err != nil {
			logErr(log, cfg.Quiet, "unlink fifo", err)
		}
	}()

	var eng *engine.Engine
	defer func() {
		if eng != nil {
			eng.Close()
		}
	}()

	for {
		in, err := f.Open()
		if err != nil {
			return status.Error, err
		}

		eng = engine.New(in, entries, coord, log, cfg.ExitOnWriteError, cfg.Quiet, cfg.NoSplice)
		st, rerr := eng.Run()
		_ = in.Close()

		if st != status.Success || coord.Terminated() {
			return st, rerr
		}
		// clean EOF with no termination signal observed: reopen and resume.
	}
}

// classify maps a Copy Engine result to an exit code per spec §6, §7:
// Interrupted maps to Success (0) iff a termination signal was observed,
// otherwise to exit code 2.
func classify(st status.Status, err error, coord *signalcoord.Coordinator, log *zap.SugaredLogger, quiet bool) int {
	switch st {
	case status.Success:
		return ExitSuccess
	case status.Interrupted:
		if coord.Terminated() {
			return ExitSuccess
		}
		logErr(log, quiet, "interrupted", err)
		return ExitInterrupted
	default:
		logErr(log, quiet, "run", err)
		return ExitError
	}
}

func newLogger(quiet bool) *zap.SugaredLogger {
	if quiet {
		return zap.NewNop().Sugar()
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(os.Stderr), zapcore.InfoLevel)
	return zap.New(core).Sugar()
}

func logErr(log *zap.SugaredLogger, quiet bool, op string, err error) {
	if quiet || err == nil {
		return
	}
	log.Errorw(op, "err", err)
}
