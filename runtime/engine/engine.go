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

// Package engine implements the Copy Engine (spec §4.4, §4.5): the
// signal-synchronized loop that copies bytes from one input to N sinks,
// sharing the Rotation Controller behind the apis/sink.Controller interface
// so the slow and fast paths differ only in I/O primitive and blocking
// model (spec §9 design note).
package engine

import (
	"os"

	"go.uber.org/zap"

	asink "dirpx.dev/logmux/apis/sink"
	"dirpx.dev/logmux/runtime/signalcoord"
)

// bufSize is the slow path's read chunk size, matching the C original's
// BUFSIZ-sized transfer unit (8192 bytes on glibc; spec §4.4 step 1).
const bufSize = 8192

// spliceMax bounds a single fast-path transfer (spec §4.5 step 3: "a large
// bounded chunk (2 GiB)").
const spliceMax = 2 << 30

// Entry pairs one configured sink with the controller driving it.
type Entry struct {
	Spec asink.Specification
	Ctrl asink.Controller
}

// Engine is the Copy Engine. One Engine instance drives one input to
// completion; Run is not safe to call concurrently or more than once.
type Engine struct {
	Input   *os.File
	Sinks   []Entry
	Coord   *signalcoord.Coordinator
	Log     *zap.SugaredLogger

	ExitOnWriteError bool
	Quiet            bool
	NoSplice         bool

	anyPathSink bool
}

// New constructs an Engine ready to Run.
func New(input *os.File, sinks []Entry, coord *signalcoord.Coordinator, log *zap.SugaredLogger, exitOnWriteError, quiet, noSplice bool) *Engine {
	e := &Engine{
		Input:            input,
		Sinks:            sinks,
		Coord:            coord,
		Log:              log,
		ExitOnWriteError: exitOnWriteError,
		Quiet:            quiet,
		NoSplice:         noSplice,
	}
	for _, s := range sinks {
		if s.Spec.IsPath() {
			e.anyPathSink = true
			break
		}
	}
	return e
}

// fastPathEligible implements spec §4.5's selection rule: exactly one
// sink, and it is path-backed, and -S/--no-splice was not given. Splice(2)
// transfers to a single destination descriptor, so it cannot serve more
// than one sink regardless of kind.
func (e *Engine) fastPathEligible() bool {
	return !e.NoSplice && len(e.Sinks) == 1 && e.Sinks[0].Spec.IsPath()
}

// Close closes every sink's owned descriptors, in order, logging (but not
// failing on) close errors — teardown is best-effort per spec §3 ("No
// descriptor opened by the engine escapes without being closed on all exit
// paths"). The Driver calls Close once, after the last Run.
func (e *Engine) Close() {
	for _, s := range e.Sinks {
		if err := s.Ctrl.Close(); err != nil && !e.Quiet {
			e.Log.Warnw("close sink", "err", err)
		}
	}
}
