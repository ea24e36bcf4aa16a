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

package engine

import (
	"errors"
	"fmt"
	"io"
	"syscall"
	"time"

	asink "dirpx.dev/logmux/apis/sink"
	"dirpx.dev/logmux/apis/status"
	"dirpx.dev/logmux/apis/tick"
	"dirpx.dev/logmux/apis/xerrors"
)

// Run drives the engine to completion against its current Input, selecting
// the fast path when eligible (spec §4.5) and falling back to the slow path
// either because it was never eligible or because the fast path disabled
// itself mid-run (EINVAL from Splice — spec §4.5 step 4).
//
// Run does not close the sinks: a single set of Entries may be driven
// through several inputs in turn (the Driver's FIFO-reopen loop, spec
// §4.7), so sink teardown is the Driver's responsibility via Close, called
// once after the last Run.
func (e *Engine) Run() (status.Status, error) {
	if e.fastPathEligible() {
		st, err, fellBack := e.runFast()
		if !fellBack {
			return st, err
		}
	}
	return e.runSlow()
}

// runSlow implements the Copy Engine slow path (spec §4.4).
func (e *Engine) runSlow() (status.Status, error) {
	buf := make([]byte, bufSize)

	for {
		var n int
		forceRotate := false

		if e.Coord.ConsumeRotate() {
			forceRotate = true
		} else {
			read, err := e.Input.Read(buf)
			n = read
			switch {
			case err == nil && n == 0:
				return status.Success, nil
			case errors.Is(err, io.EOF):
				if n == 0 {
					return status.Success, nil
				}
				// n > 0 with io.EOF: process this final chunk now, the
				// next Read will report n == 0 and end the loop.
			case errors.Is(err, syscall.EINTR):
				if e.Coord.ConsumeRotate() {
					forceRotate = true
					n = 0
				} else {
					return status.Interrupted, xerrors.ErrInterrupted
				}
			case err != nil:
				return status.Error, fmt.Errorf("%w: read input: %v", xerrors.ErrIO, err)
			}
		}

		t := tick.Context{
			ForceRotate:      forceRotate,
			ExitOnWriteError: e.ExitOnWriteError,
			Quiet:            e.Quiet,
		}
		if e.anyPathSink {
			t.Now = time.Now()
		}

		for _, s := range e.Sinks {
			desc, err := s.Ctrl.CurrentDescriptor(t)
			if err != nil {
				return status.Error, err
			}
			if desc == nil {
				continue // disabled this tick; retried on the next
			}

			st, werr := writeFull(desc, buf[:n], e.ExitOnWriteError, s.Ctrl)
			if werr != nil {
				return st, werr
			}
		}
	}
}

// writeFull implements spec §4.4's per-sink write-failure policy: advance
// on partial writes, and classify any error into terminate-the-engine,
// drop-this-chunk-for-this-sink, or disable-this-sink.
func writeFull(desc asink.Descriptor, data []byte, exitOnWriteError bool, ctrl asink.Controller) (status.Status, error) {
	for len(data) > 0 {
		n, err := desc.Write(data)
		data = data[n:]
		if err == nil {
			continue
		}
		if errors.Is(err, syscall.EINTR) {
			return status.Interrupted, xerrors.ErrInterrupted
		}
		if exitOnWriteError {
			return status.Error, fmt.Errorf("%w: write: %v", xerrors.ErrWriteFailureFatal, err)
		}
		if errors.Is(err, syscall.EAGAIN) {
			break // chunk may be dropped for this sink; not backpressure-aware beyond this
		}
		ctrl.Invalidate()
		break
	}
	return status.Success, nil
}
