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
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"dirpx.dev/logmux/apis/status"
	"dirpx.dev/logmux/apis/tick"
	"dirpx.dev/logmux/apis/xerrors"
)

// runFast implements the Copy Engine fast path (spec §4.5): a zero-copy
// splice(2) transfer from the input descriptor to the single path-sink's
// output descriptor, used only while exactly one sink exists and is
// path-backed.
//
// The returned bool reports whether the caller should fall through to the
// slow path (true only on EINVAL: the kernel refused splice for this
// descriptor pair, e.g. the input is a regular file rather than a pipe).
func (e *Engine) runFast() (status.Status, error, bool) {
	inputFD := int(e.Input.Fd())

	origFlags, err := unix.FcntlInt(uintptr(inputFD), unix.F_GETFL, 0)
	if err != nil {
		return status.Error, fmt.Errorf("%w: get input flags: %v", xerrors.ErrIO, err), false
	}
	if err := unix.SetNonblock(inputFD, true); err != nil {
		return status.Error, fmt.Errorf("%w: set input non-blocking: %v", xerrors.ErrIO, err), false
	}
	restored := false
	restore := func() {
		if restored {
			return
		}
		restored = true
		_, _ = unix.FcntlInt(uintptr(inputFD), unix.F_SETFL, origFlags)
	}
	defer restore()

	ctrl := e.Sinks[0].Ctrl

	// forceRotate carries a pending rotate across to the tick that consumes
	// it, whichever branch discovers it (ConsumeRotate at the top, or a
	// ConsumeRotate after EINTR from the poll or from the splice itself).
	// It is consumed into TickContext and cleared at the start of each tick.
	forceRotate := false

	for {
		if !forceRotate {
			forceRotate = e.Coord.ConsumeRotate()
		}

		// Step 1 (spec §4.5) reopens on a pending rotate before step 2
		// waits for readability, so a rotate signal takes effect even
		// while the input is idle — skip the poll only for that tick.
		forcedTick := forceRotate
		if !forceRotate {
			if err := waitReadable(inputFD); err != nil {
				if errors.Is(err, syscall.EINTR) {
					if e.Coord.ConsumeRotate() {
						forceRotate = true
						forcedTick = true
					} else {
						return status.Interrupted, xerrors.ErrInterrupted, false
					}
				} else {
					return status.Error, fmt.Errorf("%w: poll input: %v", xerrors.ErrIO, err), false
				}
			}
		}

		t := tick.Context{
			Now:              time.Now(),
			ForceRotate:      forceRotate,
			Splice:           true,
			ExitOnWriteError: e.ExitOnWriteError,
			Quiet:            e.Quiet,
		}
		forceRotate = false

		desc, err := ctrl.CurrentDescriptor(t)
		if err != nil {
			return status.Error, err, false
		}
		if desc == nil {
			// Disabled this tick; nothing to transfer. Next iteration's
			// poll retries readability and CurrentDescriptor retries the
			// reopen.
			continue
		}

		n, serr := unix.Splice(inputFD, nil, int(desc.Fd()), nil, spliceMax, unix.SPLICE_F_MOVE|unix.SPLICE_F_NONBLOCK)
		switch {
		case serr == nil && n == 0:
			return status.Success, nil, false
		case serr == nil:
			continue
		case errors.Is(serr, syscall.EAGAIN) && forcedTick:
			// The reopen this tick skipped the readability poll (above);
			// finding nothing to move yet is expected here, not an error.
			// The next iteration polls before attempting another splice,
			// so an EAGAIN on any non-forced tick still falls to default.
			continue
		case errors.Is(serr, syscall.EINVAL):
			restore()
			return status.Success, nil, true
		case errors.Is(serr, syscall.EINTR):
			// A rotate that arrived during the splice call forces the next
			// tick's reopen; an EINTR with no pending rotate ends the run.
			if e.Coord.ConsumeRotate() {
				forceRotate = true
				continue
			}
			return status.Interrupted, xerrors.ErrInterrupted, false
		default:
			return status.Error, fmt.Errorf("%w: splice: %v", xerrors.ErrIO, serr), false
		}
	}
}

// waitReadable blocks until fd is readable using a single-descriptor poll
// (spec §4.5 step 2).
func waitReadable(fd int) error {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	_, err := unix.Poll(fds, -1)
	return err
}
