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

// Package signalcoord implements the Signal Coordinator (spec §4.6, §5):
// SIGPIPE is ignored until Close, SIGHUP sets a level-triggered
// rotate flag, and SIGINT/SIGTERM set a level-triggered termination flag the
// Driver polls at FIFO-reopen points.
//
// Go's runtime never delivers a signal as a true interrupt to an arbitrary
// goroutine the way the C original's sigaction handler interrupts the main
// thread — os/signal.Notify already funnels delivery through one runtime
// goroutine onto a channel, so "block the rotate signal during a critical
// section" (spec §4.6) reduces to "don't consume the channel mid-section",
// which the atomic flag below gives for free. There is no sigprocmask(2)
// equivalent to reach for here; the self-pipe/signalfd alternative spec §9
// calls out is exactly what os/signal already does on our behalf.
package signalcoord

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Coordinator owns the rotate-pending and terminate-pending flags and the
// underlying signal masking state.
type Coordinator struct {
	rotatePending atomic.Bool
	terminated    atomic.Bool

	sigHUP  chan os.Signal
	sigTerm chan os.Signal

	done chan struct{}
}

// New installs handlers for SIGHUP, SIGINT and SIGTERM, and ignores SIGPIPE
// until Close (spec §4.6: "writes to closed pipes return EPIPE instead of
// terminating the process").
func New() (*Coordinator, error) {
	signal.Ignore(syscall.SIGPIPE)

	c := &Coordinator{
		sigHUP:  make(chan os.Signal, 1),
		sigTerm: make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}
	signal.Notify(c.sigHUP, syscall.SIGHUP)
	signal.Notify(c.sigTerm, syscall.SIGINT, syscall.SIGTERM)

	go c.pump()
	return c, nil
}

// pump coalesces bursts of SIGHUP/SIGINT/SIGTERM into the two level-
// triggered flags (spec §5 "Signal coalescing"): N deliveries in one
// iteration still yield exactly one pending rotation / one termination.
func (c *Coordinator) pump() {
	for {
		select {
		case <-c.sigHUP:
			c.rotatePending.Store(true)
		case <-c.sigTerm:
			c.terminated.Store(true)
		case <-c.done:
			return
		}
	}
}

// RotatePending reports and does not clear the rotate flag.
func (c *Coordinator) RotatePending() bool {
	return c.rotatePending.Load()
}

// ConsumeRotate atomically clears and returns the rotate flag, matching
// spec §4.4 step 1 ("consume it (clear the flag)").
func (c *Coordinator) ConsumeRotate() bool {
	return c.rotatePending.Swap(false)
}

// Terminated reports whether a graceful-shutdown signal was observed.
func (c *Coordinator) Terminated() bool {
	return c.terminated.Load()
}

// Close stops the signal pump and restores default disposition. Safe to
// call once during Driver teardown.
func (c *Coordinator) Close() {
	close(c.done)
	signal.Stop(c.sigHUP)
	signal.Stop(c.sigTerm)
	signal.Reset(syscall.SIGPIPE)
}
