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

package sink

import (
	"dirpx.dev/logmux/apis/tick"
)

// Descriptor is the current writable end of a sink for one tick: either the
// sink's inherited *os.File or the file most recently opened by a rotation.
// A nil Descriptor means the sink is Disabled for this tick (a reopen or
// write previously failed and exit-on-write-error was not set); the engine
// skips it and the Rotation Controller will retry the reopen next tick.
type Descriptor interface {
	Fd() uintptr
	Write(p []byte) (int, error)
}

// Controller is the Rotation Controller contract (spec §4.3): it owns one
// sink's lifecycle from first render through every subsequent reopen.
//
// Implementations must be safe to call exactly once per tick, in input
// order relative to other sinks — Controller itself does not lock, since
// the engine's single-threaded loop is the only caller.
type Controller interface {
	// CurrentDescriptor returns the descriptor a chunk should be written
	// to for this tick, or nil if the sink is disabled for this tick.
	CurrentDescriptor(t tick.Context) (Descriptor, error)

	// Close releases every descriptor this controller has ever opened.
	// The engine calls Close exactly once, during teardown. Close never
	// closes an inherited descriptor.
	Close() error

	// Invalidate marks the sink's descriptor absent after a write failure
	// the engine itself observed (spec §4.4 write-failure policy: "mark
	// the sink's descriptor absent ... and break"). The next
	// CurrentDescriptor call attempts a reopen. A no-op for inherited
	// sinks, which never reopen.
	Invalidate()
}
