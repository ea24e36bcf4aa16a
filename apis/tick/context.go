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

// Package tick defines the per-iteration context the Copy Engine hands to
// the Rotation Controller (spec §3, §4.3).
package tick

import "time"

// Context is captured once per loop iteration, only when at least one sink
// is pattern-based (rotation-enabled). Every sink's CurrentDescriptor call
// for that iteration observes the same Now, so two sinks never disagree
// about whether "the name changed" within one tick.
type Context struct {
	// Now is the local time captured for this iteration. Path patterns are
	// rendered against it.
	Now time.Time

	// ForceRotate requests an unconditional reopen this tick, regardless
	// of whether the rendered name changed (spec §4.3 step 3). Set by the
	// engine when a rotate signal was observed.
	ForceRotate bool

	// ExitOnWriteError makes a reopen/write failure fatal instead of
	// disabling the sink for this tick (spec §4.3 step 7, Flags.exit-on-write-error).
	ExitOnWriteError bool

	// Quiet suppresses diagnostic output to stderr (Flags.quiet).
	Quiet bool

	// Splice is set when the fast path is driving this tick: a reopened
	// file must be seeked to end-of-file to preserve append semantics
	// (spec §4.3 step 5), since splice-mode opens files O_RDWR instead of
	// O_APPEND.
	Splice bool
}
