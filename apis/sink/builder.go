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

import "dirpx.dev/logmux/apis/tick"

// Builder constructs a Controller from a stable Specification.
// This interface is a contract only; implementations live in runtime/sink.
type Builder interface {
	// Initialize renders the pattern (for path sinks) under t's local
	// time, opens the first file (or adopts the inherited descriptor),
	// and creates the initial symlink if one was specified. Any failure
	// here is fatal (spec §4.3): the returned error should not be
	// retried by the caller.
	Initialize(spec Specification, t tick.Context) (Controller, error)
}
