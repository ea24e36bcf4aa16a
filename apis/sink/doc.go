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

// Package sink defines the contracts for logmux's output destinations.
//
// A sink is either an inherited descriptor (stdout/stderr, never closed by
// the engine) or a path-backed file whose rendered name is derived from a
// time-formatted pattern and rotated transparently when that name changes.
// This package only describes the shape; the Rotation Controller that
// implements the state machine lives in runtime/sink.
package sink
