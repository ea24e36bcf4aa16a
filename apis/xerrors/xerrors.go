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

// Package xerrors holds the error-kind taxonomy shared across logmux (spec
// §7). Kinds are plain sentinel errors, classified with errors.Is and
// wrapped at the call site with fmt.Errorf("%w: ...") or
// github.com/pkg/errors.Wrap — the same convention the teacher package
// apis/level used for ErrLevelInvalid, rather than a parallel custom-error
// type hierarchy.
package xerrors

import "errors"

var (
	// ErrConfig marks a bad argument or configuration value.
	ErrConfig = errors.New("logmux: config error")

	// ErrIO marks a filesystem or descriptor failure outside the
	// write-failure/reopen-failure state machine (e.g. pidfile creation).
	ErrIO = errors.New("logmux: io error")

	// ErrFormat marks a pattern that the Path Renderer could not compile
	// or render.
	ErrFormat = errors.New("logmux: format error")

	// ErrInterrupted marks a syscall that returned EINTR with no pending
	// rotate request to absorb it.
	ErrInterrupted = errors.New("logmux: interrupted")

	// ErrWriteFailureFatal marks a write or reopen failure under
	// exit-on-write-error.
	ErrWriteFailureFatal = errors.New("logmux: fatal write failure")
)
