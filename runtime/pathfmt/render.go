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

// Package pathfmt implements the Path Renderer (spec §4.1): turning a
// pattern containing strftime-style time-formatting escapes plus a
// captured local time into a concrete filesystem path.
package pathfmt

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"

	"dirpx.dev/logmux/apis/xerrors"
)

// Renderer compiles a pattern once and renders it against arbitrary times.
// The rendered name is the rotation trigger (spec §4.1), so rendering must
// be a pure function of (pattern, time) — Renderer holds no mutable state
// beyond the compiled pattern itself.
type Renderer struct {
	pattern string
	compiled *strftime.Strftime
}

// New compiles pattern. A pattern with no time-formatting escapes compiles
// successfully and always renders to itself — this is how a plain,
// non-rotating path-sink is represented.
func New(pattern string) (*Renderer, error) {
	compiled, err := strftime.New(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: compile pattern %q: %v", xerrors.ErrFormat, pattern, err)
	}
	return &Renderer{pattern: pattern, compiled: compiled}, nil
}

// Pattern returns the original, uncompiled pattern string.
func (r *Renderer) Pattern() string {
	return r.pattern
}

// Render renders the pattern against t. strftime.Strftime.FormatString never
// fails once compiled — the "buffer too small" failure mode of the C
// original's strftime(3) call does not exist in Go's allocate-as-needed
// strings.Builder-backed implementation — but Render keeps an error return
// so callers have one FormatError-classified path to handle if that ever
// changes (e.g. a future pattern extension with external lookups).
func (r *Renderer) Render(t time.Time) (string, error) {
	if r.compiled == nil {
		return "", fmt.Errorf("%w: renderer for %q not initialized", xerrors.ErrFormat, r.pattern)
	}
	return r.compiled.FormatString(t), nil
}
