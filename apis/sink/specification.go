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
	"fmt"
	"os"
)

// Specification is an immutable description of one configured sink, as
// produced by internal/cli from a `FILE [@LINK]` positional pair.
//
// Exactly one of Pattern or Descriptor is set. Link is only meaningful when
// Pattern is set — it names a symlink path that should always point at the
// currently active rotated file.
type Specification struct {
	// Pattern is a filesystem path that may contain strftime-style
	// time-formatting escapes (e.g. "out-%Y%m%d.log"). Set iff Descriptor
	// is nil.
	Pattern string

	// Descriptor is a pre-opened, inherited file (stdout or stderr). The
	// engine never closes it. Set iff Pattern == "".
	Descriptor *os.File

	// Link, if non-empty, names a symlink path maintained to point at the
	// absolute path of the sink's currently active rotated file. Only
	// valid when Pattern is set.
	Link string
}

// Validate checks the "exactly one of {Pattern, Descriptor}" invariant and
// that Link is only used alongside Pattern.
func (s Specification) Validate() error {
	hasPattern := s.Pattern != ""
	hasDescriptor := s.Descriptor != nil
	if hasPattern == hasDescriptor {
		return fmt.Errorf("sink: exactly one of pattern or descriptor must be set")
	}
	if s.Link != "" && !hasPattern {
		return fmt.Errorf("sink: link %q is only valid for a path sink", s.Link)
	}
	return nil
}

// IsPath reports whether this specification describes a path-backed sink.
func (s Specification) IsPath() bool {
	return s.Pattern != ""
}
