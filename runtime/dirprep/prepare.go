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

// Package dirprep implements the Directory Preparer (spec §4.2): ensuring a
// path's ancestor directories exist before a sink opens it.
package dirprep

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"dirpx.dev/logmux/apis/xerrors"
)

// DefaultMode is used when a caller does not specify a directory mode.
const DefaultMode = 0o755

// Prepare walks path's ancestors and creates any that do not exist, using
// mode for newly created directories. The final path component (the file
// itself) is never created. Matches the teacher's rotatingFileSink.openCurrent
// (os.MkdirAll(dir, 0o755)) — os.MkdirAll already walks left to right and
// tolerates "already exists" for every intermediate component, so the C
// original's component-by-component loop collapses to one stdlib call.
func Prepare(path string, mode os.FileMode) error {
	if mode == 0 {
		mode = DefaultMode
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, mode); err != nil {
		return fmt.Errorf("%w: %w", xerrors.ErrIO, errors.Wrapf(err, "create directory %q", dir))
	}
	return nil
}
