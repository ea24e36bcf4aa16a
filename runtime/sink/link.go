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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"dirpx.dev/logmux/apis/xerrors"
	"dirpx.dev/logmux/runtime/dirprep"
)

// refreshLink implements the Link Maintainer (spec §2, §4.3): after a
// successful rotation opens target, atomically-as-possible replace link so
// it points at target's absolute path.
//
// unlink-then-symlink is not atomic (spec §9 "Link atomicity"): a reader of
// link between the two calls may observe it missing. No portable
// alternative exists across the filesystems this program targets, so the
// design accepts the gap, as the teacher-adjacent original did.
func refreshLink(link, target string, dirMode os.FileMode) error {
	if err := dirprep.Prepare(link, dirMode); err != nil {
		return err
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("%w: resolve absolute path of %q: %v", xerrors.ErrIO, target, err)
	}

	if err := os.Remove(link); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: remove existing link %q: %v", xerrors.ErrIO, link, err)
	}

	if err := os.Symlink(abs, link); err != nil {
		return fmt.Errorf("%w: create link %q -> %q: %v", xerrors.ErrIO, link, abs, err)
	}
	return nil
}
