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

// Package pidfile writes and removes the Driver's own pidfile (spec §4.7,
// §6, §9 — deliberately placed in the Driver's layer, not the engine's: the
// spec notes two drafts of the source disagreed on pidfile ownership and
// resolves it here).
package pidfile

import (
	"fmt"
	"os"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"dirpx.dev/logmux/apis/xerrors"
)

// Write creates path exclusively and writes "<pid>\n" as ASCII decimal
// (spec §6 "Persisted state"). An existing pidfile is an error — logmux
// does not clobber another instance's lock.
func Write(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", xerrors.ErrIO, pkgerrors.Wrapf(err, "create pidfile %q", path))
	}
	defer f.Close()

	if _, err := f.WriteString(strconv.Itoa(os.Getpid()) + "\n"); err != nil {
		return fmt.Errorf("%w: %w", xerrors.ErrIO, pkgerrors.Wrapf(err, "write pidfile %q", path))
	}
	return nil
}

// Remove deletes path, best-effort: a missing pidfile is not an error
// (spec §7 "best-effort removal").
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !pkgerrors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", xerrors.ErrIO, pkgerrors.Wrapf(err, "remove pidfile %q", path))
	}
	return nil
}
