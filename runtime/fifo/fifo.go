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

// Package fifo manages the lifecycle of the optional named-pipe input
// (spec §4.7, §6): create once, reopen on every EOF, unlink on exit.
package fifo

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"dirpx.dev/logmux/apis/xerrors"
)

// Mode is the permission mode used when creating the FIFO.
const Mode = 0o644

// FIFO owns one named pipe's path. It does not itself hold an open
// descriptor between calls to Open — the Driver reopens the pipe each time
// its reader reaches EOF (spec §4.7).
type FIFO struct {
	Path string
}

// Ensure creates Path as a FIFO if it does not already exist. An existing
// path that is not a FIFO is an error; an existing FIFO is left alone
// (spec §4.7: "tolerating EEXIST only when the existing path is a FIFO").
func Ensure(path string) (*FIFO, error) {
	err := unix.Mkfifo(path, Mode)
	switch {
	case err == nil:
		return &FIFO{Path: path}, nil
	case pkgerrors.Is(err, os.ErrExist):
		info, statErr := os.Lstat(path)
		if statErr != nil {
			return nil, fmt.Errorf("%w: %w", xerrors.ErrIO, pkgerrors.Wrapf(statErr, "stat existing path %q", path))
		}
		if info.Mode()&os.ModeNamedPipe == 0 {
			return nil, fmt.Errorf("%w: %q exists and is not a FIFO", xerrors.ErrIO, path)
		}
		return &FIFO{Path: path}, nil
	default:
		return nil, fmt.Errorf("%w: %w", xerrors.ErrIO, pkgerrors.Wrapf(err, "create FIFO %q", path))
	}
}

// Open opens the FIFO non-blocking, read-only, as spec §4.7 requires so the
// Driver can retry around termination-signal checks instead of hanging on
// an absent writer.
func (f *FIFO) Open() (*os.File, error) {
	file, err := os.OpenFile(f.Path, os.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xerrors.ErrIO, pkgerrors.Wrapf(err, "open FIFO %q", f.Path))
	}
	return file, nil
}

// Unlink removes the FIFO from disk. Best-effort: a missing file is not an
// error (spec §7 "best-effort removal").
func (f *FIFO) Unlink() error {
	if err := os.Remove(f.Path); err != nil && !pkgerrors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", xerrors.ErrIO, pkgerrors.Wrapf(err, "unlink FIFO %q", f.Path))
	}
	return nil
}
