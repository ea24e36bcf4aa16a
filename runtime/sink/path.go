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

// Package sink implements the Rotation Controller and Link Maintainer
// (spec §4.3), adapted from the teacher's runtime/sink/policy.rotatingFileSink
// — the time-pattern trigger and the single-threaded engine loop replace the
// teacher's size/age trigger and sync.Mutex guard (spec §5: the engine has
// no worker goroutines, so a Controller is only ever touched by its owning
// tick loop and needs no lock of its own).
package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"go.uber.org/zap"

	asink "dirpx.dev/logmux/apis/sink"
	"dirpx.dev/logmux/apis/tick"
	"dirpx.dev/logmux/apis/xerrors"
	"dirpx.dev/logmux/runtime/dirprep"
	"dirpx.dev/logmux/runtime/pathfmt"
)

// FileMode is the permission mode used for newly created log files.
const FileMode os.FileMode = 0o640

// pathController is the Rotation Controller for one path-backed sink
// (spec §3 SinkState{kind: Path}, §4.3).
type pathController struct {
	renderer *pathfmt.Renderer
	link     string
	dirMode  os.FileMode
	log      *zap.SugaredLogger

	// currentName is the cached rendered name: the name of the file this
	// controller's descriptor is open against, or — if the last open
	// attempt failed and exit-on-write-error was clear — the name of that
	// failed attempt (spec §3 invariant).
	currentName string
	file        *os.File // nil means "descriptor absent" (spec §3 SinkState)
}

var _ asink.Controller = (*pathController)(nil)

// newPathController performs the work of apis/sink.Builder.Initialize for a
// path sink: render, prepare directories, open, and link. Any failure here
// is fatal per spec §4.3 ("Any failure during initialization is fatal").
func newPathController(spec asink.Specification, t tick.Context, log *zap.SugaredLogger) (*pathController, error) {
	renderer, err := pathfmt.New(spec.Pattern)
	if err != nil {
		return nil, err
	}

	c := &pathController{
		renderer: renderer,
		link:     spec.Link,
		dirMode:  dirprep.DefaultMode,
		log:      log,
	}

	name, err := renderer.Render(t.Now)
	if err != nil {
		return nil, err
	}
	c.currentName = name

	f, err := c.openWithRetry(name, t.Splice)
	if err != nil {
		return nil, fmt.Errorf("initialize sink %q: %w", name, err)
	}
	c.file = f

	if c.link != "" {
		if err := refreshLink(c.link, name, c.dirMode); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("initialize link %q -> %q: %w", c.link, name, err)
		}
	}
	return c, nil
}

// CurrentDescriptor implements apis/sink.Controller (spec §4.3 steps 2-7).
func (c *pathController) CurrentDescriptor(t tick.Context) (asink.Descriptor, error) {
	newName, err := c.renderer.Render(t.Now)
	if err != nil {
		return c.fail(t, err)
	}

	nameChanged := newName != c.currentName
	needsReopen := c.file == nil || nameChanged || t.ForceRotate
	if !needsReopen {
		return c.file, nil
	}

	if c.file != nil {
		if cerr := c.file.Close(); cerr != nil && !t.Quiet {
			c.log.Warnw("close sink before reopen", "path", c.currentName, "err", cerr)
		}
		c.file = nil
	}

	if nameChanged {
		c.currentName = newName
	}

	f, err := c.openWithRetry(newName, t.Splice)
	if err != nil {
		return c.fail(t, err)
	}
	c.file = f

	if t.Splice {
		if _, serr := f.Seek(0, io.SeekEnd); serr != nil && !errors.Is(serr, syscall.EPIPE) {
			return c.fail(t, serr)
		}
	}

	if c.link != "" && nameChanged {
		if lerr := refreshLink(c.link, newName, c.dirMode); lerr != nil {
			return c.fail(t, lerr)
		}
	}

	return c.file, nil
}

// fail applies spec §4.3 step 7: propagate under exit-on-write-error,
// otherwise disable the sink (descriptor absent) so the next tick retries.
func (c *pathController) fail(t tick.Context, cause error) (asink.Descriptor, error) {
	if c.file != nil {
		_ = c.file.Close()
		c.file = nil
	}
	if t.ExitOnWriteError {
		return nil, fmt.Errorf("%w: sink %q: %v", xerrors.ErrWriteFailureFatal, c.currentName, cause)
	}
	if !t.Quiet {
		c.log.Warnw("sink disabled after failure", "path", c.currentName, "err", cause)
	}
	return nil, nil
}

// openWithRetry opens name in append-create mode (or read/write when
// splice-mode needs a seekable descriptor), retrying once after preparing
// parent directories on ENOENT (spec §4.3 "initialize"/"on reopen").
func (c *pathController) openWithRetry(name string, splice bool) (*os.File, error) {
	flags := os.O_CREATE | os.O_APPEND | os.O_WRONLY
	if splice {
		flags = os.O_CREATE | os.O_RDWR
	}

	f, err := os.OpenFile(name, flags, FileMode)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if derr := dirprep.Prepare(name, c.dirMode); derr != nil {
		return nil, derr
	}
	return os.OpenFile(name, flags, FileMode)
}

// Close releases the controller's owned descriptor, if any. Never closes an
// inherited descriptor — pathController never holds one.
func (c *pathController) Close() error {
	if c.file == nil {
		return nil
	}
	err := c.file.Close()
	c.file = nil
	return err
}

// Invalidate marks the descriptor absent after an engine-observed write
// failure (spec §4.4), without touching the cached rendered name — the next
// tick's name comparison still reflects reality, and the reopen attempt
// will reuse it if the pattern hasn't rendered to something new.
func (c *pathController) Invalidate() {
	if c.file != nil {
		_ = c.file.Close()
		c.file = nil
	}
}
