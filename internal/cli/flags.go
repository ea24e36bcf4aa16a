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

// Package cli parses logmux's command line (spec §6): the flag set plus the
// positional `FILE [@LINK]...` sink grammar — FILE and its optional @LINK
// are two separate argv entries, not one glued token.
//
// Flag parsing uses github.com/spf13/pflag rather than the full
// github.com/spf13/cobra — this program has no subcommands, just a POSIX
// long/short flag set, which is pflag's use case on its own (the library
// gcsfuse's cmd/root.go layers cobra on top of for the same reason cobra
// needs it: POSIX-style -h/--help, -v/--version, etc).
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	asink "dirpx.dev/logmux/apis/sink"
	"dirpx.dev/logmux/apis/xerrors"
)

// Version is the program version printed by -v/--version, set at link time
// via -ldflags in real builds; the value below is the development
// fallback.
var Version = "0.0.0-dev"

// Config is the fully parsed command line.
type Config struct {
	Help    bool
	Version bool

	PidFile string
	FIFOPath string

	Quiet            bool
	ExitOnWriteError bool
	NoSplice         bool

	Sinks []asink.Specification
}

// Usage is printed for -h/--help.
const Usage = `usage: logmux [options] [--] [FILE [@LINK]]...

Reads from standard input (or --fifo) and copies bytes verbatim to each
FILE. FILE may be a path containing strftime-style time escapes, or one of
the literals STDOUT, STDERR, - (alias for STDOUT). An optional @LINK, given
as the argument immediately following FILE, names a symlink kept pointed at
the currently active rotated file.

Options:
  -h, --help                  print this message and exit
  -v, --version                print the version and exit
  -p, --pidfile=PATH           write the process id to PATH
  -f, --fifo=PATH              read input from a FIFO at PATH, creating it if absent
  -q, --quiet                  suppress diagnostic output
  -e, --exit-on-write-error    make write/reopen failures fatal
  -S, --no-splice              disable the zero-copy fast path
`

// Parse parses argv (excluding the program name) into a Config.
func Parse(argv []string) (*Config, error) {
	fs := pflag.NewFlagSet("logmux", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { fmt.Fprint(os.Stderr, Usage) }

	cfg := &Config{}
	fs.BoolVarP(&cfg.Help, "help", "h", false, "print usage and exit")
	fs.BoolVarP(&cfg.Version, "version", "v", false, "print version and exit")
	fs.StringVarP(&cfg.PidFile, "pidfile", "p", "", "write own PID to PATH")
	fs.StringVarP(&cfg.FIFOPath, "fifo", "f", "", "read input from a FIFO at PATH")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "suppress diagnostic output")
	fs.BoolVarP(&cfg.ExitOnWriteError, "exit-on-write-error", "e", false, "make write/reopen failures fatal")
	fs.BoolVarP(&cfg.NoSplice, "no-splice", "S", false, "disable the zero-copy fast path")

	if err := fs.Parse(argv); err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrConfig, err)
	}
	if cfg.Help || cfg.Version {
		return cfg, nil
	}

	sinks, err := parseSinks(fs.Args())
	if err != nil {
		return nil, err
	}
	if len(sinks) == 0 {
		return nil, fmt.Errorf("%w: at least one FILE is required", xerrors.ErrConfig)
	}
	cfg.Sinks = sinks
	return cfg, nil
}

// parseSinks turns positional `FILE [@LINK]` pairs into Specifications
// (spec §6 grammar: `[FILE [@LINK]]...`, FILE and @LINK as two separate
// argv entries, matching the original's `argv[index+1][0] == '@'`
// lookahead rather than a single glued token).
func parseSinks(args []string) ([]asink.Specification, error) {
	specs := make([]asink.Specification, 0, len(args))
	for i := 0; i < len(args); i++ {
		file := args[i]
		if file == "" {
			return nil, fmt.Errorf("%w: empty FILE", xerrors.ErrConfig)
		}

		var link string
		if i+1 < len(args) && strings.HasPrefix(args[i+1], "@") {
			link = args[i+1][1:]
			if link == "" {
				return nil, fmt.Errorf("%w: %q: empty LINK after @", xerrors.ErrConfig, args[i+1])
			}
			i++
		}

		switch file {
		case "STDOUT", "-":
			if link != "" {
				return nil, fmt.Errorf("%w: %q: @LINK is not valid for STDOUT/STDERR/-", xerrors.ErrConfig, file)
			}
			specs = append(specs, asink.Specification{Descriptor: os.Stdout})
		case "STDERR":
			if link != "" {
				return nil, fmt.Errorf("%w: %q: @LINK is not valid for STDOUT/STDERR/-", xerrors.ErrConfig, file)
			}
			specs = append(specs, asink.Specification{Descriptor: os.Stderr})
		default:
			specs = append(specs, asink.Specification{Pattern: file, Link: link})
		}
	}
	return specs, nil
}
