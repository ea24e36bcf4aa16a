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

// Command logmux is a streaming log multiplexer: it copies its input
// verbatim to one or more sinks, rotating time-patterned file sinks
// transparently as their rendered name changes.
package main

import (
	"fmt"
	"os"

	"dirpx.dev/logmux/internal/cli"
	"dirpx.dev/logmux/internal/driver"
)

func main() {
	cfg, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, cli.Usage)
		os.Exit(driver.ExitError)
	}

	if cfg.Help {
		fmt.Fprint(os.Stdout, cli.Usage)
		os.Exit(driver.ExitSuccess)
	}
	if cfg.Version {
		fmt.Fprintln(os.Stdout, cli.Version)
		os.Exit(driver.ExitSuccess)
	}

	os.Exit(driver.Run(cfg))
}
