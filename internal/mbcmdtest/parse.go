// Argument parsing for the `mbcmdtest` harness.
//
// Supported flags:
//   - `--skip-init` (leave the project without a mybuild config)
//   - `--workdir <dir>` (cd under the temp repo before running)
//   - `--keep` (preserve the temp repo for debugging)
//   - `-h/--help`
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

type options struct {
	skipInit bool
	workdir  string
	keepRepo bool
	help     bool
}

func parseArgs(args []string) (options, []string, error) {
	var opts options

	fs := flag.NewFlagSet("mbcmdtest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&opts.skipInit, "skip-init", false, "")
	fs.StringVar(&opts.workdir, "workdir", "", "")
	fs.BoolVar(&opts.keepRepo, "keep", false, "")

	fs.BoolVar(&opts.help, "help", false, "")
	fs.BoolVar(&opts.help, "h", false, "")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	if opts.help {
		return opts, nil, nil
	}

	if opts.workdir != "" {
		if filepath.IsAbs(opts.workdir) {
			return options{}, nil, errors.New("workdir must be a relative path")
		}
		clean := filepath.Clean(opts.workdir)
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return options{}, nil, fmt.Errorf("workdir must not escape repo root: %q", opts.workdir)
		}
	}

	cmd := fs.Args()
	if len(cmd) == 0 {
		return options{}, nil, errors.New("missing command")
	}

	return opts, cmd, nil
}
