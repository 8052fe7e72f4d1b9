// Package shellhook executes configured hook fragments through an
// embedded POSIX shell, so hooks behave the same on every platform
// without depending on /bin/sh.
package shellhook

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Run executes the hook fragment named name in dir. Empty fragments are a
// no-op. With strict set, the shell runs with errexit and nounset.
func Run(ctx context.Context, name, dir, script string, strict bool, stdout, stderr io.Writer) error {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(script), name)
	if err != nil {
		return fmt.Errorf("parse %s hook: %w", name, err)
	}

	opts := []interp.RunnerOption{
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, stdout, stderr),
	}
	if strict {
		opts = append(opts, interp.Params("-e", "-u"))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("%s hook: %w", name, err)
	}

	if err := runner.Run(ctx, file); err != nil {
		return fmt.Errorf("%s hook: %w", name, err)
	}
	return nil
}
