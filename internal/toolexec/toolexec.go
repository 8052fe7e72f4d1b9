// Package toolexec models invocations of external build and VCS tools.
//
// Every spawned process is described by a Command and produces a Result
// carrying the exit code; callers decide whether a failure stops them.
package toolexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Command describes one external tool invocation.
type Command struct {
	// Path is the program to run: an absolute path for workspace-local
	// scripts, or a bare name resolved against PATH.
	Path string
	Args []string
	Dir  string
}

// Display returns the invocation as a single shell-like line.
func (c Command) Display() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Result captures the outcome of a single invocation.
type Result struct {
	Command  Command
	ExitCode int
	Err      error
	Duration time.Duration
}

// OK reports whether the command started and exited zero.
func (r Result) OK() bool {
	return r.Err == nil
}

// Runner executes Commands. Run streams output; Output captures it.
type Runner interface {
	Run(ctx context.Context, cmd Command) Result
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner runs commands via os/exec with the operator's stdin attached,
// streaming stdout/stderr to the configured writers.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) Result {
	proc := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	proc.Dir = cmd.Dir
	proc.Stdin = r.stdin()
	proc.Stdout = r.stdout()
	proc.Stderr = r.stderr()

	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("tool", cmd.Path).Strs("args", cmd.Args).Str("dir", cmd.Dir).Msg("running")

	start := time.Now()
	err := proc.Run()
	res := Result{
		Command:  cmd,
		ExitCode: ExitStatus(err),
		Err:      err,
		Duration: time.Since(start),
	}

	logger.Debug().Str("tool", cmd.Path).Int("exit", res.ExitCode).Dur("duration", res.Duration).Msg("finished")
	return res
}

// Output runs the command with stdout captured, returning it trimmed.
// Stderr is folded into the error on failure.
func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	proc := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	proc.Dir = cmd.Dir
	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr
	proc.Stdin = r.stdin()

	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("tool", cmd.Path).Strs("args", cmd.Args).Str("dir", cmd.Dir).Msg("capturing")

	if err := proc.Run(); err != nil {
		return "", fmt.Errorf("%s: %v\n%s", cmd.Display(), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (r *ExecRunner) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}
	return os.Stdin
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

// ExitStatus maps a Run error to a shell-style exit code: 0 on success,
// the child's code when it exited, 127 when it never started.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 127
}
