package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mybuild-dev/mybuild/internal/config"
	"github.com/mybuild-dev/mybuild/internal/shellhook"
	"github.com/mybuild-dev/mybuild/internal/toolexec"
	"github.com/mybuild-dev/mybuild/internal/wafutil"
	"github.com/mybuild-dev/mybuild/internal/workspace"
	"github.com/spf13/cobra"
)

// The menu contract: four lines per iteration, one character of input.
// Spacing and trailing whitespace are load-bearing; scripts read them.
const (
	menuLineTests    = "t : configure with --enable-tests"
	menuLineExamples = "e : configure with --enable-tests --enable-examples"
	menuLineClean    = "c : clean up all"
	menuPrompt       = "Input a character to go ahead. Just type enter to quit : "
	menuFarewell     = "Bye ... "
)

func runMenu(cmd *cobra.Command, args []string) error {
	ws := lenientWorkspace(cmd.ErrOrStderr())
	session := &menuSession{
		ws: ws,
		runner: &toolexec.ExecRunner{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		},
		in:     bufio.NewReader(cmd.InOrStdin()),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
	return session.run(cmd.Context())
}

// lenientWorkspace resolves the workspace for the interactive session.
// Discovery failures degrade to the current directory with defaults so
// that dispatched commands fail on their own terms and the loop goes on.
func lenientWorkspace(errOut io.Writer) *workspace.Workspace {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	ws, err := workspace.Discover(wd)
	if err == nil {
		return ws
	}
	if !errors.Is(err, workspace.ErrNotFound) {
		fmt.Fprintf(errOut, "warning: %s\n", singleLineError(err))
	}
	return workspace.Fallback(wd)
}

type menuSession struct {
	ws     *workspace.Workspace
	runner toolexec.Runner
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// run loops until the quit sentinel: empty input or end of stdin.
func (s *menuSession) run(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out, menuLineTests)
		fmt.Fprintln(s.out, menuLineExamples)
		fmt.Fprintln(s.out, menuLineClean)
		fmt.Fprint(s.out, menuPrompt)

		choice, err := s.readChoice()
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if choice == "" {
			fmt.Fprintln(s.out, menuFarewell)
			return nil
		}
		s.dispatch(ctx, choice)
	}
}

// readChoice reads one line, stripping only the terminator. Other
// whitespace stays significant: " t " is not a recognized choice.
func (s *menuSession) readChoice() (string, error) {
	line, err := s.in.ReadString('\n')
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, err
}

// dispatch routes one menu choice. Failures never stop the loop, matching
// the tool's long-standing fire-and-forget behavior; unrecognized input
// falls through to the reprinted menu.
func (s *menuSession) dispatch(ctx context.Context, choice string) {
	switch choice {
	case "t":
		s.configureAndBuild(ctx, false)
	case "e":
		s.configureAndBuild(ctx, true)
	case "c":
		s.cleanAll(ctx)
	}
}

// configureAndBuild runs `waf configure` and then a bare build. The build
// runs even when configure fails; both stream to the operator.
func (s *menuSession) configureAndBuild(ctx context.Context, examples bool) {
	cmds := []toolexec.Command{
		wafutil.Configure(s.ws.WafPath(), s.ws.Root, true, examples, s.ws.Config.Configure.Flags...),
		wafutil.Build(s.ws.WafPath(), s.ws.Root),
	}
	runAll(ctx, s.runner, cmds)
	s.runHooks(ctx, config.HookPostConfigure, config.HookPostBuild)
}

// cleanAll deletes the ignore file so the purge also sweeps previously
// ignored artifacts, then restores it and reports the resulting state.
func (s *menuSession) cleanAll(ctx context.Context) {
	_ = os.Remove(s.ws.IgnoreFilePath())
	runAll(ctx, s.runner, cleanCommands(s.ws))
	s.runHooks(ctx, config.HookPostClean)
}

func (s *menuSession) runHooks(ctx context.Context, names ...string) {
	for _, name := range names {
		script := s.ws.Config.Hooks.Script(name)
		err := withTraceRegionErr(ctx, "hook:"+name, func() error {
			return shellhook.Run(ctx, name, s.ws.Root, script, s.ws.Config.Hooks.StrictEnabled(), s.out, s.errOut)
		})
		if err != nil {
			fmt.Fprintf(s.errOut, "warning: %s\n", singleLineError(err))
		}
	}
}

// runAll executes every command in order regardless of failures and
// returns all results.
func runAll(ctx context.Context, runner toolexec.Runner, cmds []toolexec.Command) []toolexec.Result {
	results := make([]toolexec.Result, 0, len(cmds))
	for _, cmd := range cmds {
		results = append(results, runner.Run(ctx, cmd))
	}
	return results
}
