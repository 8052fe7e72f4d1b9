package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mybuild-dev/mybuild/internal/config"
	"github.com/mybuild-dev/mybuild/internal/hgutil"
	"github.com/mybuild-dev/mybuild/internal/toolexec"
	"github.com/mybuild-dev/mybuild/internal/workspace"
	"github.com/spf13/cobra"
)

type cleanOptions struct {
	dryRun bool
	force  bool
}

func newCleanCommand() *cobra.Command {
	opts := &cleanOptions{}
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Purge untracked files and restore the ignore file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "show the clean-up plan without running it")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

// cleanCommands is the Mercurial sequence behind both the menu's c branch
// and the clean subcommand: purge everything, restore the ignore file,
// then report the resulting state.
func cleanCommands(ws *workspace.Workspace) []toolexec.Command {
	hg := ws.HgTool()
	return []toolexec.Command{
		hgutil.PurgeAll(hg, ws.Root),
		hgutil.Revert(hg, ws.Root, ws.Config.Clean.IgnoreFile),
		hgutil.Status(hg, ws.Root),
	}
}

func runClean(cmd *cobra.Command, opts *cleanOptions) error {
	ws, err := loadWorkspaceFromWD()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ignorePath := ws.IgnoreFilePath()
	plan := cleanCommands(ws)

	if opts.dryRun {
		renderCleanPlan(out, ws, plan)
		return nil
	}

	running := summarizeRunning(runningUnder(ws.Root))

	if opts.force {
		if running != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: still running under this workspace: %s\n", running)
		}
	} else {
		proceed, err := promptCleanConfirmation(out, bufio.NewReader(cmd.InOrStdin()), ws, running, writerIsTerminal(out))
		if err != nil {
			return err
		}
		if !proceed {
			fmt.Fprintln(out, "Skipped clean-up: declined")
			return nil
		}
	}

	if err := os.Remove(ignorePath); err == nil {
		fmt.Fprintf(out, "Removed %s\n", ws.Config.Clean.IgnoreFile)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	runner := &toolexec.ExecRunner{Stdout: out, Stderr: cmd.ErrOrStderr()}
	for _, step := range plan {
		if res := runner.Run(cmd.Context(), step); !res.OK() {
			return fmt.Errorf("%s failed: %w", res.Command.Display(), res.Err)
		}
	}

	return runHook(cmd, ws, config.HookPostClean)
}

func renderCleanPlan(out io.Writer, ws *workspace.Workspace, plan []toolexec.Command) {
	fmt.Fprintln(out, "Plan:")
	fmt.Fprintf(out, "- remove %s\n", ws.Config.Clean.IgnoreFile)
	for _, step := range plan {
		fmt.Fprintf(out, "- %s %s\n", ws.Config.Tools.Hg, strings.Join(step.Args, " "))
	}
}

// promptCleanConfirmation shows what is about to be destroyed and asks
// for a y/N answer. End of input counts as declining.
func promptCleanConfirmation(out io.Writer, reader *bufio.Reader, ws *workspace.Workspace, running string, useColor bool) (bool, error) {
	var b strings.Builder

	title := fmt.Sprintf("Clean up %s", ws.Root)
	divider := strings.Repeat("-", promptWidth(len(title)))
	if useColor {
		title = colorTitle(title)
		divider = colorFaint(divider)
	}
	fmt.Fprintf(&b, "\n%s\n%s\n", title, divider)

	label := func(s string) string {
		if useColor {
			return colorLabel(s)
		}
		return s
	}
	value := func(s string) string {
		if useColor {
			return colorValue(s)
		}
		return s
	}
	warn := func(s string) string {
		if useColor {
			return colorWarn(s)
		}
		return s
	}

	fmt.Fprintf(&b, "  %-14s %s\n", label("Ignore file:"), value(ws.Config.Clean.IgnoreFile))
	fmt.Fprintf(&b, "  %-14s %s\n", label("Purge:"), warn("all untracked and ignored files"))
	if running != "" {
		fmt.Fprintf(&b, "  %-14s %s\n", label("Running:"), warn(running))
	}
	fmt.Fprintln(&b)

	fmt.Fprint(out, b.String())
	prompt := "Proceed with clean-up? [y/N]: "
	if useColor {
		prompt = colorLabel(prompt)
	}
	fmt.Fprint(out, prompt)

	resp, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	fmt.Fprintln(out)

	resp = strings.TrimSpace(strings.ToLower(resp))
	return resp == "y" || resp == "yes", nil
}

func promptWidth(titleLen int) int {
	width := titleLen
	if width < 40 {
		width = 40
	}
	if width > 80 {
		width = 80
	}
	return width
}
