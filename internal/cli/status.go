package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mybuild-dev/mybuild/internal/hgutil"
	"github.com/mybuild-dev/mybuild/internal/processes"
	"github.com/mybuild-dev/mybuild/internal/timefmt"
	"github.com/mybuild-dev/mybuild/internal/toolexec"
	"github.com/mybuild-dev/mybuild/internal/wafutil"
	"github.com/mybuild-dev/mybuild/internal/workspace"
	"github.com/spf13/cobra"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the workspace, configure state, and pending changes",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspaceFromWD()
	if err != nil {
		return err
	}

	runner := &toolexec.ExecRunner{}
	report := collectReport(cmd.Context(), ws, runner)
	renderReport(cmd.OutOrStdout(), report, time.Now(), writerIsTerminal(cmd.OutOrStdout()))
	return nil
}

type workspaceReport struct {
	Root       string
	WafTool    string
	WafOK      bool
	LockFile   string
	LockTime   time.Time
	Configured bool
	BuildDir   bool
	IgnoreFile string
	IgnoreOK   bool
	HgRepo     bool
	Running    []processes.Process
	Changes    []string
	ChangesErr error
}

func collectReport(ctx context.Context, ws *workspace.Workspace, runner toolexec.Runner) *workspaceReport {
	report := &workspaceReport{
		Root:       ws.Root,
		WafTool:    ws.Config.Tools.Waf,
		IgnoreFile: ws.Config.Clean.IgnoreFile,
	}

	if fi, err := os.Stat(ws.WafPath()); err == nil && fi.Mode().IsRegular() {
		report.WafOK = true
	}
	report.LockFile, report.LockTime, report.Configured = wafutil.LockFile(ws.Root)
	if fi, err := os.Stat(filepath.Join(ws.Root, "build")); err == nil && fi.IsDir() {
		report.BuildDir = true
	}
	if _, err := os.Stat(ws.IgnoreFilePath()); err == nil {
		report.IgnoreOK = true
	}
	report.HgRepo = hgutil.IsRepo(ws.Root)
	report.Running = runningUnder(ws.Root)

	if report.HgRepo {
		report.Changes, report.ChangesErr = withTraceRegion(ctx, "hg-status", func() ([]string, error) {
			return hgutil.StatusLines(ctx, runner, ws.HgTool(), ws.Root)
		})
	}

	return report
}

func renderReport(out io.Writer, report *workspaceReport, now time.Time, useColor bool) {
	label := func(s string) string {
		if useColor {
			return colorLabel(s)
		}
		return s
	}
	good := func(s string) string {
		if useColor {
			return colorGood(s)
		}
		return s
	}
	warn := func(s string) string {
		if useColor {
			return colorWarn(s)
		}
		return s
	}

	labels := []string{"Workspace:", "Build script:", "Configured:", "Build dir:", "Ignore file:", "Repository:"}
	width := labelWidth(labels)
	row := func(name, value string) {
		fmt.Fprintf(out, "%s %s\n", label(padLabel(name, width)), value)
	}

	row("Workspace:", report.Root)

	wafValue := report.WafTool
	if !report.WafOK {
		wafValue += " " + warn("(missing)")
	}
	row("Build script:", wafValue)

	if report.Configured {
		row("Configured:", good("yes")+fmt.Sprintf(", %s (%s)", timefmt.Relative(report.LockTime, now), report.LockFile))
	} else {
		row("Configured:", warn("no"))
	}

	if report.BuildDir {
		row("Build dir:", "build/")
	} else {
		row("Build dir:", "none")
	}

	ignoreValue := report.IgnoreFile
	if report.IgnoreOK {
		ignoreValue += " (present)"
	} else {
		ignoreValue += " " + warn("(missing)")
	}
	row("Ignore file:", ignoreValue)

	if report.HgRepo {
		row("Repository:", "mercurial")
	} else {
		row("Repository:", warn("no .hg directory"))
	}

	if len(report.Running) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, label("Running:"))
		for _, proc := range report.Running {
			fmt.Fprintf(out, "  %d %s\n", proc.PID, proc.Command)
		}
	}

	if !report.HgRepo {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, label("Changes:"))
	switch {
	case report.ChangesErr != nil:
		fmt.Fprintf(out, "  %s\n", warn(singleLineError(report.ChangesErr)))
	case len(report.Changes) == 0:
		fmt.Fprintln(out, "  (clean)")
	default:
		for _, line := range report.Changes {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
}
