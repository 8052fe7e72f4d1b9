package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/mybuild-dev/mybuild/internal/hgutil"
	"github.com/mybuild-dev/mybuild/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose mybuild prerequisites and workspace issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			return runDoctor(cmd, verbose)
		},
	}
}

type doctorContext struct {
	Workspace *workspace.Workspace
}

type doctorCheck struct {
	Name string
	Fn   func(*doctorContext) error
}

func runDoctor(cmd *cobra.Command, verbose bool) error {
	ctx := &doctorContext{}
	wd, _ := os.Getwd()
	checks := []doctorCheck{
		{Name: "waf project", Fn: func(c *doctorContext) error {
			ws, err := workspace.Discover(wd)
			if err != nil {
				return err
			}
			c.Workspace = ws
			return nil
		}},
		{Name: "waf script executable", Fn: checkWafScript},
		{Name: "hg installed", Fn: checkHgInstalled},
		{Name: "mercurial repository", Fn: func(c *doctorContext) error {
			if c.Workspace == nil {
				return errors.New("workspace not resolved")
			}
			if !hgutil.IsRepo(c.Workspace.Root) {
				return fmt.Errorf("no .hg directory under %s", c.Workspace.Root)
			}
			return nil
		}},
		{Name: "ignore file present", Fn: func(c *doctorContext) error {
			if c.Workspace == nil {
				return errors.New("workspace not resolved")
			}
			if _, err := os.Stat(c.Workspace.IgnoreFilePath()); err != nil {
				return fmt.Errorf("%s not found (clean cannot restore it)", c.Workspace.Config.Clean.IgnoreFile)
			}
			return nil
		}},
	}

	var failures []string
	for _, check := range checks {
		err := check.Fn(ctx)
		if err != nil {
			failures = append(failures, fmt.Sprintf("✗ %s: %s", check.Name, singleLineError(err)))
			continue
		}
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", check.Name)
		}
	}

	if len(failures) > 0 {
		for _, failure := range failures {
			fmt.Fprintln(cmd.ErrOrStderr(), failure)
		}
		return fmt.Errorf("%d doctor checks failed", len(failures))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "healthy!")
	return nil
}

func checkWafScript(c *doctorContext) error {
	if c.Workspace == nil {
		return errors.New("workspace not resolved")
	}
	fi, err := os.Stat(c.Workspace.WafPath())
	if err != nil {
		return fmt.Errorf("%s not found", c.Workspace.Config.Tools.Waf)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", c.Workspace.Config.Tools.Waf)
	}
	if fi.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%s is not executable", c.Workspace.Config.Tools.Waf)
	}
	return nil
}

func checkHgInstalled(c *doctorContext) error {
	tool := "hg"
	if c.Workspace != nil {
		tool = c.Workspace.HgTool()
	}
	if _, err := exec.LookPath(tool); err != nil {
		return fmt.Errorf("%s not found on PATH", tool)
	}
	return nil
}
