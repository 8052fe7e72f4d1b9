package cli

import (
	"fmt"

	"github.com/mybuild-dev/mybuild/internal/config"
	"github.com/mybuild-dev/mybuild/internal/toolexec"
	"github.com/mybuild-dev/mybuild/internal/wafutil"
	"github.com/spf13/cobra"
)

func newBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Run a bare waf build using the last configure",
		Args:  cobra.NoArgs,
		RunE:  runBuild,
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	ws, err := loadWorkspaceFromWD()
	if err != nil {
		return err
	}

	runner := &toolexec.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	if res := runner.Run(cmd.Context(), wafutil.Build(ws.WafPath(), ws.Root)); !res.OK() {
		return fmt.Errorf("waf build failed: %w", res.Err)
	}

	return runHook(cmd, ws, config.HookPostBuild)
}
