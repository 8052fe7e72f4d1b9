package cli

import (
	"fmt"

	"github.com/mybuild-dev/mybuild/internal/config"
	"github.com/mybuild-dev/mybuild/internal/toolexec"
	"github.com/mybuild-dev/mybuild/internal/wafutil"
	"github.com/spf13/cobra"
)

type configureOptions struct {
	tests    bool
	examples bool
}

func newConfigureCommand() *cobra.Command {
	opts := &configureOptions{}
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Run waf configure with the selected feature flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.tests, "tests", false, "enable test targets (--enable-tests)")
	cmd.Flags().BoolVar(&opts.examples, "examples", false, "enable example targets (--enable-examples)")
	return cmd
}

func runConfigure(cmd *cobra.Command, opts *configureOptions) error {
	ws, err := loadWorkspaceFromWD()
	if err != nil {
		return err
	}

	runner := &toolexec.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()}
	invocation := wafutil.Configure(ws.WafPath(), ws.Root, opts.tests, opts.examples, ws.Config.Configure.Flags...)
	if res := runner.Run(cmd.Context(), invocation); !res.OK() {
		return fmt.Errorf("waf configure failed: %w", res.Err)
	}

	return runHook(cmd, ws, config.HookPostConfigure)
}
