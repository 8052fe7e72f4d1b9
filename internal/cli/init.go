package cli

import (
	"fmt"
	"os"

	"github.com/mybuild-dev/mybuild/internal/workspace"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default .mybuild.toml next to the waf script",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	root, err := workspace.FindRoot(wd)
	if err != nil {
		return err
	}

	if workspace.ConfigExists(root) {
		if _, err := workspace.EnsureConfig(root); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "mybuild already initialized at %s\n", root)
		return nil
	}

	if _, err := workspace.EnsureConfig(root); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized mybuild config at %s\n", root)
	return nil
}
