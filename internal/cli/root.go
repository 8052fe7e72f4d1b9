package cli

import (
	"github.com/mybuild-dev/mybuild/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:           "mybuild",
		Short:         "Interactive build and clean-up helper for waf projects under Mercurial",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !verbose {
				return
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
		RunE: runMenu,
	}
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log each tool invocation to stderr")

	cmd.AddCommand(
		newConfigureCommand(),
		newBuildCommand(),
		newCleanCommand(),
		newStatusCommand(),
		newDoctorCommand(),
		newInitCommand(),
		newVersionCommand(),
	)

	return cmd
}
