package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/boxkit/boxkit/pkg/global"
	"github.com/boxkit/boxkit/pkg/util/console"
)

var projectDirFlag string

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "boxkit",
		Short:   "Build reproducible Python runtime images from boxkit.yaml",
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		// This stops errors being printed because we print them in cmd/boxkit/main.go
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			}
			cmd.SilenceUsage = true
		},
		SilenceErrors: true,
	}
	setPersistentFlags(&rootCmd)

	rootCmd.AddCommand(
		newInitCommand(),
		newBuildCommand(),
		newDebugCommand(),
		newValidateCommand(),
	)

	return &rootCmd, nil
}

func setPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
}

func addProjectDirFlag(flags *pflag.FlagSet) {
	flags.StringVarP(&projectDirFlag, "project-dir", "D", "", "Project directory, defaults to the nearest parent directory containing "+global.ConfigFilename)
}
