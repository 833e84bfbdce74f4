package cli

import (
	"github.com/spf13/cobra"

	"github.com/boxkit/boxkit/pkg/config"
	"github.com/boxkit/boxkit/pkg/global"
	"github.com/boxkit/boxkit/pkg/util/console"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the " + global.ConfigFilename + " file for the current project",
		Args:  cobra.NoArgs,
		RunE:  validateConfigFile,
	}

	addProjectDirFlag(cmd.Flags())

	return cmd
}

func validateConfigFile(cmd *cobra.Command, args []string) error {
	_, _, err := config.GetConfig(projectDirFlag)
	if err != nil {
		return err
	}
	console.Output("Valid " + global.ConfigFilename + " file")
	return nil
}
