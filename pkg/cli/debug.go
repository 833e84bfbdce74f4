package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/boxkit/boxkit/pkg/config"
	"github.com/boxkit/boxkit/pkg/dockerfile"
	"github.com/boxkit/boxkit/pkg/global"
	"github.com/boxkit/boxkit/pkg/util/console"
)

func newDebugCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "debug",
		Hidden: true,
		Short:  "Generate a Dockerfile from " + global.ConfigFilename,
		RunE:   cmdDockerfile,
	}

	addProjectDirFlag(cmd.Flags())

	return cmd
}

func cmdDockerfile(cmd *cobra.Command, args []string) error {
	cfg, projectDir, err := config.GetConfig(projectDirFlag)
	if err != nil {
		return err
	}

	generator, err := dockerfile.NewGenerator(cfg, projectDir)
	if err != nil {
		return fmt.Errorf("Error creating Dockerfile generator: %w", err)
	}
	defer func() {
		if err := generator.Cleanup(); err != nil {
			console.Warnf("Error cleaning up after generate: %v", err)
		}
	}()

	contents, err := generator.Generate()
	if err != nil {
		return err
	}

	console.Output(contents)
	return nil
}
