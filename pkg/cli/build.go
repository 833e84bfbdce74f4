package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/boxkit/boxkit/pkg/config"
	"github.com/boxkit/boxkit/pkg/global"
	"github.com/boxkit/boxkit/pkg/image"
	"github.com/boxkit/boxkit/pkg/util/console"
)

var buildTag string
var buildNoCache bool
var buildProgressOutput string

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build an image from " + global.ConfigFilename,
		Args:  cobra.NoArgs,
		RunE:  buildCommand,
	}
	addProjectDirFlag(cmd.Flags())
	addBuildProgressOutputFlag(cmd)
	addNoCacheFlag(cmd)
	cmd.Flags().StringVarP(&buildTag, "tag", "t", "", "A name for the built image in the form 'repository:tag'")
	return cmd
}

func buildCommand(cmd *cobra.Command, args []string) error {
	cfg, projectDir, err := config.GetConfig(projectDirFlag)
	if err != nil {
		return err
	}

	imageName := cfg.Image
	if buildTag != "" {
		imageName = buildTag
	}
	if imageName == "" {
		imageName = config.DockerImageName(projectDir)
	}

	if err := image.Build(cmd.Context(), cfg, projectDir, imageName, buildNoCache, buildProgressOutput); err != nil {
		return err
	}

	console.Infof("\nImage built as %s", imageName)

	return nil
}

func addBuildProgressOutputFlag(cmd *cobra.Command) {
	defaultOutput := "auto"
	if os.Getenv("TERM") == "dumb" || !console.IsTTY(os.Stderr) {
		defaultOutput = "plain"
	}
	cmd.Flags().StringVar(&buildProgressOutput, "progress", defaultOutput, "Set type of build progress output, 'auto' (default), 'tty' or 'plain'")
}

func addNoCacheFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "Do not use cache when building the image")
}
