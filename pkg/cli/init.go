package cli

import (
	// blank import for embeds
	_ "embed"
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/boxkit/boxkit/pkg/global"
	"github.com/boxkit/boxkit/pkg/util/console"
	"github.com/boxkit/boxkit/pkg/util/files"
)

//go:embed init-templates/boxkit.yaml
var configYamlContent []byte

//go:embed init-templates/requirements.txt
var requirementsTxtContent []byte

//go:embed init-templates/.dockerignore
var dockerignoreContent []byte

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:        "init",
		SuggestFor: []string{"new", "start"},
		Short:      "Configure your project for use with boxkit",
		RunE:       initCommand,
		Args:       cobra.MaximumNArgs(0),
	}

	return cmd
}

func initCommand(cmd *cobra.Command, args []string) error {
	console.Infof("\nSetting up the current directory for use with boxkit...\n")

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	fileContentMap := map[string][]byte{
		global.ConfigFilename: configYamlContent,
		"requirements.txt":    requirementsTxtContent,
		".dockerignore":       dockerignoreContent,
	}

	for filename, content := range fileContentMap {
		filePath := path.Join(cwd, filename)
		fileExists, err := files.Exists(filePath)
		if err != nil {
			return err
		}

		if fileExists {
			console.Infof("Skipped existing %s", filename)
			continue
		}

		if err := os.WriteFile(filePath, content, 0o644); err != nil {
			return fmt.Errorf("Error writing %s: %w", filePath, err)
		}
		console.Infof("Created %s", filename)
	}

	console.Infof("\nDone! Run 'boxkit build' to build an image for this project.")

	return nil
}
