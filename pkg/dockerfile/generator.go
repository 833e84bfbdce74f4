package dockerfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/boxkit/boxkit/pkg/config"
	"github.com/boxkit/boxkit/pkg/requirements"
)

// Generator renders a Config into a Dockerfile. The build steps are emitted
// in a fixed order: base image, env, system packages, workdir, dependency
// manifest copy, dependency install, default command. The manifest is staged
// under .boxkit/tmp so only that one file enters the image from the build
// context.
type Generator struct {
	Config *config.Config
	Dir    string

	// absolute path to tmpDir, a directory that will be cleaned up
	tmpDir string
	// tmpDir relative to Dir. This is the path used in the Dockerfile.
	relativeTmpDir string
}

func NewGenerator(config *config.Config, dir string) (*Generator, error) {
	rootTmp := path.Join(dir, ".boxkit/tmp")
	if err := os.MkdirAll(rootTmp, 0o755); err != nil {
		return nil, err
	}
	// tmpDir ends up being something like dir/.boxkit/tmp/build123456789
	tmpDir, err := os.MkdirTemp(rootTmp, "build")
	if err != nil {
		return nil, err
	}
	relativeTmpDir, err := filepath.Rel(dir, tmpDir)
	if err != nil {
		return nil, err
	}

	return &Generator{
		Config:         config,
		Dir:            dir,
		tmpDir:         tmpDir,
		relativeTmpDir: relativeTmpDir,
	}, nil
}

func (g *Generator) Generate() (string, error) {
	pipInstalls, err := g.pipInstalls()
	if err != nil {
		return "", err
	}
	defaultCommand, err := g.defaultCommand()
	if err != nil {
		return "", err
	}

	return strings.Join(filterEmpty([]string{
		"# syntax = docker/dockerfile:1.2",
		"FROM " + g.Config.Build.BaseImage,
		envLines(g.Config.Build.Env),
		g.aptInstalls(),
		"WORKDIR " + g.Config.Workdir,
		pipInstalls,
		defaultCommand,
	}), "\n"), nil
}

func (g *Generator) Cleanup() error {
	if err := os.RemoveAll(g.tmpDir); err != nil {
		return fmt.Errorf("Failed to clean up %s: %w", g.tmpDir, err)
	}
	return nil
}

func (g *Generator) aptInstalls() string {
	packages := g.Config.Build.SystemPackages
	if len(packages) == 0 {
		return ""
	}
	// The package index must be removed in the same RUN as the install,
	// otherwise it survives in its own layer and the cleanup saves nothing.
	return "RUN --mount=type=cache,target=/var/cache/apt apt-get update -qq && apt-get install -qqy " +
		strings.Join(packages, " ") +
		" && rm -rf /var/lib/apt/lists/*"
}

func (g *Generator) pipInstalls() (string, error) {
	stagedFile, err := requirements.GenerateRequirements(g.tmpDir, g.Config)
	if err != nil {
		return "", err
	}
	if stagedFile == "" {
		return "", nil
	}

	// COPY before the install that consumes it; the destination is relative
	// so it lands in the workdir set by the preceding step.
	copySrc := filepath.Join(g.relativeTmpDir, requirements.RequirementsFile)
	lines := []string{
		fmt.Sprintf("COPY %s %s", copySrc, requirements.RequirementsFile),
		"RUN --mount=type=cache,target=/root/.cache/pip pip install --upgrade pip && pip install -r " + requirements.RequirementsFile,
	}
	return strings.Join(lines, "\n"), nil
}

func (g *Generator) defaultCommand() (string, error) {
	argv, err := json.Marshal(g.Config.Command)
	if err != nil {
		return "", fmt.Errorf("Failed to render default command: %w", err)
	}
	// Exec form, so the command is not wrapped in a shell at runtime
	return "CMD " + string(argv), nil
}

func filterEmpty(list []string) []string {
	filtered := []string{}
	for _, s := range list {
		if s != "" {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
