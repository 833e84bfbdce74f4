package image

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/boxkit/boxkit/pkg/config"
	"github.com/boxkit/boxkit/pkg/docker"
	"github.com/boxkit/boxkit/pkg/dockerfile"
	"github.com/boxkit/boxkit/pkg/dockerignore"
	"github.com/boxkit/boxkit/pkg/global"
	"github.com/boxkit/boxkit/pkg/util/console"
)

var errGit = errors.New("git error")

// Build produces an image from the project's boxkit.yaml.
//
// This is separated out from docker.Build() so that stays as close as
// possible to the behavior of 'docker build'.
func Build(ctx context.Context, cfg *config.Config, dir string, imageName string, noCache bool, progressOutput string) error {
	console.Infof("Building Docker image from environment in %s as %s...", global.ConfigFilename, imageName)

	if err := checkCompatibleDockerIgnore(dir, cfg); err != nil {
		return err
	}

	generator, err := dockerfile.NewGenerator(cfg, dir)
	if err != nil {
		return fmt.Errorf("Error creating Dockerfile generator: %w", err)
	}
	defer func() {
		if err := generator.Cleanup(); err != nil {
			console.Warnf("Error cleaning up Dockerfile generator: %s", err)
		}
	}()

	dockerfileContents, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("Failed to generate Dockerfile: %w", err)
	}

	if err := docker.Build(ctx, dir, dockerfileContents, imageName, noCache, progressOutput); err != nil {
		return fmt.Errorf("Failed to build Docker image: %w", err)
	}

	console.Info("Adding labels to image...")

	labels := map[string]string{
		global.LabelNamespace + "version": global.Version,
	}

	if commit, err := gitHead(ctx, dir); commit != "" && err == nil {
		labels["org.opencontainers.image.revision"] = commit
	} else {
		console.Info("Unable to determine Git commit")
	}

	if tag, err := gitTag(ctx, dir); tag != "" && err == nil {
		labels["org.opencontainers.image.version"] = tag
	} else {
		console.Info("Unable to determine Git tag")
	}

	if err := docker.BuildAddLabelsToImage(ctx, imageName, labels); err != nil {
		return fmt.Errorf("Failed to add labels to image: %w", err)
	}

	exists, err := docker.ImageExists(ctx, imageName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("Image %s is missing from the local daemon after build", imageName)
	}
	return nil
}

// checkCompatibleDockerIgnore refuses .dockerignore rules that would exclude
// the staging directory or the dependency manifest from the build context.
func checkCompatibleDockerIgnore(dir string, cfg *config.Config) error {
	matcher, err := dockerignore.CreateMatcher(dir)
	if err != nil {
		return err
	}
	// If the matcher is nil and we don't have an error, we don't have a .dockerignore to scan.
	if matcher == nil {
		return nil
	}
	if matcher.MatchesPath(".boxkit") {
		return errors.New("The .boxkit tmp path cannot be ignored by docker in .dockerignore.")
	}
	if cfg.Build.PythonRequirements != "" && matcher.MatchesPath(cfg.Build.PythonRequirements) {
		return fmt.Errorf("The python_requirements file %s cannot be ignored by docker in .dockerignore.", cfg.Build.PythonRequirements)
	}
	return nil
}

func isGitWorkTree(ctx context.Context, dir string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "--is-inside-work-tree").Output()
	if err != nil {
		return false
	}

	return strings.TrimSpace(string(out)) == "true"
}

func gitHead(ctx context.Context, dir string) (string, error) {
	if v, ok := os.LookupEnv("GITHUB_SHA"); ok && v != "" {
		return v, nil
	}

	if isGitWorkTree(ctx, dir) {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		out, err := exec.CommandContext(ctx, "git", "-C", dir, "rev-parse", "HEAD").Output()
		if err != nil {
			return "", err
		}

		return string(bytes.TrimSpace(out)), nil
	}

	return "", fmt.Errorf("Failed to find HEAD commit: %w", errGit)
}

func gitTag(ctx context.Context, dir string) (string, error) {
	if v, ok := os.LookupEnv("GITHUB_REF_NAME"); ok && v != "" {
		return v, nil
	}

	if isGitWorkTree(ctx, dir) {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		out, err := exec.CommandContext(ctx, "git", "-C", dir, "describe", "--tags", "--dirty").Output()
		if err != nil {
			return "", err
		}

		return string(bytes.TrimSpace(out)), nil
	}

	return "", fmt.Errorf("Failed to find ref name: %w", errGit)
}
