package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/boxkit/boxkit/pkg/errors"
	"github.com/boxkit/boxkit/pkg/global"
	"github.com/boxkit/boxkit/pkg/util/files"
)

const maxSearchDepth = 100

// GetConfig loads, validates and completes the boxkit.yaml for a project.
// projectDir overrides the default behavior of walking up from the current
// working directory; it may contain a leading ~.
func GetConfig(projectDir string) (*Config, string, error) {
	rootDir, err := resolveProjectDir(projectDir)
	if err != nil {
		return nil, "", err
	}

	configPath := path.Join(rootDir, global.ConfigFilename)
	config, err := loadConfigFromFile(configPath)
	if err != nil {
		return nil, "", err
	}

	err = config.ValidateAndComplete(rootDir)
	config.filename = configPath
	return config, rootDir, err
}

func resolveProjectDir(projectDir string) (string, error) {
	if projectDir != "" {
		expanded, err := files.Expand(projectDir)
		if err != nil {
			return "", err
		}
		return expanded, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return findProjectRootDir(cwd, global.ConfigFilename)
}

// Given a file path, attempt to load a config from that file
func loadConfigFromFile(file string) (*Config, error) {
	exists, err := files.Exists(file)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf("%s does not exist in %s. Are you in the right directory?", filepath.Base(file), filepath.Dir(file))
	}

	contents, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return FromYAML(contents)
}

// Given a directory, find the boxkit config file in that directory
func findConfigPathInDirectory(dir string, configFilename string) (configPath string, err error) {
	filePath := path.Join(dir, configFilename)
	exists, err := files.Exists(filePath)
	if err != nil {
		return "", fmt.Errorf("Failed to scan directory %s for %s: %s", dir, filePath, err)
	} else if exists {
		return filePath, nil
	}

	return "", errors.ConfigNotFound(fmt.Sprintf("%s not found in %s", configFilename, dir))
}

// Walk up the directory tree to find the root of the project.
// The project root is defined as the directory housing a boxkit.yaml file.
func findProjectRootDir(startDir string, configFilename string) (string, error) {
	dir := startDir
	for i := 0; i < maxSearchDepth; i++ {
		switch _, err := findConfigPathInDirectory(dir, configFilename); {
		case err != nil && !errors.IsConfigNotFound(err):
			return "", err
		case err == nil:
			return dir, nil
		case dir == "." || dir == "/":
			return "", errors.ConfigNotFound(fmt.Sprintf("%s not found in %s (or in any parent directories)", configFilename, startDir))
		}

		dir = filepath.Dir(dir)
	}

	return "", errors.ConfigNotFound(fmt.Sprintf("No %s found in parent directories.", configFilename))
}
