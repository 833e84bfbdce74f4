package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boxkit/boxkit/pkg/errors"
	"github.com/boxkit/boxkit/pkg/global"
)

func TestFindProjectRootDirWalksUp(t *testing.T) {
	rootDir := t.TempDir()
	nested := filepath.Join(rootDir, "parsers", "no_intro")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, global.ConfigFilename), []byte(""), 0o644))

	found, err := findProjectRootDir(nested, global.ConfigFilename)
	require.NoError(t, err)
	require.Equal(t, rootDir, found)
}

func TestFindProjectRootDirNotFound(t *testing.T) {
	_, err := findProjectRootDir(t.TempDir(), global.ConfigFilename)
	require.Error(t, err)
	require.True(t, errors.IsConfigNotFound(err))
}

func TestGetConfigWithProjectDir(t *testing.T) {
	projectDir := t.TempDir()
	configYAML := `
build:
  base_image: "python:3.11-slim"
  python_requirements: requirements.txt
`
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, global.ConfigFilename), []byte(configYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "requirements.txt"), []byte("requests\n"), 0o644))

	conf, rootDir, err := GetConfig(projectDir)
	require.NoError(t, err)
	require.Equal(t, projectDir, rootDir)
	require.Equal(t, []string{"requests"}, conf.RequirementsContent())
}

func TestGetConfigMissingConfigFile(t *testing.T) {
	_, _, err := GetConfig(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), global.ConfigFilename)
}
