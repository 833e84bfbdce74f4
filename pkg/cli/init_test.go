package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boxkit/boxkit/pkg/config"
	"github.com/boxkit/boxkit/pkg/global"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(orig)) })
}

func TestInitCreatesProjectFiles(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cmd := newInitCommand()
	require.NoError(t, cmd.RunE(cmd, []string{}))

	for _, filename := range []string{global.ConfigFilename, "requirements.txt", ".dockerignore"} {
		_, err := os.Stat(filepath.Join(dir, filename))
		require.NoError(t, err, filename)
	}

	// the template must validate against the tool's own schema
	conf, rootDir, err := config.GetConfig(dir)
	require.NoError(t, err)
	require.Equal(t, dir, rootDir)
	require.Equal(t, "python:3.11-slim", conf.Build.BaseImage)
	require.Equal(t, map[string]string{
		"PYTHONDONTWRITEBYTECODE": "1",
		"PYTHONUNBUFFERED":        "1",
	}, conf.Build.Env)
	require.Equal(t, []string{"git", "sqlite3"}, conf.Build.SystemPackages)
	require.Equal(t, "/app", conf.Workdir)
	require.Equal(t, []string{"bash"}, conf.Command)
}

func TestInitSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	custom := []byte("build:\n  base_image: \"python:3.12-slim\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, global.ConfigFilename), custom, 0o644))

	cmd := newInitCommand()
	require.NoError(t, cmd.RunE(cmd, []string{}))

	bs, err := os.ReadFile(filepath.Join(dir, global.ConfigFilename))
	require.NoError(t, err)
	require.Equal(t, custom, bs)
}
