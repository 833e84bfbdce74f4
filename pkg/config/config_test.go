package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func projectWithRequirements(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte(contents), 0o644))
	return dir
}

func TestFromYAMLDefaults(t *testing.T) {
	conf, err := FromYAML([]byte(``))
	require.NoError(t, err)
	require.NoError(t, conf.ValidateAndComplete(t.TempDir()))

	require.Equal(t, "python:3.11-slim", conf.Build.BaseImage)
	require.Equal(t, "/app", conf.Workdir)
	require.Equal(t, []string{"bash"}, conf.Command)
}

func TestFromYAMLRejectsUnknownFields(t *testing.T) {
	_, err := FromYAML([]byte(`
build:
  base_image: "python:3.11-slim"
entrypoint: ["bash"]
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "boxkit.yaml")
}

func TestFromYAMLRejectsWrongTypes(t *testing.T) {
	_, err := FromYAML([]byte(`
build:
  system_packages: "git"
`))
	require.Error(t, err)
}

func TestValidateAndCompleteFull(t *testing.T) {
	dir := projectWithRequirements(t, "requests\r\ncloudscraper\r\n")

	conf, err := FromYAML([]byte(`
build:
  base_image: "python:3.11-slim"
  env:
    PYTHONDONTWRITEBYTECODE: "1"
    PYTHONUNBUFFERED: "1"
  system_packages:
    - git
    - sqlite3
  python_requirements: requirements.txt
workdir: /app
command: ["bash"]
`))
	require.NoError(t, err)
	require.NoError(t, conf.ValidateAndComplete(dir))

	// CRLF endings are normalized away
	require.Equal(t, []string{"requests", "cloudscraper"}, conf.RequirementsContent())
}

func TestValidateAndCompleteMissingManifest(t *testing.T) {
	conf, err := FromYAML([]byte(`
build:
  python_requirements: requirements.txt
`))
	require.NoError(t, err)

	err = conf.ValidateAndComplete(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "python_requirements")
}

func TestValidateAndCompleteUnpinnedBaseImage(t *testing.T) {
	conf, err := FromYAML([]byte(`
build:
  base_image: "python"
`))
	require.NoError(t, err)

	err = conf.ValidateAndComplete(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "must pin a tag")
}

func TestValidateAndCompleteOldPython(t *testing.T) {
	conf, err := FromYAML([]byte(`
build:
  base_image: "python:3.7-slim"
`))
	require.NoError(t, err)

	err = conf.ValidateAndComplete(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "minimum supported")
}

func TestValidateAndCompleteVersionlessPythonTag(t *testing.T) {
	conf, err := FromYAML([]byte(`
build:
  base_image: "python:slim"
`))
	require.NoError(t, err)

	err = conf.ValidateAndComplete(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Python version")
}

func TestValidateAndCompleteRegistryQualifiedBaseImage(t *testing.T) {
	conf, err := FromYAML([]byte(`
build:
  base_image: "docker.io/library/python:3.12-slim"
`))
	require.NoError(t, err)
	require.NoError(t, conf.ValidateAndComplete(t.TempDir()))
}

func TestValidateAndCompleteDigestPinnedBaseImage(t *testing.T) {
	conf, err := FromYAML([]byte(`
build:
  base_image: "python@sha256:2b9e1d4807bbf70f2f6a3dd2d6e515db35b129c6d3eee4b867f23ed9053ed4d8"
`))
	require.NoError(t, err)
	require.NoError(t, conf.ValidateAndComplete(t.TempDir()))
}

func TestValidateAndCompleteNonPythonBaseImage(t *testing.T) {
	conf, err := FromYAML([]byte(`
build:
  base_image: "debian:bookworm-slim"
`))
	require.NoError(t, err)
	require.NoError(t, conf.ValidateAndComplete(t.TempDir()))
}

func TestValidateAndCompleteReservedEnv(t *testing.T) {
	conf, err := FromYAML([]byte(`
build:
  env:
    PATH: "/opt/bin"
`))
	require.NoError(t, err)

	err = conf.ValidateAndComplete(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot be overridden")
}

func TestValidateAndCompleteBadEnvName(t *testing.T) {
	conf, err := FromYAML([]byte(`
build:
  env:
    1BAD: "1"
`))
	require.NoError(t, err)

	err = conf.ValidateAndComplete(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a valid name")
}

func TestValidateAndCompleteRelativeWorkdir(t *testing.T) {
	conf, err := FromYAML([]byte(`workdir: app`))
	require.NoError(t, err)

	err = conf.ValidateAndComplete(t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "absolute")
}
