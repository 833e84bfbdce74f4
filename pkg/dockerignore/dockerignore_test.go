package dockerignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateMatcherWithoutDockerIgnore(t *testing.T) {
	matcher, err := CreateMatcher(t.TempDir())
	require.NoError(t, err)
	require.Nil(t, matcher)
}

func TestCreateMatcher(t *testing.T) {
	tmpDir := t.TempDir()
	contents := `__pycache__
*.pyc
.git
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, DockerIgnoreFilename), []byte(contents), 0o644))

	matcher, err := CreateMatcher(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, matcher)

	require.True(t, matcher.MatchesPath("__pycache__/make.cpython-311.pyc"))
	require.True(t, matcher.MatchesPath("parsers/no_intro.pyc"))
	require.True(t, matcher.MatchesPath(".git/HEAD"))
	require.False(t, matcher.MatchesPath("requirements.txt"))
	require.False(t, matcher.MatchesPath(".boxkit/tmp/build123/requirements.txt"))
}
