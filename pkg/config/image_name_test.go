package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDockerImageName(t *testing.T) {
	require.Equal(t, "boxkit-rom-scraper", DockerImageName("/home/user/projects/ROM Scraper"))
	require.Equal(t, "boxkit-myproject", DockerImageName("/code/my_project!"))
	require.Equal(t, "boxkit-aaaaaaaaaaaaaaaaaaaaaaa", DockerImageName("/code/aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
}
