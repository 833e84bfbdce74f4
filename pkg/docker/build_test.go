package docker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsAppleSiliconMac(t *testing.T) {
	require.True(t, isAppleSiliconMac("darwin", "arm64"))
	require.False(t, isAppleSiliconMac("darwin", "amd64"))
	require.False(t, isAppleSiliconMac("linux", "arm64"))
	require.False(t, isAppleSiliconMac("linux", "amd64"))
}
