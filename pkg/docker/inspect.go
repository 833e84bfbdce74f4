package docker

import (
	"context"
	"os/exec"
	"strings"

	"github.com/boxkit/boxkit/pkg/util/console"
)

// ImageExists reports whether the image is present in the local daemon.
func ImageExists(ctx context.Context, imageName string) (bool, error) {
	cmd := exec.CommandContext(ctx, "docker", "image", "inspect", "--format", "{{.Id}}", imageName)
	console.Debug("$ " + strings.Join(cmd.Args, " "))

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
