package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/boxkit/boxkit/pkg/util/console"
)

// Build runs `docker buildx build` with the Dockerfile supplied on stdin.
// The engine owns atomicity: a failing step aborts the whole invocation and
// no image is produced.
func Build(ctx context.Context, dir string, dockerfile string, imageName string, noCache bool, progressOutput string) error {
	var args []string

	args = append(args,
		"buildx", "build",
	)

	if isAppleSiliconMac(runtime.GOOS, runtime.GOARCH) {
		// Fixes "WARNING: The requested image's platform (linux/amd64) does not match the detected host platform (linux/arm64/v8) and no specific platform was requested"
		args = append(args, "--platform", "linux/amd64", "--load")
	}

	if noCache {
		args = append(args, "--no-cache")
	}

	args = append(args,
		"--file", "-",
		"--tag", imageName,
		"--progress", progressOutput,
		".",
	)

	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stderr // redirect stdout to stderr - build output is all messaging
	cmd.Stderr = os.Stderr
	cmd.Stdin = strings.NewReader(dockerfile)

	console.Debug("$ " + strings.Join(cmd.Args, " "))
	return cmd.Run()
}

// BuildAddLabelsToImage rebuilds an image in place with extra labels. Label
// values are passed as --label arguments, so they need no Dockerfile quoting.
func BuildAddLabelsToImage(ctx context.Context, image string, labels map[string]string) error {
	var args []string

	args = append(args,
		"buildx", "build",
	)

	if isAppleSiliconMac(runtime.GOOS, runtime.GOARCH) {
		args = append(args, "--platform", "linux/amd64", "--load")
	}

	args = append(args,
		"--file", "-",
		"--tag", image,
	)
	for k, v := range labels {
		args = append(args, "--label", fmt.Sprintf("%s=%s", k, v))
	}
	// We're not using the context, but Docker requires we pass one
	args = append(args, ".")

	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdin = strings.NewReader("FROM " + image + "\n")

	console.Debug("$ " + strings.Join(cmd.Args, " "))

	if combinedOutput, err := cmd.CombinedOutput(); err != nil {
		console.Info(string(combinedOutput))
		return err
	}
	return nil
}

func isAppleSiliconMac(goos string, goarch string) bool {
	return goos == "darwin" && goarch == "arm64"
}
