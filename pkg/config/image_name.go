package config

import (
	"path"
	"regexp"
	"strings"
)

var imageNameIllegalChars = regexp.MustCompile(`[^a-z0-9\-]+`)

// DockerImageName returns the default Docker image name for a project
func DockerImageName(projectDir string) string {
	prefix := "boxkit-"
	projectName := strings.ToLower(path.Base(projectDir))

	// Convert whitespace to dashes
	projectName = strings.ReplaceAll(projectName, " ", "-")

	// Remove anything non-alphanumeric
	projectName = imageNameIllegalChars.ReplaceAllString(projectName, "")

	// Limit to 30 characters (max Docker image name length)
	length := 30 - len(prefix)
	if len(projectName) > length {
		projectName = projectName[:length]
	}

	return prefix + projectName
}
