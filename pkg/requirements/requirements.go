package requirements

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/boxkit/boxkit/pkg/config"
	"github.com/boxkit/boxkit/pkg/util/files"
)

const RequirementsFile = "requirements.txt"

var pinnedRequirementRe = regexp.MustCompile(`^([a-zA-Z0-9\-_.]+)==([^\s]+)$`)

// GenerateRequirements stages the project's dependency manifest into tmpDir
// so it can be copied into the image. The staged copy is only rewritten when
// the content changed, keeping layer caching effective. Returns the staged
// file path, or "" when the config declares no manifest.
func GenerateRequirements(tmpDir string, cfg *config.Config) (string, error) {
	if cfg.Build.PythonRequirements == "" {
		return "", nil
	}

	content := strings.Join(cfg.RequirementsContent(), "\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	requirementsFile := filepath.Join(tmpDir, RequirementsFile)
	if err := files.WriteIfDifferent(requirementsFile, content); err != nil {
		return "", fmt.Errorf("Failed to stage %s: %w", RequirementsFile, err)
	}
	return requirementsFile, nil
}

// CurrentRequirements returns the staged manifest from a previous run, or ""
// when none exists.
func CurrentRequirements(tmpDir string) (string, error) {
	requirementsFile := filepath.Join(tmpDir, RequirementsFile)
	_, err := os.Stat(requirementsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return requirementsFile, nil
}

// SplitPinnedRequirement returns the name and version from a manifest line in
// the form name==version.
func SplitPinnedRequirement(requirement string) (name string, version string, err error) {
	match := pinnedRequirementRe.FindStringSubmatch(strings.TrimSpace(requirement))
	if match == nil {
		return "", "", fmt.Errorf("Package %s is not in the format 'name==version'", requirement)
	}
	return match[1], match[2], nil
}
