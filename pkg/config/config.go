package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
	goversion "github.com/hashicorp/go-version"
	"gopkg.in/yaml.v2"
)

// MinimumPythonVersion is the oldest python base image boxkit will build on.
const MinimumPythonVersion = "3.8"

// Environment variables the generated Dockerfile owns. Letting the config
// override these leads to broken installs, so they are rejected up front.
var reservedEnvNames = []string{
	"PATH",
	"DEBIAN_FRONTEND",
}

var envNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Build struct {
	BaseImage          string            `json:"base_image,omitempty" yaml:"base_image"`
	Env                map[string]string `json:"env,omitempty" yaml:"env"`
	SystemPackages     []string          `json:"system_packages,omitempty" yaml:"system_packages"`
	PythonRequirements string            `json:"python_requirements,omitempty" yaml:"python_requirements"`

	requirementsContent []string
}

type Config struct {
	Build   *Build   `json:"build" yaml:"build"`
	Image   string   `json:"image,omitempty" yaml:"image"`
	Workdir string   `json:"workdir,omitempty" yaml:"workdir"`
	Command []string `json:"command,omitempty" yaml:"command"`

	filename string
}

func DefaultConfig() *Config {
	return &Config{
		Build: &Build{
			BaseImage: "python:3.11-slim",
		},
		Workdir: "/app",
		Command: []string{"bash"},
	}
}

func FromYAML(contents []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(contents, config); err != nil {
		return nil, fmt.Errorf("Failed to parse config yaml: %w", err)
	}
	// Everything downstream assumes Build is not nil
	if len(contents) != 0 && config.Build != nil {
		if err := Validate(string(contents), ""); err != nil {
			return nil, err
		}
	} else {
		config.Build = DefaultConfig().Build
	}
	return config, nil
}

// ValidateAndComplete checks everything the schema cannot express and loads
// the dependency manifest into memory. A missing manifest fails here, before
// any build step runs.
func (c *Config) ValidateAndComplete(projectDir string) error {
	errs := []error{}

	if err := ValidateConfig(c, ""); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateBaseImage(); err != nil {
		errs = append(errs, err)
	}

	for envName := range c.Build.Env {
		if err := validateEnvName(envName); err != nil {
			errs = append(errs, err)
		}
	}

	if c.Workdir == "" {
		c.Workdir = DefaultConfig().Workdir
	}
	if !strings.HasPrefix(c.Workdir, "/") {
		errs = append(errs, fmt.Errorf("workdir %q must be an absolute path", c.Workdir))
	}

	if len(c.Command) == 0 {
		c.Command = DefaultConfig().Command
	}

	if c.Build.PythonRequirements != "" {
		fh, err := os.Open(path.Join(projectDir, c.Build.PythonRequirements))
		if err != nil {
			errs = append(errs, fmt.Errorf("Failed to open python_requirements file: %w", err))
		} else {
			// Use a scanner to handle CRLF endings
			scanner := bufio.NewScanner(fh)
			for scanner.Scan() {
				c.Build.requirementsContent = append(c.Build.requirementsContent, scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				errs = append(errs, fmt.Errorf("Failed to read python_requirements file: %w", err))
			}
			fh.Close()
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// RequirementsContent returns the lines of the dependency manifest loaded by
// ValidateAndComplete.
func (c *Config) RequirementsContent() []string {
	return c.Build.requirementsContent
}

func (c *Config) validateBaseImage() error {
	baseImage := c.Build.BaseImage
	if baseImage == "" {
		return fmt.Errorf("base_image must be set")
	}

	ref, err := name.ParseReference(baseImage)
	if err != nil {
		return fmt.Errorf("Invalid base_image reference %q: %w", baseImage, err)
	}

	// Digest-pinned references cannot drift, nothing more to check
	tag, isTag := ref.(name.Tag)
	if !isTag {
		return nil
	}

	// An untagged reference silently floats on :latest, which breaks
	// rebuild determinism.
	lastComponent := baseImage[strings.LastIndex(baseImage, "/")+1:]
	if !strings.Contains(lastComponent, ":") {
		return fmt.Errorf("base_image %q must pin a tag, otherwise it floats on %q", baseImage, tag.TagStr())
	}

	if path.Base(tag.RepositoryStr()) == "python" {
		tagVersion := strings.SplitN(tag.TagStr(), "-", 2)[0]
		pythonVersion, err := goversion.NewVersion(tagVersion)
		if err != nil {
			return fmt.Errorf("base_image tag %q does not start with a Python version", tag.TagStr())
		}
		minVersion := goversion.Must(goversion.NewVersion(MinimumPythonVersion))
		if pythonVersion.LessThan(minVersion) {
			return fmt.Errorf("base_image Python version %s is older than the minimum supported %s", tagVersion, MinimumPythonVersion)
		}
	}

	return nil
}

func validateEnvName(envName string) error {
	if !envNameRe.MatchString(envName) {
		return fmt.Errorf("environment variable %q is not a valid name", envName)
	}
	for _, reserved := range reservedEnvNames {
		if envName == reserved {
			return fmt.Errorf("environment variable %q is set by boxkit and cannot be overridden", envName)
		}
	}
	return nil
}
