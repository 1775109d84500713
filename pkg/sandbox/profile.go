package sandbox

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chuk-labs/vshell/pkg/common"
)

// Profile is the top-level structure of a sandbox profile file. The engine
// owns the full schema; the bootstrap parses the subset it needs to
// validate a profile and check its requirements.
type Profile struct {
	Sandbox SandboxConfig `yaml:"sandbox"`
}

// SandboxConfig describes one named sandbox environment.
type SandboxConfig struct {
	// Name is the profile's identifier
	Name string `yaml:"name"`

	// Environment is the initial virtual environment (HOME, USER, ...)
	Environment map[string]string `yaml:"environment,omitempty"`

	// Security describes the virtual filesystem's access restrictions
	Security SecurityConfig `yaml:"security,omitempty"`

	// Prompt is an optional prompt template rendered with sprig functions,
	// e.g. "{{ .user }}@vshell$ "
	Prompt string `yaml:"prompt,omitempty"`

	// Requirements restrict where this profile can be used
	Requirements Requirements `yaml:"requirements,omitempty"`
}

// SecurityConfig describes the access mode of the virtual filesystem.
type SecurityConfig struct {
	// ReadOnly selects read-only mode instead of restricted-write
	ReadOnly bool `yaml:"read_only,omitempty"`
}

// Requirements restrict the host environments a profile can run on. A
// profile whose requirements are unmet is skipped in favor of the default
// profile rather than failing the session.
type Requirements struct {
	// OS is the required host operating system (empty matches any)
	OS string `yaml:"os,omitempty"`

	// Executables must all be present in the host PATH
	Executables []string `yaml:"executables,omitempty"`

	// Conditions are CEL expressions over "env", "os" and "arch" that must
	// all evaluate to true
	Conditions []string `yaml:"conditions,omitempty"`
}

// LoadProfile reads and parses a sandbox profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}

	return &profile, nil
}

// Validate checks the parts of the profile the bootstrap understands: the
// prompt template must parse and the requirement conditions must compile.
func (p *Profile) Validate(logger *common.Logger) error {
	if p.Sandbox.Name == "" {
		return fmt.Errorf("profile has no sandbox name")
	}

	if p.Sandbox.Prompt != "" {
		if err := common.ValidateTemplate(p.Sandbox.Prompt); err != nil {
			return fmt.Errorf("invalid prompt template: %w", err)
		}
	}

	if _, err := common.NewCompiledConditions(p.Sandbox.Requirements.Conditions, logger.Logger); err != nil {
		return fmt.Errorf("invalid requirement conditions: %w", err)
	}

	return nil
}

// CheckRequirements reports whether the profile's requirements are met on
// this host: OS match, required executables present, and all CEL
// conditions true against the given environment map.
func (p *Profile) CheckRequirements(environ map[string]string, logger *common.Logger) (bool, error) {
	reqs := p.Sandbox.Requirements

	if !common.CheckOSMatches(reqs.OS) {
		logger.Info("Profile %q requires OS %q", p.Sandbox.Name, reqs.OS)
		return false, nil
	}

	for _, executable := range reqs.Executables {
		if !common.CheckExecutableExists(executable) {
			logger.Info("Profile %q requires executable %q", p.Sandbox.Name, executable)
			return false, nil
		}
	}

	conditions, err := common.NewCompiledConditions(reqs.Conditions, logger.Logger)
	if err != nil {
		return false, fmt.Errorf("failed to compile requirement conditions: %w", err)
	}

	return conditions.Evaluate(environ)
}
