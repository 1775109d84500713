package sandbox

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/chuk-labs/vshell/pkg/common"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}
	return path
}

func testLogger(t *testing.T) *common.Logger {
	t.Helper()

	logger, err := common.NewLogger("", "", common.LogLevelNone, false)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `sandbox:
  name: ai_sandbox
  environment:
    HOME: /home/ai
    USER: ai
  security:
    read_only: true
  prompt: "{{ .user }}@vshell$ "
  requirements:
    executables:
      - sh
    conditions:
      - 'env["HOME"] != ""'
`)

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}

	if profile.Sandbox.Name != "ai_sandbox" {
		t.Errorf("Expected name ai_sandbox, got %q", profile.Sandbox.Name)
	}
	if profile.Sandbox.Environment["USER"] != "ai" {
		t.Errorf("Expected USER=ai, got %q", profile.Sandbox.Environment["USER"])
	}
	if !profile.Sandbox.Security.ReadOnly {
		t.Error("Expected read_only security mode")
	}
	if err := profile.Validate(testLogger(t)); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected an error for a missing profile file")
	}
}

func TestLoadProfileMalformedYAML(t *testing.T) {
	path := writeProfile(t, "sandbox: [not a mapping")
	if _, err := LoadProfile(path); err == nil {
		t.Error("Expected an error for malformed YAML")
	}
}

func TestValidateRejectsBadTemplate(t *testing.T) {
	profile := &Profile{Sandbox: SandboxConfig{
		Name:   "test",
		Prompt: "{{ .user",
	}}

	if err := profile.Validate(testLogger(t)); err == nil {
		t.Error("Expected an error for an invalid prompt template")
	}
}

func TestValidateRejectsBadConditions(t *testing.T) {
	profile := &Profile{Sandbox: SandboxConfig{
		Name: "test",
		Requirements: Requirements{
			Conditions: []string{`env[`},
		},
	}}

	if err := profile.Validate(testLogger(t)); err == nil {
		t.Error("Expected an error for an invalid condition")
	}
}

func TestValidateRequiresName(t *testing.T) {
	profile := &Profile{}
	if err := profile.Validate(testLogger(t)); err == nil {
		t.Error("Expected an error for a profile without a name")
	}
}

func TestCheckRequirements(t *testing.T) {
	environ := map[string]string{"USER": "tester"}

	tests := []struct {
		name         string
		requirements Requirements
		expected     bool
	}{
		{
			name:         "no requirements",
			requirements: Requirements{},
			expected:     true,
		},
		{
			name:         "matching OS",
			requirements: Requirements{OS: runtime.GOOS},
			expected:     true,
		},
		{
			name:         "non-matching OS",
			requirements: Requirements{OS: "non-existent-os"},
			expected:     false,
		},
		{
			name:         "existing executable",
			requirements: Requirements{Executables: []string{"sh"}},
			expected:     true,
		},
		{
			name:         "missing executable",
			requirements: Requirements{Executables: []string{"non-existent-executable-12345"}},
			expected:     false,
		},
		{
			name:         "passing condition",
			requirements: Requirements{Conditions: []string{`env["USER"] == "tester"`}},
			expected:     true,
		},
		{
			name:         "failing condition",
			requirements: Requirements{Conditions: []string{`env["USER"] == "root"`}},
			expected:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := &Profile{Sandbox: SandboxConfig{
				Name:         "test",
				Requirements: tt.requirements,
			}}

			met, err := profile.CheckRequirements(environ, testLogger(t))
			if err != nil {
				t.Fatalf("CheckRequirements() error: %v", err)
			}
			if met != tt.expected {
				t.Errorf("CheckRequirements() = %v, expected %v", met, tt.expected)
			}
		})
	}
}
