package common

import (
	"io"
	"log"
	"runtime"
	"testing"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestCompiledConditionsEvaluate(t *testing.T) {
	environ := map[string]string{
		"USER": "tester",
		"HOME": "/home/tester",
	}

	tests := []struct {
		name       string
		conditions []string
		expected   bool
	}{
		{
			name:       "no conditions pass by default",
			conditions: nil,
			expected:   true,
		},
		{
			name:       "environment lookup",
			conditions: []string{`env["USER"] == "tester"`},
			expected:   true,
		},
		{
			name:       "failing condition",
			conditions: []string{`env["USER"] == "somebody-else"`},
			expected:   false,
		},
		{
			name:       "os variable",
			conditions: []string{`os == "` + runtime.GOOS + `"`},
			expected:   true,
		},
		{
			name: "all conditions must pass",
			conditions: []string{
				`env["USER"] != ""`,
				`env["HOME"].startsWith("/home")`,
				`env["USER"] == "somebody-else"`,
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc, err := NewCompiledConditions(tt.conditions, testLogger())
			if err != nil {
				t.Fatalf("NewCompiledConditions() error: %v", err)
			}

			result, err := cc.Evaluate(environ)
			if err != nil {
				t.Fatalf("Evaluate() error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("Evaluate() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestCompiledConditionsCompileError(t *testing.T) {
	if _, err := NewCompiledConditions([]string{`env[`}, testLogger()); err == nil {
		t.Error("Expected a compile error for a malformed expression")
	}
}

func TestCompiledConditionsNonBoolean(t *testing.T) {
	cc, err := NewCompiledConditions([]string{`env["USER"]`}, testLogger())
	if err != nil {
		t.Fatalf("NewCompiledConditions() error: %v", err)
	}

	if _, err := cc.Evaluate(map[string]string{"USER": "tester"}); err == nil {
		t.Error("Expected an error for a non-boolean condition")
	}
}

func TestEnvironMap(t *testing.T) {
	result := EnvironMap([]string{"A=1", "B=x=y", "MALFORMED"})

	if result["A"] != "1" {
		t.Errorf("Expected A=1, got %q", result["A"])
	}
	// Only the first '=' splits key and value
	if result["B"] != "x=y" {
		t.Errorf("Expected B=x=y, got %q", result["B"])
	}
	if _, exists := result["MALFORMED"]; exists {
		t.Error("Entries without '=' should be skipped")
	}
}
