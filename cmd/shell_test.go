package root

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chuk-labs/vshell/pkg/common"
	"github.com/chuk-labs/vshell/pkg/engine"
	"github.com/chuk-labs/vshell/pkg/engine/enginetest"
	"github.com/chuk-labs/vshell/pkg/sandbox"
)

// chdir mirrors testing.T.Chdir, which requires Go 1.24+; the build
// toolchain here is older.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("Failed to restore working directory: %v", err)
		}
	})
}

func noneLogger(t *testing.T) *common.Logger {
	t.Helper()

	logger, err := common.NewLogger("", "", common.LogLevelNone, false)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}

func TestBuildStrategiesDefault(t *testing.T) {
	strategies := buildStrategies()

	if len(strategies) != len(engine.DefaultStrategies()) {
		t.Fatalf("Expected the default strategies, got %v", strategies)
	}
}

func TestBuildStrategiesFlagsComeFirst(t *testing.T) {
	engineID = "custom-engine"
	enginePath = "/tmp/custom-engine.so"
	defer func() {
		engineID = ""
		enginePath = ""
	}()

	strategies := buildStrategies()

	if strategies[0].Kind != engine.StrategyRegistry || strategies[0].Target != "custom-engine" {
		t.Errorf("Expected the --engine strategy first, got %v", strategies[0])
	}
	if strategies[1].Kind != engine.StrategyPluginFile || strategies[1].Target != "/tmp/custom-engine.so" {
		t.Errorf("Expected the --engine-path strategy second, got %v", strategies[1])
	}
	if len(strategies) != 2+len(engine.DefaultStrategies()) {
		t.Errorf("Expected the defaults appended, got %v", strategies)
	}
}

func TestResolveSandboxFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(sandbox.VShellDirEnv, filepath.Join(dir, "vshell-home"))
	t.Setenv(sandbox.ProfileEnvVar, "missing_profile")

	if err := os.MkdirAll("config", 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	target := filepath.Join("config", sandbox.DefaultProfile+".yaml")
	if err := os.WriteFile(target, []byte("sandbox:\n  name: ai_sandbox\n"), 0644); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}

	var out bytes.Buffer
	path, profile := resolveSandbox(&out, noneLogger(t))

	if path != target {
		t.Errorf("Expected fallback to %q, got %q", target, path)
	}
	if profile == nil {
		t.Error("Expected the default profile to be parsed")
	}
	if !strings.Contains(out.String(), "falling back") {
		t.Errorf("Expected a fallback warning, got:\n%s", out.String())
	}
}

func TestResolveSandboxNoConfiguration(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(sandbox.VShellDirEnv, filepath.Join(dir, "vshell-home"))
	t.Setenv(sandbox.ProfileEnvVar, "missing_profile")

	var out bytes.Buffer
	path, profile := resolveSandbox(&out, noneLogger(t))

	// The session still starts: the engine gets no configuration rather
	// than the process failing
	if path != "" || profile != nil {
		t.Errorf("Expected no configuration, got path=%q profile=%v", path, profile)
	}
}

func TestResolveSandboxDefaultSelector(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(sandbox.VShellDirEnv, filepath.Join(dir, "vshell-home"))
	t.Setenv(sandbox.ProfileEnvVar, "")

	target := sandbox.DefaultProfile + ".yaml"
	if err := os.WriteFile(target, []byte("sandbox:\n  name: ai_sandbox\n"), 0644); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}

	var out bytes.Buffer
	path, _ := resolveSandbox(&out, noneLogger(t))

	if path != target {
		t.Errorf("Expected the default profile %q, got %q", target, path)
	}
}

func TestResolveSandboxUnmetRequirements(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(sandbox.VShellDirEnv, filepath.Join(dir, "vshell-home"))
	t.Setenv(sandbox.ProfileEnvVar, "restricted")

	content := "sandbox:\n  name: restricted\n  requirements:\n    os: non-existent-os\n"
	if err := os.WriteFile("restricted.yaml", []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}

	var out bytes.Buffer
	path, profile := resolveSandbox(&out, noneLogger(t))

	if path != "" || profile != nil {
		t.Errorf("Expected degradation to engine defaults, got path=%q", path)
	}
	if !strings.Contains(out.String(), "requirements") {
		t.Errorf("Expected a requirements warning, got:\n%s", out.String())
	}
}

func TestPrintBanner(t *testing.T) {
	eng := enginetest.New("config/ai_sandbox.yaml")

	var out bytes.Buffer
	printBanner(&out, eng, "config/ai_sandbox.yaml")

	for _, fragment := range []string{
		"vshell - Secure Virtual Environment",
		"Sandbox configuration: config/ai_sandbox.yaml",
		"Home directory: /home/tester",
		"User: tester",
		"Security mode: Read-only",
		"Type 'exit' to quit the shell.",
	} {
		if !strings.Contains(out.String(), fragment) {
			t.Errorf("Expected banner to contain %q, got:\n%s", fragment, out.String())
		}
	}
}

func TestPrintBannerEngineDefaults(t *testing.T) {
	eng := enginetest.New("")
	eng.Environment.ReadOnly = false

	var out bytes.Buffer
	printBanner(&out, eng, "")

	if !strings.Contains(out.String(), "Sandbox configuration: engine defaults") {
		t.Errorf("Expected the engine-defaults line, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Security mode: Restricted write") {
		t.Errorf("Expected restricted-write mode, got:\n%s", out.String())
	}
}
