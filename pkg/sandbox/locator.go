package sandbox

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// ProfileEnvVar names the sandbox profile to load for a session.
	ProfileEnvVar = "VSHELL_SANDBOX"
	// DefaultProfile is the profile name used when the selector is unset
	// or the requested profile cannot be located.
	DefaultProfile = "ai_sandbox"
	// SystemConfigDir is the fixed system-wide profile directory.
	SystemConfigDir = "/etc/vshell"
)

// profileExtensions are the recognized configuration-file extensions, in
// candidate-generation order.
var profileExtensions = []string{".yaml", ".yml"}

// IsDirectReference reports whether name already identifies a concrete
// configuration resource: it ends with a recognized extension or contains
// a path separator. Direct references bypass the candidate search; the
// caller is responsible for checking they exist.
func IsDirectReference(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range profileExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return strings.ContainsRune(name, '/') || strings.ContainsRune(name, os.PathSeparator)
}

// Candidates returns the ordered list of paths probed for a profile name:
// the bare name, the name with each recognized extension, and the name
// with each extension under every known configuration directory.
func Candidates(name string) []string {
	candidates := []string{name}
	for _, ext := range profileExtensions {
		candidates = append(candidates, name+ext)
	}

	dirs := []string{"config"}
	if configDir, err := GetVShellConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, SystemConfigDir)

	for _, dir := range dirs {
		for _, ext := range profileExtensions {
			candidates = append(candidates, filepath.Join(dir, name+ext))
		}
	}

	return candidates
}

// Locate resolves a sandbox profile name to a configuration file path.
// Direct references are returned unchanged without touching the
// filesystem. Otherwise the candidates are checked in priority order and
// the first existing file wins; the second result is false if none exist.
func Locate(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if IsDirectReference(name) {
		return name, true
	}

	for _, candidate := range Candidates(name) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}

	return "", false
}
