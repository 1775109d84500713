package common

import (
	"os/exec"
	"runtime"
)

// CheckExecutableExists checks if a command is available in the system PATH.
func CheckExecutableExists(executableName string) bool {
	_, err := exec.LookPath(executableName)
	return err == nil
}

// CheckOSMatches checks if the current operating system matches the
// required OS (e.g. "darwin", "linux", "windows"). An empty requiredOS
// is considered a match.
func CheckOSMatches(requiredOS string) bool {
	if requiredOS == "" {
		return true
	}

	return runtime.GOOS == requiredOS
}
