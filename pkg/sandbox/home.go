// Package sandbox resolves named sandbox profiles to configuration files
// and parses them so the bootstrap can validate a profile and check its
// requirements before handing it to the engine.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// VShellDirEnv is the environment variable that overrides the vshell
	// configuration directory.
	VShellDirEnv = "VSHELL_DIR"
	// VShellHome is the name of the vshell configuration directory inside
	// the user's home.
	VShellHome = ".vshell"
	// VShellConfigDir is the profile directory inside the vshell home.
	VShellConfigDir = "config"
)

// GetHome returns the user's home directory in a portable way.
func GetHome() (string, error) {
	var home string

	if runtime.GOOS == "windows" {
		home = os.Getenv("USERPROFILE")
		if home == "" {
			home = os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
		}
	} else {
		home = os.Getenv("HOME")
	}

	if home == "" {
		return "", fmt.Errorf("unable to determine home directory")
	}

	return home, nil
}

// GetVShellHome returns the vshell configuration directory, typically
// ~/.vshell, honoring the VSHELL_DIR override.
func GetVShellHome() (string, error) {
	if dir := os.Getenv(VShellDirEnv); dir != "" {
		return dir, nil
	}

	home, err := GetHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, VShellHome), nil
}

// GetVShellConfigDir returns the directory searched for named sandbox
// profiles, typically ~/.vshell/config.
func GetVShellConfigDir() (string, error) {
	vshellHome, err := GetVShellHome()
	if err != nil {
		return "", err
	}

	return filepath.Join(vshellHome, VShellConfigDir), nil
}
