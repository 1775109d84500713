// Package main provides the entry point for the vshell application.
//
// vshell is the bootstrap layer for an interactive virtual shell: it
// resolves a shell engine implementation and a named sandbox profile in an
// environment whose layout is not guaranteed, then drives the interactive
// command loop against the engine.
package main

import (
	"github.com/joho/godotenv"

	cmdroot "github.com/chuk-labs/vshell/cmd"
	"github.com/chuk-labs/vshell/pkg/common"
)

// main sets up panic recovery at the top level and executes the root
// command, which processes CLI flags and runs the selected subcommand.
func main() {
	// Setup global panic recovery that will catch any unhandled panics
	// and prevent the application from crashing uncleanly
	defer common.RecoverPanic(nil, "")

	// A .env file next to the binary may carry the sandbox selector and
	// other environment overrides; its absence is not an error.
	_ = godotenv.Load()

	cmdroot.Execute()
}
