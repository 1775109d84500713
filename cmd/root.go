// Package root contains the command-line interface implementation for
// vshell.
//
// It defines the root command and all subcommands using Cobra and manages
// CLI flags, execution flow, and global application state.
package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chuk-labs/vshell/pkg/common"
)

// ApplicationName is the name of the application used in various places
const ApplicationName = "vshell"

// Common command-line flags
var (
	logFile  string
	logLevel string

	// Shell session flags
	sandboxName string
	plainInput  bool
	engineID    string
	enginePath  string

	// Application version (can be overridden at build time)
	version = "1.0.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     ApplicationName,
	Short:   "vshell",
	Version: version,
	Long: `vshell is the entry point for an interactive virtual shell.
It locates a shell engine implementation, resolves a named sandbox profile
to a configuration file, and drives an interactive command loop against
the engine.`,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is specified, show the help
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	defer common.RecoverPanic(nil, logFile)

	if err := rootCmd.Execute(); err != nil {
		common.GetLogger().Error("Command execution failed: %v", err)
		fmt.Println(err)
		os.Exit(1)
	}
}

// init registers global flags
func init() {
	rootCmd.PersistentFlags().StringVarP(&logFile, "logfile", "l", "", "Path to the log file (optional)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Log level: none, error, info, debug")

	rootCmd.PersistentFlags().BoolP("version", "v", false, "Print version information")
}
