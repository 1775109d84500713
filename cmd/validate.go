package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chuk-labs/vshell/pkg/common"
	"github.com/chuk-labs/vshell/pkg/sandbox"
)

// validateConfigFile is the path of the profile to validate
var validateConfigFile string

// validateCommand checks a sandbox profile file without starting a session
var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate a sandbox profile file",
	Long: `Validate a sandbox profile file without starting a session.
This command checks the parts of the profile the bootstrap understands:
- YAML structure and the sandbox name
- Prompt template syntax
- Requirement condition syntax (CEL)
It also reports whether the profile's requirements are met on this host.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := setupLogger()
		if err != nil {
			return err
		}

		defer common.RecoverPanic(logger.Logger, logger.FilePath())

		if validateConfigFile == "" {
			return fmt.Errorf("profile file is required. Use --config or -c flag to specify the path")
		}

		if _, err := os.Stat(validateConfigFile); os.IsNotExist(err) {
			return fmt.Errorf("profile file does not exist: %s", validateConfigFile)
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := common.GetLogger()

		defer common.RecoverPanic(logger.Logger, logger.FilePath())

		profile, err := sandbox.LoadProfile(validateConfigFile)
		if err != nil {
			logger.Error("Profile validation failed: %v", err)
			return fmt.Errorf("profile validation failed: %w", err)
		}

		if err := profile.Validate(logger); err != nil {
			logger.Error("Profile validation failed: %v", err)
			return fmt.Errorf("profile validation failed: %w", err)
		}

		met, err := profile.CheckRequirements(common.EnvironMap(os.Environ()), logger)
		if err != nil {
			return fmt.Errorf("failed to check profile requirements: %w", err)
		}

		fmt.Printf("Profile %q is valid\n", profile.Sandbox.Name)
		if met {
			fmt.Println("Requirements are met on this host")
		} else {
			fmt.Println("Requirements are NOT met on this host")
		}
		return nil
	},
}

// init adds the validate command to the root command
func init() {
	rootCmd.AddCommand(validateCommand)

	validateCommand.Flags().StringVarP(&validateConfigFile, "config", "c", "", "Path to the sandbox profile file (required)")

	_ = validateCommand.MarkFlagRequired("config")
}
