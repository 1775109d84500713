package root

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chuk-labs/vshell/pkg/common"
	"github.com/chuk-labs/vshell/pkg/sandbox"
)

// locateCommand resolves a sandbox profile name and shows the search
var locateCommand = &cobra.Command{
	Use:   "locate [profile]",
	Short: "Resolve a sandbox profile name to a configuration file",
	Long: `Resolve a sandbox profile name to a configuration file.

Prints every candidate path in priority order, marking which ones exist,
and the final resolution. With no argument the profile is taken from the
` + sandbox.ProfileEnvVar + ` environment variable, falling back to the default profile.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := setupLogger()
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := common.GetLogger()

		defer common.RecoverPanic(logger.Logger, logger.FilePath())

		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		if name == "" {
			name = os.Getenv(sandbox.ProfileEnvVar)
		}
		if name == "" {
			name = sandbox.DefaultProfile
		}

		if sandbox.IsDirectReference(name) {
			fmt.Printf("%q is a direct reference, returned unchanged: %s\n", name, name)
			if _, err := os.Stat(name); err != nil {
				fmt.Println(color.YellowString("Note: the referenced file does not exist"))
			}
			return nil
		}

		found := color.New(color.FgGreen)
		missing := color.New(color.FgRed)

		fmt.Printf("Candidates for profile %q:\n", name)
		for _, candidate := range sandbox.Candidates(name) {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				fmt.Printf("  %s %s\n", found.Sprint("✔"), candidate)
			} else {
				fmt.Printf("  %s %s\n", missing.Sprint("✘"), candidate)
			}
		}

		path, ok := sandbox.Locate(name)
		if !ok {
			fmt.Println(missing.Sprintf("No configuration found for profile %q", name))
			return nil
		}

		fmt.Println(found.Sprintf("Resolved: %s", path))
		return nil
	},
}

// init adds the locate command to the root command
func init() {
	rootCmd.AddCommand(locateCommand)
}
