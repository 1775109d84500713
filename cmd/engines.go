package root

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chuk-labs/vshell/pkg/common"
	"github.com/chuk-labs/vshell/pkg/engine"
)

// enginesCommand shows the available engines and the resolution order
var enginesCommand = &cobra.Command{
	Use:   "engines",
	Short: "Show registered engines and run the resolver in dry-run mode",
	Long: `Show the engine identifiers registered in this build and evaluate the
resolution strategies in order, printing each attempt and its outcome.
No engine instance is constructed and no session is started.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := setupLogger()
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := common.GetLogger()

		defer common.RecoverPanic(logger.Logger, logger.FilePath())

		if ids := engine.Identifiers(); len(ids) > 0 {
			fmt.Printf("Registered engine identifiers: %s\n", strings.Join(ids, ", "))
		} else {
			fmt.Println("Registered engine identifiers: none")
		}

		resolver := engine.NewResolver(buildStrategies(), logger)
		_, err := resolver.Resolve()

		ok := color.New(color.FgGreen)
		fail := color.New(color.FgRed)

		fmt.Println("Resolution attempts:")
		for i, attempt := range resolver.Attempts() {
			if attempt.Err == nil {
				fmt.Printf("  %d. %s: %s\n", i+1, attempt.Strategy, ok.Sprint("ok"))
			} else {
				fmt.Printf("  %d. %s: %s\n", i+1, attempt.Strategy, fail.Sprintf("%v", attempt.Err))
			}
		}

		if err != nil {
			fmt.Println(fail.Sprint("No engine could be resolved"))
		} else {
			fmt.Println(ok.Sprint("An engine is available"))
		}
		return nil
	},
}

// init adds the engines command to the root command
func init() {
	rootCmd.AddCommand(enginesCommand)
}
