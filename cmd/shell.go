package root

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chuk-labs/vshell/pkg/common"
	"github.com/chuk-labs/vshell/pkg/engine"
	"github.com/chuk-labs/vshell/pkg/sandbox"
	"github.com/chuk-labs/vshell/pkg/shell"
)

// shellCommand starts an interactive virtual shell session
var shellCommand = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive virtual shell session",
	Long: `Start an interactive virtual shell session.

The command resolves a shell engine (registered identifiers first, then a
filesystem search for an engine plugin), resolves the sandbox profile named
by the ` + sandbox.ProfileEnvVar + ` environment variable (or --sandbox), and drives
the prompt/read/dispatch loop against the engine.

A profile that cannot be located or whose requirements are unmet degrades
to the default profile, then to the engine's built-in defaults; only a
failure to resolve any engine at all is fatal.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		logger, err := setupLogger()
		if err != nil {
			return err
		}

		defer common.RecoverPanic(logger.Logger, logger.FilePath())

		logger.Info("Starting interactive shell session")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := common.GetLogger()

		defer common.RecoverPanic(logger.Logger, logger.FilePath())

		// The asynchronous execution context is created once here and
		// threaded explicitly through the session and its input source.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Resolve the engine. This is the only fatal path: on exhaustion,
		// report the environment once and exit non-zero.
		resolver := engine.NewResolver(buildStrategies(), logger)
		factory, err := resolver.Resolve()
		if err != nil {
			engine.ReportResolutionFailure(os.Stdout, resolver.Attempts())
			return err
		}

		// Resolve the sandbox profile; never fatal.
		configPath, profile := resolveSandbox(os.Stdout, logger)

		eng, err := factory(configPath)
		if err != nil {
			logger.Error("Failed to initialize shell engine: %v", err)
			return fmt.Errorf("failed to initialize shell engine: %w", err)
		}

		printBanner(os.Stdout, eng, configPath)

		source := selectInputSource(ctx, logger)

		promptTemplate := ""
		if profile != nil {
			promptTemplate = profile.Sandbox.Prompt
		}

		session := shell.New(shell.Config{
			Engine:         eng,
			Source:         source,
			Out:            os.Stdout,
			Logger:         logger,
			PromptTemplate: promptTemplate,
		})

		err = session.Run(ctx)
		fmt.Println("vshell session ended.")
		return err
	},
}

// buildStrategies assembles the resolution strategy order: explicit
// --engine / --engine-path requests first, then the defaults.
func buildStrategies() []engine.Strategy {
	var strategies []engine.Strategy

	if engineID != "" {
		strategies = append(strategies, engine.Strategy{Kind: engine.StrategyRegistry, Target: engineID})
	}
	if enginePath != "" {
		strategies = append(strategies, engine.Strategy{Kind: engine.StrategyPluginFile, Target: enginePath})
	}

	return append(strategies, engine.DefaultStrategies()...)
}

// selectInputSource picks the deployment mode for the read step: a
// channel-based asynchronous source with interrupt handling when stdin is
// a terminal, a plain synchronous buffered source otherwise (or with
// --plain).
func selectInputSource(ctx context.Context, logger *common.Logger) shell.LineSource {
	if plainInput || !term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Info("Using synchronous buffered input")
		return shell.NewBufferedSource(os.Stdin)
	}

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	logger.Info("Using asynchronous console input")
	lines := shell.StartStdinFeed(ctx, os.Stdin)
	return shell.NewChannelSource(lines, interrupts)
}

// resolveSandbox resolves the requested sandbox profile to a configuration
// path, degrading from the requested profile to the default profile, then
// to no configuration at all. It returns the resolved path (empty for
// engine defaults) and the parsed profile when the bootstrap could read it.
func resolveSandbox(w io.Writer, logger *common.Logger) (string, *sandbox.Profile) {
	selector := sandboxName
	if selector == "" {
		selector = os.Getenv(sandbox.ProfileEnvVar)
	}
	if selector == "" {
		selector = sandbox.DefaultProfile
	}

	warn := color.New(color.FgYellow)
	environ := common.EnvironMap(os.Environ())

	tried := make(map[string]bool)
	for _, name := range []string{selector, sandbox.DefaultProfile} {
		if tried[name] {
			continue
		}
		tried[name] = true

		path, ok := sandbox.Locate(name)
		if ok {
			// Direct references bypass the candidate search unchecked;
			// validate existence here.
			if _, err := os.Stat(path); err != nil {
				ok = false
			}
		}
		if !ok {
			if name != sandbox.DefaultProfile {
				fmt.Fprintln(w, warn.Sprintf("Warning: sandbox configuration %q not found, falling back to default", name))
			} else {
				logger.Info("Default sandbox configuration %q not found", name)
			}
			continue
		}

		profile, err := sandbox.LoadProfile(path)
		if err != nil {
			// The engine may understand more of the schema than the
			// bootstrap does; hand the path over anyway.
			logger.Error("Could not parse sandbox profile %s: %v", path, err)
			return path, nil
		}

		met, err := profile.CheckRequirements(environ, logger)
		if err != nil {
			logger.Error("Failed to check requirements of profile %s: %v", path, err)
			met = false
		}
		if !met {
			fmt.Fprintln(w, warn.Sprintf("Warning: requirements of sandbox profile %q not met, falling back to default", name))
			continue
		}

		logger.Info("Using sandbox configuration: %s", path)
		return path, profile
	}

	logger.Info("No usable sandbox configuration found, engine will use built-in defaults")
	return "", nil
}

// printBanner prints the startup banner and the engine's environment
// snapshot.
func printBanner(w io.Writer, eng engine.Engine, configPath string) {
	title := color.New(color.Bold, color.FgCyan)
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title.Sprint("vshell - Secure Virtual Environment"))
	fmt.Fprintln(w, rule)

	if configPath != "" {
		fmt.Fprintf(w, "Sandbox configuration: %s\n", configPath)
	} else {
		fmt.Fprintln(w, "Sandbox configuration: engine defaults")
	}

	info := eng.Info()
	fmt.Fprintf(w, "Home directory: %s\n", info.Home)
	fmt.Fprintf(w, "User: %s\n", info.User)
	fmt.Fprintf(w, "Security mode: %s\n", info.SecurityMode())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Type 'help' for a list of available commands.")
	fmt.Fprintln(w, "Type 'exit' to quit the shell.")
	fmt.Fprintln(w, strings.Repeat("-", 60))
}

// init adds the shell command to the root command
func init() {
	rootCmd.AddCommand(shellCommand)

	shellCommand.Flags().StringVarP(&sandboxName, "sandbox", "s", "", "Sandbox profile name or path (overrides "+sandbox.ProfileEnvVar+")")
	shellCommand.Flags().BoolVarP(&plainInput, "plain", "p", false, "Force synchronous buffered input even on a terminal")
	shellCommand.Flags().StringVarP(&engineID, "engine", "e", "", "Engine identifier to try before the default strategies")
	shellCommand.Flags().StringVarP(&enginePath, "engine-path", "", "", "Engine plugin file to try before the default strategies")
}
