package root

import (
	"fmt"

	"github.com/chuk-labs/vshell/pkg/common"
)

// setupLogger initializes the logger from the command-line flags and
// installs it as the global application logger.
func setupLogger() (*common.Logger, error) {
	level := common.LogLevelFromString(logLevel)

	logger, err := common.NewLogger("[vshell] ", logFile, level, true)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	common.SetLogger(logger)
	return logger, nil
}
