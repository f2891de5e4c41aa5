// Command phonectl is the operator CLI for PhonesBot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/PhonesBot_Go/internal/config"
	"github.com/osse101/PhonesBot_Go/internal/logger"
)

func main() {
	logger.InitLoggerWithWriter(logger.ToolConfig(logger.ToolServiceName), os.Stderr)

	root := &cobra.Command{
		Use:          "phonectl",
		Short:        "PhonesBot operator tool",
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCmd(),
		newCatalogCmd(),
		newLeaderboardCmd(),
		newSimulateCmd(),
		newEventsCmd(),
	)

	if err := root.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

// loadConfig reads the environment. Diagnostics go to stderr at warn level
// so only command output reaches stdout.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadForTools()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
