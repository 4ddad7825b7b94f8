package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bldgsim/thermogen/internal/config"
	"github.com/bldgsim/thermogen/internal/logging"
)

// setupLogging configures the run's logger from the config file and CLI
// flags and stores it in the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
	}

	// Console output only makes sense on a terminal. Piped or redirected
	// stderr gets JSON lines unless --debug forces console.
	if loggingCfg.Format == "console" && !debug && !isTerminal(os.Stderr) {
		loggingCfg.Format = "json"
	}

	logCfg := loggingCfg.ToLoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()

	logger := logging.ComponentLogger(logging.NewLogger(logCfg), "cli")
	ctx := logging.WithContext(cmd.Context(), logger)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}
