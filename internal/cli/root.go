// Package cli implements the thermogen command tree.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bldgsim/thermogen/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ctxKey keys cli values stored in the command context.
type ctxKey int

const configKey ctxKey = iota

// configFromContext returns the tool configuration stored by the root
// command, or defaults when run outside the command tree.
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	return config.New()
}

// NewRootCmd creates the root Cobra command for the thermogen CLI.
// It wires up configuration, logging, and the export and params
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "thermogen",
		Short:   "Reduced-order thermal model generator",
		Long:    "thermogen derives lumped RC thermal zone models from building descriptions and renders them as Modelica source for AixLib, Buildings, BuildingSystems, and IDEAS.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg := config.Load(cmd.Context(), configPath)

			ctx := context.WithValue(cmd.Context(), configKey, cfg)
			cmd.SetContext(ctx)

			setupLogging(cmd, cfg)
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to the tool config file")
	cmd.AddCommand(newExportCmd(), newParamsCmd())

	return cmd
}

const rootCmdExample = `  # Export all zones of a project with the configured defaults
  thermogen export --project office.yaml --output out/

  # Export a single building against the Buildings library, fourth order
  thermogen export --project office.yaml --building MainWing --library Buildings --order 4

  # Export with separate window branches and four parallel workers
  thermogen export --project office.yaml --library IDEAS --merge-windows=false --workers 4

  # Check generated parameters against reference results
  thermogen export --project office.yaml --reference-dir ref/ --tolerance 1e-5

  # Inspect the derived RC parameters without writing model files
  thermogen params --project office.yaml --zone LivingRoom`
