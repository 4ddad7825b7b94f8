package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bldgsim/thermogen/internal/building"
	"github.com/bldgsim/thermogen/internal/export"
	"github.com/bldgsim/thermogen/internal/logging"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrPartialExport reports a run where some zones exported and others
// were skipped or failed. Callers map it to its own exit code.
var ErrPartialExport = constError("export run completed partially")

// exportFlags holds the flag values for the export command.
type exportFlags struct {
	project      string
	output       string
	library      string
	order        int
	chainOrder   int
	mergeWindows bool
	building     string
	zone         string
	workers      int
	referenceDir string
	tolerance    float64
}

// newExportCmd creates the export command: load a project file, derive
// the reduced-order models, and write the model package tree.
func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate simulation model files from a project description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)
			cfg := configFromContext(ctx)

			project, err := building.LoadProject(flags.project)
			if err != nil {
				return err
			}
			applyProjectOverrides(cmd, project, &flags)

			opts := export.Options{
				OutputDir:      flags.output,
				BuildingFilter: flags.building,
				ZoneFilter:     flags.zone,
				Workers:        flags.workers,
				ReferenceDir:   flags.referenceDir,
				Tolerance:      flags.tolerance,
			}
			if opts.OutputDir == "" {
				opts.OutputDir = cfg.Export.Output
			}
			if !cmd.Flags().Changed("workers") {
				opts.Workers = cfg.Export.Workers
			}
			if opts.ReferenceDir == "" {
				opts.ReferenceDir = cfg.Export.ReferenceDir
			}
			if !cmd.Flags().Changed("tolerance") && cfg.Export.Tolerance > 0 {
				opts.Tolerance = cfg.Export.Tolerance
			}

			report, err := export.Run(ctx, project, opts)
			if err != nil {
				return err
			}
			if err := report.Render(cmd.OutOrStdout()); err != nil {
				return err
			}

			if report.Status() == export.StatusFailure {
				return fmt.Errorf("export run %s produced no models", report.RunID)
			}
			for _, o := range report.Outcomes {
				if len(o.RefMismatches) > 0 {
					return fmt.Errorf("reference comparison failed for %s/%s", o.Building, o.Zone)
				}
			}
			if report.Status() == export.StatusPartial {
				return fmt.Errorf("run %s: %w", report.RunID, ErrPartialExport)
			}

			log.Debug().Str("run_id", report.RunID).Msg("export command finished")
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.project, "project", "p", "", "project description file (required)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory for generated models")
	cmd.Flags().StringVar(&flags.library, "library", "", "target library: AixLib, Buildings, BuildingSystems, IDEAS")
	cmd.Flags().IntVar(&flags.order, "order", 0, "model order (1-4, library permitting)")
	cmd.Flags().IntVar(&flags.chainOrder, "chain-order", 0, "RC elements per surface chain (1-3)")
	cmd.Flags().BoolVar(&flags.mergeWindows, "merge-windows", true, "fold window chains into the exterior wall branch")
	cmd.Flags().StringVar(&flags.building, "building", "", "only export the named building")
	cmd.Flags().StringVar(&flags.zone, "zone", "", "only export the named zone")
	cmd.Flags().IntVar(&flags.workers, "workers", 1, "number of zones to process in parallel")
	cmd.Flags().StringVar(&flags.referenceDir, "reference-dir", "", "directory with reference parameter files to check against")
	cmd.Flags().Float64Var(&flags.tolerance, "tolerance", export.DefaultTolerance, "tolerance for reference comparison")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// applyProjectOverrides applies explicitly set model flags on top of the
// loaded project. Flags the user did not touch leave the project file's
// values in place.
func applyProjectOverrides(cmd *cobra.Command, project *building.Project, flags *exportFlags) {
	if cmd.Flags().Changed("library") {
		project.Library = flags.library
	}
	if cmd.Flags().Changed("order") {
		project.Order = flags.order
	}
	if cmd.Flags().Changed("chain-order") {
		project.ChainOrder = flags.chainOrder
	}
	if cmd.Flags().Changed("merge-windows") {
		project.MergeWindows = &flags.mergeWindows
	}
}
