package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bldgsim/thermogen/internal/aggregate"
	"github.com/bldgsim/thermogen/internal/building"
	"github.com/bldgsim/thermogen/internal/logging"
	"github.com/bldgsim/thermogen/internal/modelspec"
	"github.com/bldgsim/thermogen/internal/render"
)

// Options controls an export run.
type Options struct {
	// OutputDir is the root of the generated model tree.
	OutputDir string

	// BuildingFilter restricts the run to one building, matched by
	// sanitized name or internal ID. Empty means all buildings.
	BuildingFilter string

	// ZoneFilter restricts the run to one zone, matched by sanitized
	// name or internal ID. Empty means all zones.
	ZoneFilter string

	// Workers bounds zone-level concurrency. Values below 1 mean
	// sequential processing.
	Workers int

	// ReferenceDir holds per-zone reference parameter files. Empty
	// disables the comparison.
	ReferenceDir string

	// Tolerance is the absolute and relative tolerance for reference
	// comparison. Zero means DefaultTolerance.
	Tolerance float64
}

// zoneTask pairs a zone with its building for the worker pool.
type zoneTask struct {
	building *building.Building
	zone     *building.Zone
	index    int
}

// Run exports every selected zone of the project into opts.OutputDir and
// returns a report of per-zone outcomes. Zones fail independently: an
// unsupported configuration or a degenerate zone never aborts the run.
func Run(ctx context.Context, project *building.Project, opts Options) (*Report, error) {
	log := logging.FromContext(ctx)

	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}

	tasks, err := selectZones(project, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:    ulid.Make().String(),
		Started:  time.Now(),
		Outcomes: make([]ZoneOutcome, len(tasks)),
	}

	log.Info().
		Str("component", "export").
		Str("run_id", report.RunID).
		Int("zones", len(tasks)).
		Str("output", opts.OutputDir).
		Msg("starting export run")

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 1 {
		g.SetLimit(opts.Workers)
	} else {
		g.SetLimit(1)
	}

	for _, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Outcomes[task.index] = exportZone(gctx, project, task, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	exportedBuildings := writePackages(project, report, opts)
	if err := writeProjectPackage(project, exportedBuildings, opts); err != nil {
		return nil, err
	}

	report.Finished = time.Now()

	log.Info().
		Str("component", "export").
		Str("run_id", report.RunID).
		Str("status", string(report.Status())).
		Dur("elapsed", report.Finished.Sub(report.Started)).
		Msg("export run finished")

	return report, nil
}

// selectZones collects the zones to export in declaration order,
// applying the building and zone filters.
func selectZones(project *building.Project, opts Options) ([]zoneTask, error) {
	var tasks []zoneTask
	buildingMatched := false
	zoneMatched := opts.ZoneFilter == ""

	for _, b := range project.Buildings {
		if opts.BuildingFilter != "" && !matches(opts.BuildingFilter, b.Name, b.InternalID) {
			continue
		}
		buildingMatched = true
		for _, z := range b.Zones {
			if opts.ZoneFilter != "" && !matches(opts.ZoneFilter, z.Name, z.InternalID) {
				continue
			}
			zoneMatched = true
			tasks = append(tasks, zoneTask{building: b, zone: z, index: len(tasks)})
		}
	}

	if opts.BuildingFilter != "" && !buildingMatched {
		return nil, fmt.Errorf("no building matches %q", opts.BuildingFilter)
	}
	if !zoneMatched {
		return nil, fmt.Errorf("no zone matches %q", opts.ZoneFilter)
	}
	return tasks, nil
}

func matches(filter, name, internalID string) bool {
	return filter == name || filter == internalID
}

// exportZone runs the full pipeline for one zone. All pipeline errors
// are captured in the outcome rather than returned.
func exportZone(ctx context.Context, project *building.Project, task zoneTask, opts Options) ZoneOutcome {
	log := logging.FromContext(ctx)
	outcome := ZoneOutcome{
		Building: task.building.Name,
		Zone:     task.zone.Name,
	}

	spec, err := modelspec.Resolve(project, task.building, task.zone)
	if err != nil {
		return classify(log, outcome, err)
	}

	za, err := aggregate.ForZone(task.zone, spec.Order, spec.ChainOrder, spec.MergeWindows)
	if err != nil {
		return classify(log, outcome, err)
	}

	artifact, err := render.Zone(spec, za)
	if err != nil {
		return classify(log, outcome, err)
	}

	path, err := writeArtifact(opts.OutputDir, artifact)
	if err != nil {
		return classify(log, outcome, err)
	}
	outcome.Status = ZoneExported
	outcome.Path = path

	if opts.ReferenceDir != "" {
		reference, err := loadReference(opts.ReferenceDir, task.building.Name, task.zone.Name)
		if err != nil {
			return classify(log, outcome, err)
		}
		if reference != nil {
			outcome.RefChecked = true
			outcome.RefMismatches = compareParameters(ParameterSet(za), reference, opts.Tolerance)
		}
	}

	log.Debug().
		Str("component", "export").
		Str("building", outcome.Building).
		Str("zone", outcome.Zone).
		Str("path", path).
		Msg("zone exported")

	return outcome
}

// classify maps a pipeline error onto the zone outcome. Unsupported
// library and order combinations are skips rather than failures.
func classify(log *zerolog.Logger, outcome ZoneOutcome, err error) ZoneOutcome {
	outcome.Err = err
	if errors.Is(err, modelspec.ErrUnsupportedConfiguration) {
		outcome.Status = ZoneSkipped
		log.Warn().
			Str("component", "export").
			Str("building", outcome.Building).
			Str("zone", outcome.Zone).
			Err(err).
			Msg("zone skipped")
		return outcome
	}
	outcome.Status = ZoneFailed
	log.Error().
		Str("component", "export").
		Str("building", outcome.Building).
		Str("zone", outcome.Zone).
		Err(err).
		Msg("zone failed")
	return outcome
}

// writePackages emits the package.mo and package.order wrappers for
// every building that had at least one exported zone. Wrapper write
// errors are folded into the first outcome of the affected building.
func writePackages(project *building.Project, report *Report, opts Options) []*building.Building {
	var exported []*building.Building
	for _, b := range project.Buildings {
		first := -1
		for i, o := range report.Outcomes {
			if o.Building == b.Name && o.Status == ZoneExported {
				first = i
				break
			}
		}
		if first < 0 {
			continue
		}
		exported = append(exported, b)

		artifacts, err := render.BuildingPackage(project.Name, b)
		if err == nil {
			for _, a := range artifacts {
				if _, werr := writeArtifact(opts.OutputDir, a); werr != nil {
					err = werr
					break
				}
			}
		}
		if err != nil {
			report.Outcomes[first].Status = ZoneFailed
			report.Outcomes[first].Err = fmt.Errorf("building package: %w", err)
		}
	}
	return exported
}

// writeProjectPackage emits the top level package wrapper when at least
// one building produced output.
func writeProjectPackage(project *building.Project, exported []*building.Building, opts Options) error {
	if len(exported) == 0 {
		return nil
	}
	artifacts, err := render.ProjectPackage(project, exported)
	if err != nil {
		return fmt.Errorf("project package: %w", err)
	}
	for _, a := range artifacts {
		if _, err := writeArtifact(opts.OutputDir, a); err != nil {
			return fmt.Errorf("project package: %w", err)
		}
	}
	return nil
}
