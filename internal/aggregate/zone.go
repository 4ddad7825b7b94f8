package aggregate

import (
	"fmt"
	"math"

	"github.com/bldgsim/thermogen/internal/building"
)

// ZoneAggregates is the per-zone aggregate parameter set: one branch per
// surface group the selected model order keeps separate. Absent branches
// are nil.
type ZoneAggregates struct {
	// Exterior combines the outer walls with whatever the model order
	// folds into them: rooftop below order 4, ground floor below order
	// 3, windows when they are merged.
	Exterior *SurfaceAggregate

	// Interior is the orientation-free interior thermal mass, present
	// from order 2 on.
	Interior *SurfaceAggregate

	// Floor is the separate ground floor branch, present from order 3 on.
	Floor *SurfaceAggregate

	// Roof is the separate rooftop branch, present at order 4.
	Roof *SurfaceAggregate

	// Windows is the separate window RC branch, present only when
	// windows are not merged into the exterior branch.
	Windows *SurfaceAggregate

	// WindowInfo aggregates the window surfaces whenever the zone has
	// any, regardless of merging. The equivalent air temperature needs
	// window orientation weights and the solar transmittance even when
	// the window resistance is folded into the exterior chain.
	WindowInfo *SurfaceAggregate

	// GroundWeight is the ground-coupled share of the zone's total
	// stationary exterior heat transfer.
	GroundWeight float64
}

// ForZone groups the zone's surfaces according to the model order, reduces
// and combines each group, and computes the orientation weight factors.
//
// Grouping by order:
//
//	1: everything exterior in one branch, no interior branch
//	2: exterior (walls + roof + ground floor) and interior mass
//	3: ground floor split out of the exterior branch
//	4: rooftop split out as well
//
// Windows join the exterior branch when mergeWindows is set, otherwise
// they form their own branch.
func ForZone(zone *building.Zone, order, chainOrder int, mergeWindows bool) (*ZoneAggregates, error) {
	exterior := zone.SurfacesOfType(building.SurfaceOuterWall)
	interior := zone.SurfacesOfType(building.SurfaceInnerWall)
	floors := zone.SurfacesOfType(building.SurfaceGroundFloor)
	roofs := zone.SurfacesOfType(building.SurfaceRooftop)
	windows := zone.SurfacesOfType(building.SurfaceWindow)

	if order < 4 {
		exterior = append(exterior, roofs...)
		roofs = nil
	}
	if order < 3 {
		exterior = append(exterior, floors...)
		floors = nil
	}
	if order < 2 {
		exterior = append(exterior, interior...)
		interior = nil
	}

	var (
		za  ZoneAggregates
		err error
	)
	if za.Exterior, err = Combine(exterior, chainOrder); err != nil {
		return nil, fmt.Errorf("exterior walls: %w", err)
	}
	if za.Interior, err = Combine(interior, chainOrder); err != nil {
		return nil, fmt.Errorf("interior mass: %w", err)
	}
	if za.Floor, err = Combine(floors, chainOrder); err != nil {
		return nil, fmt.Errorf("ground floor: %w", err)
	}
	if za.Roof, err = Combine(roofs, chainOrder); err != nil {
		return nil, fmt.Errorf("rooftop: %w", err)
	}
	if za.WindowInfo, err = Combine(windows, chainOrder); err != nil {
		return nil, fmt.Errorf("windows: %w", err)
	}

	if mergeWindows {
		// The window chain is folded into the exterior equivalent
		// resistance; window areas and orientations stay with
		// WindowInfo for the equivalent air temperature.
		mergeChains(za.Exterior, za.WindowInfo)
	} else {
		za.Windows = za.WindowInfo
	}

	za.computeWeightFactors()
	return &za, nil
}

// mergeChains folds the RC chain of src into dst slot by slot:
// resistances combine in parallel, capacitances sum. Areas, coefficients,
// and orientations of dst are untouched.
func mergeChains(dst, src *SurfaceAggregate) {
	if dst == nil || src == nil {
		return
	}
	for i := range dst.Elements {
		if i >= len(src.Elements) {
			break
		}
		d, s := &dst.Elements[i], src.Elements[i]
		d.Resistance = parallel(d.Resistance, s.Resistance)
		d.Capacitance += s.Capacitance
	}
	if dst.RemainingResistance > 0 && src.RemainingResistance > 0 {
		dst.RemainingResistance = parallel(dst.RemainingResistance, src.RemainingResistance)
	}
}

// parallel combines two positive resistances in parallel.
func parallel(a, b float64) float64 {
	return 1 / (1/a + 1/b)
}

// computeWeightFactors assigns each exterior orientation its share of the
// zone's total stationary exterior heat transfer (solar weight) and that
// share scaled by the sky view factor of its tilt (sky weight).
// Ground-coupled orientations contribute to the total and to GroundWeight
// but exchange with neither sun nor sky, so their own weights stay zero.
// All weights together sum to at most one.
func (za *ZoneAggregates) computeWeightFactors() {
	var totalUA, groundUA float64
	for _, agg := range za.radiantBranches() {
		for _, o := range agg.Orientations {
			totalUA += o.UA
			if o.Azimuth == building.AzimuthGround {
				groundUA += o.UA
			}
		}
	}
	if za.Floor != nil {
		for _, o := range za.Floor.Orientations {
			totalUA += o.UA
			groundUA += o.UA
		}
	}
	if totalUA <= 0 {
		return
	}
	za.GroundWeight = groundUA / totalUA

	for _, agg := range za.radiantBranches() {
		agg.SolarWeights = make([]float64, len(agg.Orientations))
		agg.SkyWeights = make([]float64, len(agg.Orientations))
		for i, o := range agg.Orientations {
			if o.Azimuth == building.AzimuthGround {
				continue
			}
			w := o.UA / totalUA
			agg.SolarWeights[i] = w
			agg.SkyWeights[i] = w * skyViewFactor(o.Tilt)
		}
	}
}

// radiantBranches returns the non-nil aggregates that face sun and sky.
// WindowInfo stands in for the window branch so merged windows keep their
// equivalent-temperature weights.
func (za *ZoneAggregates) radiantBranches() []*SurfaceAggregate {
	var out []*SurfaceAggregate
	for _, agg := range []*SurfaceAggregate{za.Exterior, za.Roof, za.WindowInfo} {
		if agg != nil {
			out = append(out, agg)
		}
	}
	return out
}

// skyViewFactor returns the fraction of the hemisphere a surface of the
// given tilt exchanges radiation with: 1 for horizontal sky-facing
// surfaces, 0.5 for vertical walls.
func skyViewFactor(tiltDegrees float64) float64 {
	return (1 + math.Cos(tiltDegrees*math.Pi/180)) / 2
}
