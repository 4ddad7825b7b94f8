// Package aggregate combines the reduced RC chains of a zone's surfaces
// into per-branch parameter sets for reduced-order zone models.
package aggregate

import (
	"fmt"
	"math"

	"github.com/bldgsim/thermogen/internal/building"
	"github.com/bldgsim/thermogen/internal/reduce"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrDegenerateAggregate indicates a non-physical aggregation result, such
// as a non-positive combined resistance despite positive inputs.
var ErrDegenerateAggregate = constError("degenerate aggregate")

// Orientation is one distinct facade orientation of an aggregate, with the
// area and heat transfer it contributes.
type Orientation struct {
	// Tilt in degrees against the horizontal.
	Tilt float64

	// Azimuth in degrees clockwise from north, or the sentinel values
	// building.AzimuthHorizontal / building.AzimuthGround.
	Azimuth float64

	// Area in m² summed over all surfaces sharing this orientation.
	Area float64

	// UA is the stationary heat transfer in W/K of this orientation.
	UA float64
}

// SurfaceAggregate is the combined parameter set of all surfaces feeding
// one branch of a zone model.
type SurfaceAggregate struct {
	// Area is the total area in m².
	Area float64

	// Elements is the parallel-combined RC chain, outside to inside.
	Elements []reduce.Element

	// RemainingResistance is the parallel-combined remaining resistance
	// in K/W, zero when no contributing surface has one.
	RemainingResistance float64

	// Area-weighted surface coefficients in W/(m²·K).
	InnerConvection float64
	InnerRadiation  float64
	OuterConvection float64
	OuterRadiation  float64

	// UValue is the area-weighted overall heat transfer coefficient in
	// W/(m²·K).
	UValue float64

	// GValue is the area-weighted solar transmittance; only meaningful
	// when window surfaces contribute.
	GValue float64

	// Orientations lists the distinct facade orientations in first
	// declaration order. Empty for orientation-free interior mass.
	Orientations []Orientation

	// SolarWeights and SkyWeights are parallel to Orientations: each
	// orientation's share of the zone's total exterior heat transfer,
	// and that share scaled by the sky view factor of its tilt.
	SolarWeights []float64
	SkyWeights   []float64
}

// UA returns the total stationary heat transfer of the aggregate in W/K.
func (a *SurfaceAggregate) UA() float64 {
	return a.UValue * a.Area
}

// Combine reduces every surface to a chain of at most chainOrder elements
// and merges the chains into one aggregate: areas and capacitances sum,
// resistances combine in parallel slot by slot, surface coefficients are
// area-weighted. Surfaces with fewer layers than chainOrder contribute
// only to the slots their chain has.
//
// Returns nil when surfaces is empty: an absent aggregate, not a
// zero-filled one.
func Combine(surfaces []building.Surface, chainOrder int) (*SurfaceAggregate, error) {
	if len(surfaces) == 0 {
		return nil, nil
	}

	agg := &SurfaceAggregate{}
	slotInvR := make([]float64, chainOrder)
	slotCap := make([]float64, chainOrder)
	slotSeen := make([]bool, chainOrder)
	var remInv float64
	var remSeen bool

	for _, s := range surfaces {
		reduced, err := reduce.Reduce(s.Construction, s.Area, chainOrder)
		if err != nil {
			return nil, fmt.Errorf("surface %q: %w", s.Name, err)
		}

		for i, el := range reduced.Elements {
			slotInvR[i] += 1 / el.Resistance
			slotCap[i] += el.Capacitance
			slotSeen[i] = true
		}
		if reduced.RemainingResistance > 0 {
			remInv += 1 / reduced.RemainingResistance
			remSeen = true
		}

		agg.Area += s.Area
		agg.InnerConvection += s.Construction.InnerConvection * s.Area
		agg.InnerRadiation += s.Construction.InnerRadiation * s.Area
		agg.OuterConvection += s.Construction.OuterConvection * s.Area
		agg.OuterRadiation += s.Construction.OuterRadiation * s.Area
		agg.UValue += s.Construction.UValue() * s.Area
		agg.GValue += s.GValue * s.Area

		addOrientation(agg, s)
	}

	if agg.Area <= 0 {
		return nil, fmt.Errorf("%w: total area %g is not positive", ErrDegenerateAggregate, agg.Area)
	}
	agg.InnerConvection /= agg.Area
	agg.InnerRadiation /= agg.Area
	agg.OuterConvection /= agg.Area
	agg.OuterRadiation /= agg.Area
	agg.UValue /= agg.Area
	agg.GValue /= agg.Area

	for i := 0; i < chainOrder; i++ {
		if !slotSeen[i] {
			continue
		}
		r := 1 / slotInvR[i]
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, fmt.Errorf("%w: combined resistance of element %d is %g",
				ErrDegenerateAggregate, i+1, r)
		}
		agg.Elements = append(agg.Elements, reduce.Element{
			Resistance:  r,
			Capacitance: slotCap[i],
		})
	}
	if len(agg.Elements) == 0 {
		return nil, fmt.Errorf("%w: no RC elements survived reduction", ErrDegenerateAggregate)
	}
	if remSeen {
		agg.RemainingResistance = 1 / remInv
	}

	return agg, nil
}

// addOrientation folds a surface into the aggregate's orientation list,
// merging surfaces that share tilt and azimuth and preserving first
// declaration order. Interior mass carries no orientation.
func addOrientation(agg *SurfaceAggregate, s building.Surface) {
	if !s.HasOrientation() {
		return
	}
	ua := s.Construction.UValue() * s.Area
	for i := range agg.Orientations {
		o := &agg.Orientations[i]
		if o.Tilt == s.Tilt && o.Azimuth == s.Azimuth {
			o.Area += s.Area
			o.UA += ua
			return
		}
	}
	agg.Orientations = append(agg.Orientations, Orientation{
		Tilt:    s.Tilt,
		Azimuth: s.Azimuth,
		Area:    s.Area,
		UA:      ua,
	})
}
