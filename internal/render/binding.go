package render

import (
	"fmt"
	"sort"

	"github.com/bldgsim/thermogen/internal/aggregate"
	"github.com/bldgsim/thermogen/internal/building"
	"github.com/bldgsim/thermogen/internal/modelspec"
	"github.com/bldgsim/thermogen/internal/reduce"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrTemplateBinding indicates that a zone's parameters cannot be bound
// into the selected template variant: a required aggregate is missing or a
// substitution references an undefined parameter. The error aborts that
// zone's export only.
var ErrTemplateBinding = constError("template binding error")

// noWindowResistance stands in for RWin when the zone has no windows at
// all: the parameter must stay positive, and a very large resistance
// keeps the (zero-area) window path inert.
const noWindowResistance = 1e5

// Branch carries one RC branch of the zone model in template-ready form.
type Branch struct {
	Area                float64
	Resistances         []float64
	Capacitances        []float64
	RemainingResistance float64
	HConInner           float64
	HRadInner           float64
	HConOuter           float64
	HRadOuter           float64
	UValue              float64
}

// N is the number of RC pairs in the branch chain.
func (b *Branch) N() int { return len(b.Resistances) }

// TotalResistance is the series sum of the chain plus the remaining
// resistance.
func (b *Branch) TotalResistance() float64 {
	total := b.RemainingResistance
	for _, r := range b.Resistances {
		total += r
	}
	return total
}

// ExportVar is one named result collection with its wildcard pattern.
type ExportVar struct {
	Name    string
	Pattern string
}

// Binding is the fully materialized parameter set a template variant is
// rendered from. All names are sanitized, all arrays are clamped to
// length >= 1, and nothing in it is mutated during rendering.
type Binding struct {
	Spec *modelspec.ZoneModelSpec

	// Prefix is the Modelica package prefix of the target library.
	Prefix string

	// Topology is the reduced-order model class matching the order.
	Topology string

	ModelName     string
	WithinPackage string

	// Orientation-indexed arrays, parallel and padded to NOrientations.
	NOrientations int
	Tilts         []float64
	Azimuths      []float64
	AreasExt      []float64
	AreasWin      []float64
	SolarWeights  []float64
	SkyWeights    []float64
	WindowWeights []float64

	Exterior *Branch
	Interior *Branch
	Floor    *Branch
	Roof     *Branch
	Windows  *Branch

	// windowInfo carries the aggregated window data regardless of
	// merging, nil when the zone has no windows.
	windowInfo *Branch

	// GWin is the area-weighted solar transmittance of the windows,
	// zero when the zone has none.
	GWin float64

	// GroundWeight is the ground-coupled share of the zone's exterior
	// heat transfer.
	GroundWeight float64

	ExportVars []ExportVar
}

// HasInterior reports whether the interior mass branch is present.
func (b *Binding) HasInterior() bool { return b.Interior != nil }

// HasFloor reports whether the separate ground floor branch is present.
func (b *Binding) HasFloor() bool { return b.Floor != nil }

// HasRoof reports whether the separate rooftop branch is present.
func (b *Binding) HasRoof() bool { return b.Roof != nil }

// HasWindows reports whether the separate window branch is present.
func (b *Binding) HasWindows() bool { return b.Windows != nil }

// WindowResistance is the total window resistance in K/W: the separate
// branch's chain when present, the steady-state window resistance when
// merged, or a large inert value when the zone has no windows.
func (b *Binding) WindowResistance() float64 {
	switch {
	case b.Windows != nil:
		return b.Windows.TotalResistance()
	case b.windowInfo != nil:
		return b.windowInfo.TotalResistance()
	default:
		return noWindowResistance
	}
}

// WindowUValue is the area-weighted window heat transfer coefficient.
func (b *Binding) WindowUValue() float64 {
	if b.windowInfo == nil {
		return 0
	}
	return b.windowInfo.UValue
}

// WindowHCon is the indoor convective coefficient of the windows.
func (b *Binding) WindowHCon() float64 {
	if b.windowInfo == nil {
		return 0
	}
	return b.windowInfo.HConInner
}

// WindowHConOuter is the outdoor convective coefficient of the windows.
func (b *Binding) WindowHConOuter() float64 {
	if b.windowInfo == nil {
		return 0
	}
	return b.windowInfo.HConOuter
}

// WinHConOuterUA is the outdoor convective conductance of the windows in
// W/K, zero without a separate window branch.
func (b *Binding) WinHConOuterUA() float64 {
	if b.windowInfo == nil {
		return 0
	}
	return b.windowInfo.HConOuter * b.windowInfo.Area
}

// WallHConOuterUA is the outdoor convective conductance of the exterior
// walls in W/K.
func (b *Binding) WallHConOuterUA() float64 {
	return b.Exterior.HConOuter * b.Exterior.Area
}

// RoofHConOuterUA is the outdoor convective conductance of the roof in
// W/K, zero without a separate roof branch.
func (b *Binding) RoofHConOuterUA() float64 {
	if b.Roof == nil {
		return 0
	}
	return b.Roof.HConOuter * b.Roof.Area
}

// NewBinding validates that the aggregates carry everything the model
// order requires and materializes the template binding.
func NewBinding(spec *modelspec.ZoneModelSpec, za *aggregate.ZoneAggregates) (*Binding, error) {
	if za == nil || za.Exterior == nil {
		return nil, fmt.Errorf("%w: zone %s has no exterior wall aggregate",
			ErrTemplateBinding, spec.ZoneName)
	}
	if spec.Order >= 2 && za.Interior == nil {
		return nil, fmt.Errorf("%w: order %d requires an interior mass aggregate, zone %s has none",
			ErrTemplateBinding, spec.Order, spec.ZoneName)
	}

	b := &Binding{
		Spec:          spec,
		ModelName:     building.SanitizeName(spec.ZoneName),
		WithinPackage: building.SanitizeName(spec.ProjectName) + "." + building.SanitizeName(spec.BuildingName),
		Exterior:      newBranch(za.Exterior),
		Interior:      newBranch(za.Interior),
		Floor:         newBranch(za.Floor),
		Roof:          newBranch(za.Roof),
		Windows:       newBranch(za.Windows),
		windowInfo:    newBranch(za.WindowInfo),
		GroundWeight:  za.GroundWeight,
	}
	if za.WindowInfo != nil {
		b.GWin = za.WindowInfo.GValue
	}

	variant, err := variantFor(spec)
	if err != nil {
		return nil, err
	}
	b.Prefix = variant.prefix
	b.Topology = variant.topology

	bindOrientations(b, za)
	bindWindowArrays(b, za.WindowInfo)
	finalizeOrientations(b)
	bindExportVars(b, spec.ExportVars)

	return b, nil
}

// newBranch converts an aggregate into a template branch, nil in, nil out.
func newBranch(agg *aggregate.SurfaceAggregate) *Branch {
	if agg == nil {
		return nil
	}
	return &Branch{
		Area:                agg.Area,
		Resistances:         elementResistances(agg.Elements),
		Capacitances:        elementCapacitances(agg.Elements),
		RemainingResistance: agg.RemainingResistance,
		HConInner:           agg.InnerConvection,
		HRadInner:           agg.InnerRadiation,
		HConOuter:           agg.OuterConvection,
		HRadOuter:           agg.OuterRadiation,
		UValue:              agg.UValue,
	}
}

// bindOrientations flattens the exterior orientations into the parallel
// arrays the templates index 1-based. Ground-coupled orientations never
// appear in facade arrays; a separate roof branch keeps its orientation
// out of them as well.
func bindOrientations(b *Binding, za *aggregate.ZoneAggregates) {
	ext := za.Exterior
	for i, o := range ext.Orientations {
		if o.Azimuth == building.AzimuthGround {
			continue
		}
		b.Tilts = append(b.Tilts, o.Tilt)
		b.Azimuths = append(b.Azimuths, o.Azimuth)
		b.AreasExt = append(b.AreasExt, o.Area)
		b.SolarWeights = append(b.SolarWeights, weightAt(ext.SolarWeights, i))
		b.SkyWeights = append(b.SkyWeights, weightAt(ext.SkyWeights, i))
	}
	b.AreasWin = make([]float64, len(b.Tilts))
	b.WindowWeights = make([]float64, len(b.Tilts))
}

// bindWindowArrays aligns the per-orientation window areas and weights
// with the exterior orientation sequence, appending orientations that
// only windows have with zero wall area.
func bindWindowArrays(b *Binding, winInfo *aggregate.SurfaceAggregate) {
	if winInfo == nil {
		return
	}
	for i, o := range winInfo.Orientations {
		matched := false
		for j := range b.Tilts {
			if b.Tilts[j] == o.Tilt && b.Azimuths[j] == o.Azimuth {
				b.AreasWin[j] += o.Area
				b.WindowWeights[j] += weightAt(winInfo.SolarWeights, i)
				matched = true
				break
			}
		}
		if !matched {
			b.Tilts = append(b.Tilts, o.Tilt)
			b.Azimuths = append(b.Azimuths, o.Azimuth)
			b.AreasExt = append(b.AreasExt, 0)
			b.SolarWeights = append(b.SolarWeights, 0)
			b.SkyWeights = append(b.SkyWeights, 0)
			b.AreasWin = append(b.AreasWin, o.Area)
			b.WindowWeights = append(b.WindowWeights, weightAt(winInfo.SolarWeights, i))
		}
	}
}

// finalizeOrientations pads the parallel arrays to length one when no
// facade orientation exists: the target format rejects zero-length
// arrays, so a zero-area vertical placeholder is kept instead.
func finalizeOrientations(b *Binding) {
	if len(b.Tilts) == 0 {
		b.Tilts = []float64{90}
		b.Azimuths = []float64{0}
		b.AreasExt = []float64{0}
		b.SolarWeights = []float64{0}
		b.SkyWeights = []float64{0}
		b.AreasWin = []float64{0}
		b.WindowWeights = []float64{0}
	}
	b.NOrientations = ClampMin1(len(b.Tilts))
}

// bindExportVars copies the export variable map into a deterministically
// ordered slice so repeated renders are byte-identical.
func bindExportVars(b *Binding, vars map[string]string) {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.ExportVars = append(b.ExportVars, ExportVar{Name: name, Pattern: vars[name]})
	}
}

func elementResistances(elements []reduce.Element) []float64 {
	out := make([]float64, len(elements))
	for i, e := range elements {
		out[i] = e.Resistance
	}
	return out
}

func elementCapacitances(elements []reduce.Element) []float64 {
	out := make([]float64, len(elements))
	for i, e := range elements {
		out[i] = e.Capacitance
	}
	return out
}

func weightAt(weights []float64, i int) float64 {
	if i < len(weights) {
		return weights[i]
	}
	return 0
}
