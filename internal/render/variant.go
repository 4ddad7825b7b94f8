package render

import (
	"fmt"

	"github.com/bldgsim/thermogen/internal/modelspec"
)

// family groups libraries that share a template structure.
type family int

const (
	// famAixLib renders VDI-style zone parameter records with windows
	// folded into the equivalent air temperature.
	famAixLib family = iota

	// famIBPSA renders RC element models; Buildings, BuildingSystems,
	// and IDEAS share this structure and differ only in package prefix.
	famIBPSA
)

// variantKey identifies one structural combination. The set of keys in
// the variants table is closed: every supported library x order x window
// treatment has exactly one entry, and each entry is testable on its own.
type variantKey struct {
	fam             family
	order           int
	separateWindows bool
}

// variant names the template and the reduced-order model class to
// instantiate.
type variant struct {
	fam      family
	prefix   string
	topology string
	template string
}

// topologyNames maps model order to the RC class of the IBPSA family.
//
//nolint:gochecknoglobals // Compile-time lookup table.
var topologyNames = map[int]string{
	1: "OneElement",
	2: "TwoElements",
	3: "ThreeElements",
	4: "FourElements",
}

//nolint:gochecknoglobals // Compile-time lookup table.
var variants = map[variantKey]variant{
	{famAixLib, 1, false}: {famAixLib, "AixLib", "OneElement", "aixlib_zone.tmpl"},
	{famAixLib, 2, false}: {famAixLib, "AixLib", "TwoElements", "aixlib_zone.tmpl"},
	{famAixLib, 3, false}: {famAixLib, "AixLib", "ThreeElements", "aixlib_zone.tmpl"},

	{famIBPSA, 1, false}: {famIBPSA, "", "OneElement", "ibpsa_zone.tmpl"},
	{famIBPSA, 2, false}: {famIBPSA, "", "TwoElements", "ibpsa_zone.tmpl"},
	{famIBPSA, 3, false}: {famIBPSA, "", "ThreeElements", "ibpsa_zone.tmpl"},
	{famIBPSA, 4, false}: {famIBPSA, "", "FourElements", "ibpsa_zone.tmpl"},
	{famIBPSA, 1, true}:  {famIBPSA, "", "OneElement", "ibpsa_zone.tmpl"},
	{famIBPSA, 2, true}:  {famIBPSA, "", "TwoElements", "ibpsa_zone.tmpl"},
	{famIBPSA, 3, true}:  {famIBPSA, "", "ThreeElements", "ibpsa_zone.tmpl"},
	{famIBPSA, 4, true}:  {famIBPSA, "", "FourElements", "ibpsa_zone.tmpl"},
}

// variantFor selects the rendering variant for a resolved spec. The model
// selector already rejected unsupported combinations; a miss here means
// the binding cannot be completed and is a template binding error.
func variantFor(spec *modelspec.ZoneModelSpec) (variant, error) {
	fam := famIBPSA
	if spec.Library == modelspec.LibraryAixLib {
		fam = famAixLib
	}

	key := variantKey{fam: fam, order: spec.Order, separateWindows: !spec.MergeWindows}
	v, ok := variants[key]
	if !ok {
		return variant{}, fmt.Errorf("%w: no template variant for %s order %d (merge_windows=%t)",
			ErrTemplateBinding, spec.Library, spec.Order, spec.MergeWindows)
	}
	if v.prefix == "" {
		v.prefix = string(spec.Library)
	}
	return v, nil
}
