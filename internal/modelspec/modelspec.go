// Package modelspec resolves the per-zone model configuration: which
// target library, model order, and window treatment apply, inherited
// project → building → zone with explicit overrides.
package modelspec

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/bldgsim/thermogen/internal/building"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnsupportedConfiguration indicates a (library, order, merge_windows,
// version) combination the target library does not define.
var ErrUnsupportedConfiguration = constError("unsupported model configuration")

// Library identifies a target Modelica library dialect.
type Library string

// Supported target libraries.
const (
	LibraryAixLib          Library = "AixLib"
	LibraryBuildings       Library = "Buildings"
	LibraryBuildingSystems Library = "BuildingSystems"
	LibraryIDEAS           Library = "IDEAS"
)

// Defaults applied when neither project, building, nor zone configures a
// value.
const (
	DefaultLibrary      = LibraryAixLib
	DefaultOrder        = 2
	DefaultChainOrder   = 1
	DefaultMergeWindows = true
)

// libraryRules captures what a library supports: which model orders it
// defines, whether separate window branches exist, and the version range
// of the library the generated models are written against.
type libraryRules struct {
	orders            map[int]bool
	separateWindows   bool
	versionConstraint string
	defaultVersion    string
}

//nolint:gochecknoglobals // Compile-time lookup table.
var rules = map[Library]libraryRules{
	// AixLib zone models follow the VDI 6007 calculation: windows are
	// always folded into the equivalent air temperature, and no
	// four-branch topology exists.
	LibraryAixLib: {
		orders:            map[int]bool{1: true, 2: true, 3: true},
		separateWindows:   false,
		versionConstraint: ">= 1.0.0, < 2.0.0",
		defaultVersion:    "1.3.2",
	},
	LibraryBuildings: {
		orders:            map[int]bool{1: true, 2: true, 3: true, 4: true},
		separateWindows:   true,
		versionConstraint: ">= 9.0.0, < 12.0.0",
		defaultVersion:    "11.0.0",
	},
	LibraryBuildingSystems: {
		orders:            map[int]bool{1: true, 2: true, 3: true, 4: true},
		separateWindows:   true,
		versionConstraint: ">= 2.0.0, < 3.0.0",
		defaultVersion:    "2.0.0",
	},
	LibraryIDEAS: {
		orders:            map[int]bool{1: true, 2: true, 3: true, 4: true},
		separateWindows:   true,
		versionConstraint: ">= 2.0.0, < 4.0.0",
		defaultVersion:    "3.0.0",
	},
}

// ZoneModelSpec is the fully resolved, immutable model configuration for
// one zone. The renderer is a pure function of this value plus the zone's
// aggregates.
type ZoneModelSpec struct {
	ProjectName  string
	BuildingName string
	ZoneName     string
	ZoneID       string

	Library        Library
	LibraryVersion string
	Order          int
	ChainOrder     int
	MergeWindows   bool

	WeatherFile       string
	GroundTemperature float64
	Volume            float64
	Solver            building.SolverSettings
	ExportVars        map[string]string
}

// Resolve builds the ZoneModelSpec for one zone, applying inheritance and
// validating the combination against the target library's rules.
func Resolve(p *building.Project, b *building.Building, z *building.Zone) (*ZoneModelSpec, error) {
	spec := &ZoneModelSpec{
		ProjectName:       p.Name,
		BuildingName:      b.Name,
		ZoneName:          z.Name,
		ZoneID:            z.InternalID,
		Library:           Library(resolveString(p.Library, b.Overrides.Library, z.Overrides.Library, string(DefaultLibrary))),
		LibraryVersion:    resolveString(p.LibraryVersion, b.Overrides.LibraryVersion, z.Overrides.LibraryVersion, ""),
		Order:             resolveInt(p.Order, b.Overrides.Order, z.Overrides.Order, DefaultOrder),
		ChainOrder:        resolveInt(p.ChainOrder, b.Overrides.ChainOrder, z.Overrides.ChainOrder, DefaultChainOrder),
		MergeWindows:      resolveBool(p.MergeWindows, b.Overrides.MergeWindows, z.Overrides.MergeWindows, DefaultMergeWindows),
		WeatherFile:       resolveString(p.WeatherFilePath, nil, nil, building.DefaultWeatherFile),
		GroundTemperature: p.GroundTemperature,
		Volume:            z.Volume,
		Solver:            p.Solver,
		ExportVars:        p.ExportVars,
	}
	if b.WeatherFilePath != "" {
		spec.WeatherFile = b.WeatherFilePath
	}

	if err := spec.validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func (s *ZoneModelSpec) validate() error {
	r, ok := rules[s.Library]
	if !ok {
		return fmt.Errorf("%w: unknown library %q", ErrUnsupportedConfiguration, s.Library)
	}
	if !r.orders[s.Order] {
		return fmt.Errorf("%w: %s does not define a model of order %d",
			ErrUnsupportedConfiguration, s.Library, s.Order)
	}
	if s.ChainOrder < 1 || s.ChainOrder > 3 {
		return fmt.Errorf("%w: chain order must be in [1,3], got %d",
			ErrUnsupportedConfiguration, s.ChainOrder)
	}
	if !s.MergeWindows && !r.separateWindows {
		return fmt.Errorf("%w: %s has no separate window branch, merge_windows must be true",
			ErrUnsupportedConfiguration, s.Library)
	}

	if s.LibraryVersion == "" {
		s.LibraryVersion = r.defaultVersion
		return nil
	}
	version, err := semver.NewVersion(s.LibraryVersion)
	if err != nil {
		return fmt.Errorf("%w: invalid %s version %q: %v",
			ErrUnsupportedConfiguration, s.Library, s.LibraryVersion, err)
	}
	constraint, err := semver.NewConstraint(r.versionConstraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint for %s: %w", s.Library, err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s %s is outside the supported range %q",
			ErrUnsupportedConfiguration, s.Library, s.LibraryVersion, r.versionConstraint)
	}
	return nil
}

func resolveString(base string, bldg, zone *string, fallback string) string {
	switch {
	case zone != nil && *zone != "":
		return *zone
	case bldg != nil && *bldg != "":
		return *bldg
	case base != "":
		return base
	default:
		return fallback
	}
}

func resolveInt(base int, bldg, zone *int, fallback int) int {
	switch {
	case zone != nil:
		return *zone
	case bldg != nil:
		return *bldg
	case base != 0:
		return base
	default:
		return fallback
	}
}

func resolveBool(base *bool, bldg, zone *bool, fallback bool) bool {
	switch {
	case zone != nil:
		return *zone
	case bldg != nil:
		return *bldg
	case base != nil:
		return *base
	default:
		return fallback
	}
}
