package building

import "fmt"

// SurfaceType classifies a surface by its boundary condition and its role
// in the reduced-order model.
type SurfaceType string

// Surface types understood by the pipeline.
const (
	// SurfaceOuterWall is a vertical exterior wall with a facade
	// orientation.
	SurfaceOuterWall SurfaceType = "outer_wall"

	// SurfaceInnerWall is interior thermal mass (inner walls, ceilings,
	// floors between heated storeys). It has no facade orientation.
	SurfaceInnerWall SurfaceType = "inner_wall"

	// SurfaceRooftop is the upper building closure.
	SurfaceRooftop SurfaceType = "rooftop"

	// SurfaceGroundFloor is the ground-coupled lower closure.
	SurfaceGroundFloor SurfaceType = "ground_floor"

	// SurfaceWindow is transparent glazing with a facade orientation.
	SurfaceWindow SurfaceType = "window"
)

// Orientation azimuth sentinels, following the convention of the input
// data: regular azimuths are degrees clockwise from north.
const (
	// AzimuthHorizontal marks a horizontal, sky-facing surface (roofs).
	AzimuthHorizontal = -1.0

	// AzimuthGround marks a ground-coupled surface.
	AzimuthGround = -2.0
)

// knownSurfaceTypes is the closed set of accepted surface types.
//
//nolint:gochecknoglobals // Compile-time lookup table.
var knownSurfaceTypes = map[SurfaceType]bool{
	SurfaceOuterWall:   true,
	SurfaceInnerWall:   true,
	SurfaceRooftop:     true,
	SurfaceGroundFloor: true,
	SurfaceWindow:      true,
}

// Surface is one building element instance inside a zone: a construction
// applied to an area with a spatial orientation.
type Surface struct {
	// Name is the human-readable element name, e.g. "Exterior Facade North".
	Name string `yaml:"name"`

	// Type classifies the surface.
	Type SurfaceType `yaml:"type"`

	// Area in m².
	Area float64 `yaml:"area"`

	// Tilt in degrees against the horizontal: 90 for walls, 0 for flat
	// roofs and floors.
	Tilt float64 `yaml:"tilt"`

	// Azimuth in degrees clockwise from north, or one of the
	// AzimuthHorizontal/AzimuthGround sentinels.
	Azimuth float64 `yaml:"azimuth"`

	// Construction is the layer build-up of this surface.
	Construction Construction `yaml:"construction"`

	// GValue is the total solar energy transmittance, only meaningful
	// for windows.
	GValue float64 `yaml:"g_value,omitempty"`
}

// Validate checks type, area, and the underlying construction.
func (s Surface) Validate() error {
	if !knownSurfaceTypes[s.Type] {
		return fmt.Errorf("%w: unknown surface type %q", ErrInvalidSurface, s.Type)
	}
	if s.Area <= 0 {
		return fmt.Errorf("%w: surface %q has non-positive area %g", ErrInvalidSurface, s.Name, s.Area)
	}
	if err := s.Construction.Validate(); err != nil {
		return fmt.Errorf("surface %q: %w", s.Name, err)
	}
	return nil
}

// HasOrientation reports whether the surface type carries an orientation
// the aggregation tracks. Ground-coupled floors count: their orientation
// (the AzimuthGround sentinel) feeds the ground weight factor even though
// it never appears in facade arrays.
func (s Surface) HasOrientation() bool {
	switch s.Type {
	case SurfaceOuterWall, SurfaceWindow, SurfaceRooftop, SurfaceGroundFloor:
		return true
	default:
		return false
	}
}
