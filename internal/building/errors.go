package building

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for building data validation.
// These can be compared with errors.Is().
var (
	// ErrInvalidConstruction indicates malformed construction or layer
	// data: an empty layer list, or a non-positive thickness,
	// conductivity, density, or heat capacity.
	ErrInvalidConstruction = constError("invalid construction")

	// ErrInvalidSurface indicates a surface with a non-positive area or
	// an unknown surface type.
	ErrInvalidSurface = constError("invalid surface")

	// ErrEmptyProject indicates a project without buildings or a
	// building without zones.
	ErrEmptyProject = constError("project contains no buildings")
)
