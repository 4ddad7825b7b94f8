package building

import "fmt"

// Layer is one material layer of a construction, ordered outside to inside.
// All properties refer to one square meter of surface.
type Layer struct {
	// Thickness in m.
	Thickness float64 `yaml:"thickness"`

	// Conductivity is the thermal conductivity in W/(m·K).
	Conductivity float64 `yaml:"conductivity"`

	// Density in kg/m³.
	Density float64 `yaml:"density"`

	// HeatCapacity is the specific heat capacity in J/(kg·K).
	HeatCapacity float64 `yaml:"heat_capacity"`
}

// Resistance returns the conductive resistance of the layer in K/W for the
// given surface area in m².
func (l Layer) Resistance(area float64) float64 {
	return l.Thickness / (l.Conductivity * area)
}

// Capacitance returns the heat capacity of the layer in J/K for the given
// surface area in m².
func (l Layer) Capacitance(area float64) float64 {
	return l.Thickness * l.Density * l.HeatCapacity * area
}

// validate checks the layer for physically meaningful values.
func (l Layer) validate() error {
	switch {
	case l.Thickness <= 0:
		return fmt.Errorf("%w: layer thickness must be > 0, got %g", ErrInvalidConstruction, l.Thickness)
	case l.Conductivity <= 0:
		return fmt.Errorf("%w: layer conductivity must be > 0, got %g", ErrInvalidConstruction, l.Conductivity)
	case l.Density <= 0:
		return fmt.Errorf("%w: layer density must be > 0, got %g", ErrInvalidConstruction, l.Density)
	case l.HeatCapacity <= 0:
		return fmt.Errorf("%w: layer heat capacity must be > 0, got %g", ErrInvalidConstruction, l.HeatCapacity)
	}
	return nil
}

// Construction is an ordered multi-layer build-up (outside to inside) with
// its convective and radiative surface coefficients in W/(m²·K).
type Construction struct {
	Layers []Layer `yaml:"layers"`

	InnerConvection float64 `yaml:"inner_convection"`
	InnerRadiation  float64 `yaml:"inner_radiation"`
	OuterConvection float64 `yaml:"outer_convection"`
	OuterRadiation  float64 `yaml:"outer_radiation"`
}

// Validate checks that the construction has at least one layer and that all
// layers carry physically meaningful values.
func (c Construction) Validate() error {
	if len(c.Layers) == 0 {
		return fmt.Errorf("%w: construction has no layers", ErrInvalidConstruction)
	}
	for i, layer := range c.Layers {
		if err := layer.validate(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// ConductionResistance returns the total steady-state conductive resistance
// of the layer stack in K/W for the given area in m².
func (c Construction) ConductionResistance(area float64) float64 {
	var r float64
	for _, layer := range c.Layers {
		r += layer.Resistance(area)
	}
	return r
}

// TotalCapacitance returns the summed heat capacity of all layers in J/K
// for the given area in m².
func (c Construction) TotalCapacitance(area float64) float64 {
	var cap float64
	for _, layer := range c.Layers {
		cap += layer.Capacitance(area)
	}
	return cap
}

// UValue returns the overall heat transfer coefficient in W/(m²·K),
// including inner and outer surface films. Coefficients that are zero are
// skipped, which matters for ground-coupled surfaces without an outer film.
func (c Construction) UValue() float64 {
	var r float64
	for _, layer := range c.Layers {
		r += layer.Thickness / layer.Conductivity
	}
	if hi := c.InnerConvection + c.InnerRadiation; hi > 0 {
		r += 1 / hi
	}
	if ho := c.OuterConvection + c.OuterRadiation; ho > 0 {
		r += 1 / ho
	}
	if r <= 0 {
		return 0
	}
	return 1 / r
}
