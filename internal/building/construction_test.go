package building_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bldgsim/thermogen/internal/building"
)

func TestLayerResistanceAndCapacitance(t *testing.T) {
	t.Parallel()

	l := building.Layer{Thickness: 0.2, Conductivity: 1.4, Density: 2200, HeatCapacity: 1000}

	// R = d / (lambda * A), C = d * rho * c * A
	assert.InDelta(t, 0.2/(1.4*10), l.Resistance(10), 1e-12)
	assert.InDelta(t, 0.2*2200*1000*10, l.Capacitance(10), 1e-6)
}

func TestConstructionTotals(t *testing.T) {
	t.Parallel()

	c := testConstruction()
	area := 12.5

	var wantR, wantC float64
	for _, l := range c.Layers {
		wantR += l.Resistance(area)
		wantC += l.Capacitance(area)
	}
	assert.InDelta(t, wantR, c.ConductionResistance(area), 1e-12)
	assert.InDelta(t, wantC, c.TotalCapacitance(area), 1e-6)
}

func TestUValue(t *testing.T) {
	t.Parallel()

	t.Run("includes surface films", func(t *testing.T) {
		t.Parallel()
		c := testConstruction()
		r := 0.2/1.4 + 0.1/0.04 + 1/(2.7+5.0) + 1/(20.0+5.0)
		assert.InDelta(t, 1/r, c.UValue(), 1e-12)
	})

	t.Run("zero outer film skipped for ground surfaces", func(t *testing.T) {
		t.Parallel()
		c := testConstruction()
		c.OuterConvection = 0
		c.OuterRadiation = 0
		r := 0.2/1.4 + 0.1/0.04 + 1/(2.7+5.0)
		assert.InDelta(t, 1/r, c.UValue(), 1e-12)
	})
}

func TestConstructionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*building.Construction)
	}{
		{"no layers", func(c *building.Construction) { c.Layers = nil }},
		{"zero thickness", func(c *building.Construction) { c.Layers[0].Thickness = 0 }},
		{"negative conductivity", func(c *building.Construction) { c.Layers[1].Conductivity = -1 }},
		{"zero density", func(c *building.Construction) { c.Layers[0].Density = 0 }},
		{"zero heat capacity", func(c *building.Construction) { c.Layers[1].HeatCapacity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := testConstruction()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), building.ErrInvalidConstruction)
		})
	}

	t.Run("valid construction passes", func(t *testing.T) {
		t.Parallel()
		c := testConstruction()
		require.NoError(t, c.Validate())
	})
}
