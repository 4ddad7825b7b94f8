package reduce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bldgsim/thermogen/internal/building"
	"github.com/bldgsim/thermogen/internal/reduce"
)

// threeLayerWall is concrete, insulation, plaster from outside to inside.
func threeLayerWall() building.Construction {
	return building.Construction{
		Layers: []building.Layer{
			{Thickness: 0.2, Conductivity: 1.4, Density: 2200, HeatCapacity: 1000},
			{Thickness: 0.1, Conductivity: 0.04, Density: 30, HeatCapacity: 1030},
			{Thickness: 0.015, Conductivity: 0.7, Density: 1600, HeatCapacity: 1000},
		},
		InnerConvection: 2.7,
		InnerRadiation:  5.0,
		OuterConvection: 20.0,
		OuterRadiation:  5.0,
	}
}

func TestReducePreservesTotals(t *testing.T) {
	t.Parallel()

	c := threeLayerWall()
	area := 10.0
	wantR := c.ConductionResistance(area)
	wantC := c.TotalCapacitance(area)

	for order := 1; order <= reduce.MaxOrder; order++ {
		res, err := reduce.Reduce(c, area, order)
		require.NoError(t, err)

		assert.InDelta(t, wantR, res.TotalResistance(), 1e-9, "order %d total resistance", order)
		assert.InDelta(t, wantC, res.TotalCapacitance(), 1e-6, "order %d total capacitance", order)
	}
}

func TestReduceMergesLeastSignificantLayer(t *testing.T) {
	t.Parallel()

	c := threeLayerWall()
	area := 10.0
	res, err := reduce.Reduce(c, area, 2)
	require.NoError(t, err)
	require.Len(t, res.Elements, 2)

	// The insulation layer has by far the smallest capacitance and its
	// lighter neighbor is the plaster, so the massive concrete layer
	// stays alone in the first group.
	assert.InDelta(t, c.Layers[0].Capacitance(area), res.Elements[0].Capacitance, 1e-6)
	assert.InDelta(t,
		c.Layers[1].Capacitance(area)+c.Layers[2].Capacitance(area),
		res.Elements[1].Capacitance, 1e-6)

	// The remaining resistance is the inner half of the merged group.
	mergedR := c.Layers[1].Resistance(area) + c.Layers[2].Resistance(area)
	assert.InDelta(t, mergedR/2, res.RemainingResistance, 1e-12)
	// The first element ends at the concrete layer's thermal center.
	assert.InDelta(t, c.Layers[0].Resistance(area)/2, res.Elements[0].Resistance, 1e-12)
}

func TestReduceOrderCoversAllLayers(t *testing.T) {
	t.Parallel()

	c := threeLayerWall()
	area := 8.0
	res, err := reduce.Reduce(c, area, 3)
	require.NoError(t, err)

	// One element per layer, untouched values, nothing left over.
	require.Len(t, res.Elements, 3)
	assert.Zero(t, res.RemainingResistance)
	for i, layer := range c.Layers {
		assert.InDelta(t, layer.Resistance(area), res.Elements[i].Resistance, 1e-12)
		assert.InDelta(t, layer.Capacitance(area), res.Elements[i].Capacitance, 1e-6)
	}
}

func TestReduceSingleLayer(t *testing.T) {
	t.Parallel()

	c := building.Construction{
		Layers: []building.Layer{
			{Thickness: 0.3, Conductivity: 2.3, Density: 2300, HeatCapacity: 1000},
		},
	}
	res, err := reduce.Reduce(c, 5, 2)
	require.NoError(t, err)

	require.Len(t, res.Elements, 1)
	assert.Zero(t, res.RemainingResistance)
	assert.InDelta(t, c.Layers[0].Resistance(5), res.Elements[0].Resistance, 1e-12)
}

func TestReduceInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		c     building.Construction
		area  float64
		order int
	}{
		{"order zero", threeLayerWall(), 10, 0},
		{"order above maximum", threeLayerWall(), 10, reduce.MaxOrder + 1},
		{"zero area", threeLayerWall(), 0, 1},
		{"negative area", threeLayerWall(), -2, 1},
		{"empty construction", building.Construction{}, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := reduce.Reduce(tt.c, tt.area, tt.order)
			assert.ErrorIs(t, err, building.ErrInvalidConstruction)
		})
	}
}

func TestReduceDeterministic(t *testing.T) {
	t.Parallel()

	c := threeLayerWall()
	first, err := reduce.Reduce(c, 10, 2)
	require.NoError(t, err)
	second, err := reduce.Reduce(c, 10, 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
