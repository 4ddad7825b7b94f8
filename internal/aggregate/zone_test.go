package aggregate_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bldgsim/thermogen/internal/aggregate"
	"github.com/bldgsim/thermogen/internal/building"
)

// fullZone is a zone exercising every surface type.
func fullZone() *building.Zone {
	groundConstruction := wallConstruction()
	groundConstruction.OuterConvection = 0
	groundConstruction.OuterRadiation = 0

	window := building.Surface{
		Name:    "South Window",
		Type:    building.SurfaceWindow,
		Area:    3,
		Tilt:    90,
		Azimuth: 180,
		GValue:  0.65,
		Construction: building.Construction{
			Layers: []building.Layer{
				{Thickness: 0.024, Conductivity: 0.067, Density: 2500, HeatCapacity: 750},
			},
			InnerConvection: 2.7,
			InnerRadiation:  5.0,
			OuterConvection: 20.0,
			OuterRadiation:  5.0,
		},
	}

	partition := wall("Partition", 25, 90, 0)
	partition.Type = building.SurfaceInnerWall

	roof := wall("Roof", 20, 0, building.AzimuthHorizontal)
	roof.Type = building.SurfaceRooftop

	floor := building.Surface{
		Name:         "Slab",
		Type:         building.SurfaceGroundFloor,
		Area:         20,
		Tilt:         0,
		Azimuth:      building.AzimuthGround,
		Construction: groundConstruction,
	}

	return &building.Zone{
		Name:   "Zone",
		Volume: 60,
		Surfaces: []building.Surface{
			wall("North", 12, 90, 0),
			wall("South", 12, 90, 180),
			window,
			partition,
			roof,
			floor,
		},
	}
}

func TestForZoneBranchPresenceByOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		order        int
		wantInterior bool
		wantFloor    bool
		wantRoof     bool
	}{
		{order: 1},
		{order: 2, wantInterior: true},
		{order: 3, wantInterior: true, wantFloor: true},
		{order: 4, wantInterior: true, wantFloor: true, wantRoof: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("order %d", tt.order), func(t *testing.T) {
			t.Parallel()
			za, err := aggregate.ForZone(fullZone(), tt.order, 1, true)
			require.NoError(t, err)

			require.NotNil(t, za.Exterior)
			assert.Equal(t, tt.wantInterior, za.Interior != nil)
			assert.Equal(t, tt.wantFloor, za.Floor != nil)
			assert.Equal(t, tt.wantRoof, za.Roof != nil)
			assert.Nil(t, za.Windows)
			assert.NotNil(t, za.WindowInfo)
		})
	}
}

func TestForZoneFoldsBranchesIntoExterior(t *testing.T) {
	t.Parallel()

	low, err := aggregate.ForZone(fullZone(), 1, 1, true)
	require.NoError(t, err)
	high, err := aggregate.ForZone(fullZone(), 4, 1, true)
	require.NoError(t, err)

	// At order 1 the exterior branch absorbs interior mass, floor, and
	// roof; total zone capacitance is the same either way.
	lowCap := totalCapacitance(low.Exterior)
	highCap := totalCapacitance(high.Exterior) + totalCapacitance(high.Interior) +
		totalCapacitance(high.Floor) + totalCapacitance(high.Roof)
	assert.InDelta(t, highCap, lowCap, 1e-6)
}

func totalCapacitance(agg *aggregate.SurfaceAggregate) float64 {
	var c float64
	for _, el := range agg.Elements {
		c += el.Capacitance
	}
	return c
}

func TestForZoneSeparateWindows(t *testing.T) {
	t.Parallel()

	za, err := aggregate.ForZone(fullZone(), 2, 1, false)
	require.NoError(t, err)

	require.NotNil(t, za.Windows)
	assert.Same(t, za.WindowInfo, za.Windows)
	assert.InDelta(t, 0.65, za.Windows.GValue, 1e-12)
	assert.InDelta(t, 3.0, za.Windows.Area, 1e-12)
}

func TestForZoneMergedWindowsLowerExteriorResistance(t *testing.T) {
	t.Parallel()

	merged, err := aggregate.ForZone(fullZone(), 2, 1, true)
	require.NoError(t, err)
	separate, err := aggregate.ForZone(fullZone(), 2, 1, false)
	require.NoError(t, err)

	// Folding the window chain in parallel can only lower the exterior
	// element resistance. Exterior area stays wall-only either way.
	assert.Less(t,
		merged.Exterior.Elements[0].Resistance,
		separate.Exterior.Elements[0].Resistance)
	assert.InDelta(t, separate.Exterior.Area, merged.Exterior.Area, 1e-12)
}

func TestForZoneWeightFactors(t *testing.T) {
	t.Parallel()

	za, err := aggregate.ForZone(fullZone(), 3, 1, true)
	require.NoError(t, err)

	assert.Greater(t, za.GroundWeight, 0.0)
	assert.Less(t, za.GroundWeight, 1.0)

	var solarSum float64
	for _, agg := range []*aggregate.SurfaceAggregate{za.Exterior, za.Roof, za.WindowInfo} {
		if agg == nil {
			continue
		}
		require.Len(t, agg.SolarWeights, len(agg.Orientations))
		require.Len(t, agg.SkyWeights, len(agg.Orientations))
		for i := range agg.Orientations {
			solarSum += agg.SolarWeights[i]
			assert.GreaterOrEqual(t, agg.SolarWeights[i], agg.SkyWeights[i])
		}
	}

	// Solar weights plus the ground share cover the total exactly.
	assert.InDelta(t, 1.0, solarSum+za.GroundWeight, 1e-9)
}

func TestForZoneSkyWeightByTilt(t *testing.T) {
	t.Parallel()

	za, err := aggregate.ForZone(fullZone(), 2, 1, true)
	require.NoError(t, err)

	// Order 2 folds the roof into the exterior branch; its horizontal
	// orientation sees the full sky while vertical walls see half.
	for i, o := range za.Exterior.Orientations {
		switch {
		case o.Azimuth == building.AzimuthGround:
			assert.Zero(t, za.Exterior.SolarWeights[i])
			assert.Zero(t, za.Exterior.SkyWeights[i])
		case o.Tilt == 0:
			assert.InDelta(t, za.Exterior.SolarWeights[i], za.Exterior.SkyWeights[i], 1e-12)
		case o.Tilt == 90:
			assert.InDelta(t, za.Exterior.SolarWeights[i]/2, za.Exterior.SkyWeights[i], 1e-12)
		}
	}
}

func TestForZoneInvalidSurface(t *testing.T) {
	t.Parallel()

	z := fullZone()
	z.Surfaces[0].Construction.Layers = nil

	_, err := aggregate.ForZone(z, 2, 1, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, building.ErrInvalidConstruction)
}
