package building_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bldgsim/thermogen/internal/building"
)

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "spaces and punctuation stripped",
			input: "Living Room 1!",
			want:  "LivingRoom1",
		},
		{
			name:  "leading digit prefixed",
			input: "1stFloor",
			want:  "P1stFloor",
		},
		{
			name:  "already clean name unchanged",
			input: "MainWing",
			want:  "MainWing",
		},
		{
			name:  "umlauts and dashes removed",
			input: "Büro-West",
			want:  "BroWest",
		},
		{
			name:  "empty becomes Unnamed",
			input: "",
			want:  "Unnamed",
		},
		{
			name:  "only punctuation becomes Unnamed",
			input: "!!!",
			want:  "Unnamed",
		},
		{
			name:  "digit after stripping still prefixed",
			input: " 2nd zone",
			want:  "P2ndzone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, building.SanitizeName(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	p := &building.Project{
		Name: "Demo Project",
		Buildings: []*building.Building{
			{
				Name:  "Main Building!",
				Zones: []*building.Zone{{Name: "Living Room 1"}},
			},
		},
	}
	p.Normalize()

	// Names keep their original spelling; sanitization is applied only
	// where model and file identifiers are emitted.
	assert.Equal(t, "Demo Project", p.Name)
	assert.Equal(t, building.DefaultWeatherFile, p.WeatherFilePath)
	assert.Equal(t, building.DefaultSolverSettings(), p.Solver)

	b := p.Buildings[0]
	assert.Equal(t, "Main Building!", b.Name)
	assert.NotEmpty(t, b.InternalID)

	z := b.Zones[0]
	assert.Equal(t, "Living Room 1", z.Name)
	assert.NotEmpty(t, z.InternalID)
	assert.NotEqual(t, b.InternalID, z.InternalID)
}

func TestNormalizeKeepsExistingValues(t *testing.T) {
	t.Parallel()

	p := &building.Project{
		Name:            "P",
		WeatherFilePath: "custom.mos",
		Solver:          building.SolverSettings{StopTime: 60, Solver: "Dassl"},
		Buildings: []*building.Building{
			{Name: "B", InternalID: "fixed", Zones: []*building.Zone{{Name: "Z"}}},
		},
	}
	p.Normalize()

	assert.Equal(t, "custom.mos", p.WeatherFilePath)
	assert.Equal(t, "Dassl", p.Solver.Solver)
	assert.Equal(t, "fixed", p.Buildings[0].InternalID)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *building.Project {
		return &building.Project{
			Name: "P",
			Buildings: []*building.Building{
				{
					Name: "B",
					Zones: []*building.Zone{
						{
							Name: "Z",
							Surfaces: []building.Surface{
								{
									Name:         "Wall",
									Type:         building.SurfaceOuterWall,
									Area:         10,
									Tilt:         90,
									Azimuth:      180,
									Construction: testConstruction(),
								},
							},
						},
					},
				},
			},
		}
	}

	t.Run("valid project passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, valid().Validate())
	})

	t.Run("no buildings", func(t *testing.T) {
		t.Parallel()
		p := &building.Project{Name: "P"}
		assert.ErrorIs(t, p.Validate(), building.ErrEmptyProject)
	})

	t.Run("building without zones", func(t *testing.T) {
		t.Parallel()
		p := valid()
		p.Buildings[0].Zones = nil
		assert.ErrorIs(t, p.Validate(), building.ErrEmptyProject)
	})

	t.Run("unknown surface type", func(t *testing.T) {
		t.Parallel()
		p := valid()
		p.Buildings[0].Zones[0].Surfaces[0].Type = "curtain_wall"
		assert.ErrorIs(t, p.Validate(), building.ErrInvalidSurface)
	})

	t.Run("negative area", func(t *testing.T) {
		t.Parallel()
		p := valid()
		p.Buildings[0].Zones[0].Surfaces[0].Area = -1
		assert.ErrorIs(t, p.Validate(), building.ErrInvalidSurface)
	})

	t.Run("zero area", func(t *testing.T) {
		t.Parallel()
		p := valid()
		p.Buildings[0].Zones[0].Surfaces[0].Area = 0
		assert.ErrorIs(t, p.Validate(), building.ErrInvalidSurface)
	})

	t.Run("bad layer data", func(t *testing.T) {
		t.Parallel()
		p := valid()
		p.Buildings[0].Zones[0].Surfaces[0].Construction.Layers[0].Conductivity = 0
		assert.ErrorIs(t, p.Validate(), building.ErrInvalidConstruction)
	})
}

func TestSurfacesOfType(t *testing.T) {
	t.Parallel()

	z := &building.Zone{
		Surfaces: []building.Surface{
			{Name: "N", Type: building.SurfaceOuterWall},
			{Name: "Roof", Type: building.SurfaceRooftop},
			{Name: "S", Type: building.SurfaceOuterWall},
			{Name: "Win", Type: building.SurfaceWindow},
		},
	}

	walls := z.SurfacesOfType(building.SurfaceOuterWall)
	require.Len(t, walls, 2)
	assert.Equal(t, "N", walls[0].Name)
	assert.Equal(t, "S", walls[1].Name)

	assert.Empty(t, z.SurfacesOfType(building.SurfaceGroundFloor))
}

// testConstruction returns a two-layer wall build-up with realistic
// material values.
func testConstruction() building.Construction {
	return building.Construction{
		Layers: []building.Layer{
			{Thickness: 0.2, Conductivity: 1.4, Density: 2200, HeatCapacity: 1000},
			{Thickness: 0.1, Conductivity: 0.04, Density: 30, HeatCapacity: 1030},
		},
		InnerConvection: 2.7,
		InnerRadiation:  5.0,
		OuterConvection: 20.0,
		OuterRadiation:  5.0,
	}
}
