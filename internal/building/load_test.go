package building_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bldgsim/thermogen/internal/building"
)

const sampleProjectYAML = `
name: Demo Project
ground_temperature: 286.15
library: AixLib
order: 2
buildings:
  - name: Main Building
    year_of_construction: 1985
    zones:
      - name: Living Room 1
        volume: 52.5
        surfaces:
          - name: South Wall
            type: outer_wall
            area: 12.0
            tilt: 90
            azimuth: 180
            construction:
              inner_convection: 2.7
              inner_radiation: 5.0
              outer_convection: 20.0
              outer_radiation: 5.0
              layers:
                - thickness: 0.2
                  conductivity: 1.4
                  density: 2200
                  heat_capacity: 1000
          - name: South Window
            type: window
            area: 3.0
            tilt: 90
            azimuth: 180
            g_value: 0.65
            construction:
              inner_convection: 2.7
              inner_radiation: 5.0
              outer_convection: 20.0
              outer_radiation: 5.0
              layers:
                - thickness: 0.024
                  conductivity: 0.067
                  density: 2500
                  heat_capacity: 750
`

func TestParseProject(t *testing.T) {
	t.Parallel()

	p, err := building.ParseProject([]byte(sampleProjectYAML))
	require.NoError(t, err)

	assert.Equal(t, "Demo Project", p.Name)
	assert.Equal(t, "AixLib", p.Library)
	assert.Equal(t, 2, p.Order)
	assert.InDelta(t, 286.15, p.GroundTemperature, 1e-9)

	require.Len(t, p.Buildings, 1)
	b := p.Buildings[0]
	assert.Equal(t, "Main Building", b.Name)
	assert.Equal(t, 1985, b.YearOfBuild)

	require.Len(t, b.Zones, 1)
	z := b.Zones[0]
	assert.Equal(t, "Living Room 1", z.Name)
	assert.NotEmpty(t, z.InternalID)
	require.Len(t, z.Surfaces, 2)
	assert.Equal(t, building.SurfaceWindow, z.Surfaces[1].Type)
	assert.InDelta(t, 0.65, z.Surfaces[1].GValue, 1e-9)
}

func TestParseProjectRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := building.ParseProject([]byte("name: P\nbuldings: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing project YAML")
}

func TestParseProjectRejectsInvalidData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "empty project",
			yaml:    "name: P\n",
			wantErr: building.ErrEmptyProject,
		},
		{
			name:    "building without zones",
			yaml:    "name: P\nbuildings:\n  - name: B\n",
			wantErr: building.ErrEmptyProject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := building.ParseProject([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadProject(t *testing.T) {
	t.Parallel()

	t.Run("loads file from disk", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "project.yaml")
		require.NoError(t, os.WriteFile(path, []byte(sampleProjectYAML), 0600))

		p, err := building.LoadProject(path)
		require.NoError(t, err)
		assert.Equal(t, "Demo Project", p.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := building.LoadProject(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
