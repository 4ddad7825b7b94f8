// Package building holds the project/building/zone object graph that feeds
// the parameterization and export pipeline, together with its YAML loader.
package building

import (
	"fmt"
	"regexp"

	"github.com/oklog/ulid/v2"
)

// DefaultWeatherFile is used when neither the project nor a building sets
// a weather file.
const DefaultWeatherFile = "DEU_BW_Mannheim_107290_TRY2010_12_Jahr_BBSR.mos"

// SolverSettings carries the simulation setup substituted into exported
// models. Times are seconds.
type SolverSettings struct {
	StartTime       float64 `yaml:"start_time"`
	StopTime        float64 `yaml:"stop_time"`
	Interval        float64 `yaml:"interval"`
	Solver          string  `yaml:"solver"`
	EquidistantOut  bool    `yaml:"equidistant_output"`
	ResultsAtEvents bool    `yaml:"results_at_events"`
}

// DefaultSolverSettings returns the solver setup used when a project does
// not configure one: one simulated year at hourly output with Cvode.
func DefaultSolverSettings() SolverSettings {
	return SolverSettings{
		StartTime:       0,
		StopTime:        31536000,
		Interval:        3600,
		Solver:          "Cvode",
		EquidistantOut:  true,
		ResultsAtEvents: false,
	}
}

// CalcOverrides are the configuration knobs that can be overridden per
// building or per zone. Nil fields inherit from the level above.
type CalcOverrides struct {
	Library        *string `yaml:"library,omitempty"`
	LibraryVersion *string `yaml:"library_version,omitempty"`
	Order          *int    `yaml:"order,omitempty"`
	ChainOrder     *int    `yaml:"chain_order,omitempty"`
	MergeWindows   *bool   `yaml:"merge_windows,omitempty"`
}

// Zone is one thermal zone: a named collection of surfaces plus optional
// configuration overrides.
type Zone struct {
	Name       string        `yaml:"name"`
	InternalID string        `yaml:"-"`
	Volume     float64       `yaml:"volume,omitempty"`
	Surfaces   []Surface     `yaml:"surfaces"`
	Overrides  CalcOverrides `yaml:"calc,omitempty"`
}

// SurfacesOfType returns the zone's surfaces of one type in declaration
// order.
func (z *Zone) SurfacesOfType(t SurfaceType) []Surface {
	var out []Surface
	for _, s := range z.Surfaces {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

// Building owns zones and optional configuration overrides.
type Building struct {
	Name            string        `yaml:"name"`
	InternalID      string        `yaml:"-"`
	YearOfBuild     int           `yaml:"year_of_construction,omitempty"`
	WeatherFilePath string        `yaml:"weather_file,omitempty"`
	Zones           []*Zone       `yaml:"zones"`
	Overrides       CalcOverrides `yaml:"calc,omitempty"`
}

// Project is the root of the object graph. Its configuration is inherited
// by buildings and zones unless overridden there.
type Project struct {
	Name              string            `yaml:"name"`
	WeatherFilePath   string            `yaml:"weather_file,omitempty"`
	GroundTemperature float64           `yaml:"ground_temperature"`
	Solver            SolverSettings    `yaml:"solver"`
	Library           string            `yaml:"library,omitempty"`
	LibraryVersion    string            `yaml:"library_version,omitempty"`
	Order             int               `yaml:"order,omitempty"`
	ChainOrder        int               `yaml:"chain_order,omitempty"`
	MergeWindows      *bool             `yaml:"merge_windows,omitempty"`
	ExportVars        map[string]string `yaml:"export_vars,omitempty"`
	Buildings         []*Building       `yaml:"buildings"`
}

// nonAlnum matches every character that is not allowed in model and file
// identifiers of the target format.
var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// SanitizeName strips all non-alphanumeric characters from a name and
// prefixes "P" when the result would start with a digit. Empty input maps
// to "Unnamed".
func SanitizeName(name string) string {
	clean := nonAlnum.ReplaceAllString(name, "")
	if clean == "" {
		return "Unnamed"
	}
	if clean[0] >= '0' && clean[0] <= '9' {
		clean = "P" + clean
	}
	return clean
}

// Normalize assigns internal IDs where missing and fills the default
// weather file and solver settings. Names stay as written in the input;
// sanitization happens where model and file identifiers are emitted. It
// is called once by the loader; constructing a Project by hand requires
// calling it explicitly.
func (p *Project) Normalize() {
	if p.WeatherFilePath == "" {
		p.WeatherFilePath = DefaultWeatherFile
	}
	if p.Solver == (SolverSettings{}) {
		p.Solver = DefaultSolverSettings()
	}
	for _, b := range p.Buildings {
		if b.InternalID == "" {
			b.InternalID = ulid.Make().String()
		}
		for _, z := range b.Zones {
			if z.InternalID == "" {
				z.InternalID = ulid.Make().String()
			}
		}
	}
}

// Validate checks the whole graph: at least one building, at least one zone
// per building, and valid surfaces throughout.
func (p *Project) Validate() error {
	if len(p.Buildings) == 0 {
		return ErrEmptyProject
	}
	for _, b := range p.Buildings {
		if len(b.Zones) == 0 {
			return fmt.Errorf("%w: building %q has no zones", ErrEmptyProject, b.Name)
		}
		for _, z := range b.Zones {
			for _, s := range z.Surfaces {
				if err := s.Validate(); err != nil {
					return fmt.Errorf("building %q zone %q: %w", b.Name, z.Name, err)
				}
			}
		}
	}
	return nil
}
