package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
	"gopkg.in/yaml.v3"

	"github.com/bldgsim/thermogen/internal/aggregate"
	"github.com/bldgsim/thermogen/internal/building"
)

// DefaultTolerance is the relative/absolute tolerance for reference
// comparisons when the caller does not configure one.
const DefaultTolerance = 1e-6

// Mismatch is one reference parameter that disagrees with the computed
// value beyond the tolerance.
type Mismatch struct {
	Parameter string
	Computed  float64
	Reference float64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: computed %g, reference %g", m.Parameter, m.Computed, m.Reference)
}

// ParameterSet flattens a zone's aggregates into the named scalar values
// a reference file can assert on.
func ParameterSet(za *aggregate.ZoneAggregates) map[string]float64 {
	params := make(map[string]float64)
	addBranch := func(prefix string, agg *aggregate.SurfaceAggregate) {
		if agg == nil {
			return
		}
		params["A"+prefix] = agg.Area
		params["U"+prefix] = agg.UValue
		params["R"+prefix+"Rem"] = agg.RemainingResistance
		for i, el := range agg.Elements {
			params[fmt.Sprintf("R%s[%d]", prefix, i+1)] = el.Resistance
			params[fmt.Sprintf("C%s[%d]", prefix, i+1)] = el.Capacitance
		}
	}
	addBranch("Ext", za.Exterior)
	addBranch("Int", za.Interior)
	addBranch("Floor", za.Floor)
	addBranch("Roof", za.Roof)
	addBranch("Win", za.Windows)
	params["wfGro"] = za.GroundWeight
	return params
}

// loadReference reads the reference parameter file for one zone from dir,
// named "<Building>_<Zone>.yaml" after sanitized names. A missing file is
// not an error: the zone is simply not checked.
func loadReference(dir, buildingName, zoneName string) (map[string]float64, error) {
	name := building.SanitizeName(buildingName) + "_" + building.SanitizeName(zoneName) + ".yaml"
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading reference file %s: %w", path, err)
	}

	var ref map[string]float64
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("parsing reference file %s: %w", path, err)
	}
	return ref, nil
}

// compareParameters checks every reference value against the computed
// parameter set within tol (absolute or relative, whichever is looser).
// Reference keys without a computed counterpart are reported as
// mismatches against zero: a parameter the reference expects but the
// export never produced must not pass silently.
func compareParameters(computed, reference map[string]float64, tol float64) []Mismatch {
	keys := make([]string, 0, len(reference))
	for k := range reference {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var mismatches []Mismatch
	for _, key := range keys {
		want := reference[key]
		got, ok := computed[key]
		if !ok || !scalar.EqualWithinAbsOrRel(got, want, tol, tol) {
			mismatches = append(mismatches, Mismatch{
				Parameter: key,
				Computed:  got,
				Reference: want,
			})
		}
	}
	return mismatches
}
