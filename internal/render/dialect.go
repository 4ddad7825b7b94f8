// Package render binds resolved zone model specs and their aggregates
// into Modelica source text for the selected target library.
package render

import (
	"math"
	"strconv"
	"strings"
)

// DegToRad converts degrees to radians for Modelica angle parameters.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Bool renders a Go bool as a Modelica boolean literal.
func Bool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// ClampMin1 returns n, but never less than 1. The target format rejects
// zero-length arrays, so every orientation-indexed array is dimensioned
// with at least one entry even when no physical orientation exists.
func ClampMin1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Num renders a float with full precision and no silent rounding. The
// shortest representation that round-trips is used, so 0.04 stays "0.04"
// and 1/3 keeps all digits.
func Num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Array renders a Modelica array literal from values, padding with a
// single zero entry when values is empty.
func Array(values []float64) string {
	if len(values) == 0 {
		values = []float64{0}
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Num(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
