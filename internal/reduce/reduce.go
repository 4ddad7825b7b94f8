// Package reduce turns multi-layer constructions into N-element equivalent
// RC chains for reduced-order thermal models.
//
// A construction is modeled as a series chain of per-layer conductive
// resistances with the layer heat capacity lumped at the layer's thermal
// center. Reduction merges adjacent layers until the requested number of
// capacitive nodes remains. The merge is exact network algebra: total
// resistance and total capacitance are preserved, no iterative fitting.
package reduce

import (
	"fmt"

	"github.com/bldgsim/thermogen/internal/building"
)

// MaxOrder bounds the number of explicit RC pairs a reduction can return.
const MaxOrder = 3

// Element is one RC pair of a reduced chain: the series resistance from
// the previous capacitive node (or the outer surface) to this node, and
// the capacitance lumped at the node.
type Element struct {
	// Resistance in K/W.
	Resistance float64

	// Capacitance in J/K.
	Capacitance float64
}

// Result is a reduced construction: the explicit RC chain, outside to
// inside, plus the resistance between the innermost node and the inner
// surface that is not captured by an explicit element.
type Result struct {
	Elements []Element

	// RemainingResistance in K/W. Zero when the requested order covers
	// every layer.
	RemainingResistance float64
}

// TotalResistance returns the series sum of all element resistances plus
// the remaining resistance.
func (r Result) TotalResistance() float64 {
	total := r.RemainingResistance
	for _, e := range r.Elements {
		total += e.Resistance
	}
	return total
}

// TotalCapacitance returns the summed capacitance of all elements.
func (r Result) TotalCapacitance() float64 {
	var total float64
	for _, e := range r.Elements {
		total += e.Capacitance
	}
	return total
}

// group is a contiguous run of layers treated as one capacitive node
// during reduction.
type group struct {
	resistance  float64
	capacitance float64
}

// Reduce collapses the construction applied to the given area into at most
// order capacitive nodes.
//
// When order >= the layer count, the result has one element per layer and
// zero remaining resistance. Otherwise adjacent layers are merged, least
// thermally significant (smallest capacitance) first, until exactly order
// groups remain; each element's resistance then spans from the previous
// node to the group's thermal center, and the inner half of the innermost
// group becomes the remaining resistance.
func Reduce(c building.Construction, area float64, order int) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}
	if order < 1 || order > MaxOrder {
		return Result{}, fmt.Errorf("%w: reduction order must be in [1,%d], got %d",
			building.ErrInvalidConstruction, MaxOrder, order)
	}
	if area <= 0 {
		return Result{}, fmt.Errorf("%w: area must be > 0, got %g",
			building.ErrInvalidConstruction, area)
	}

	groups := make([]group, len(c.Layers))
	for i, layer := range c.Layers {
		groups[i] = group{
			resistance:  layer.Resistance(area),
			capacitance: layer.Capacitance(area),
		}
	}

	if order >= len(groups) {
		elements := make([]Element, len(groups))
		for i, g := range groups {
			elements[i] = Element{Resistance: g.resistance, Capacitance: g.capacitance}
		}
		return Result{Elements: elements}, nil
	}

	for len(groups) > order {
		groups = mergeLeastSignificant(groups)
	}

	// Node m sits at the thermal center of group m. The chain resistance
	// of element m covers the inner half of group m-1 plus the outer half
	// of group m; the inner half of the last group is left as remaining
	// resistance. The halves telescope, so totals are preserved exactly.
	elements := make([]Element, order)
	for i, g := range groups {
		r := g.resistance / 2
		if i > 0 {
			r += groups[i-1].resistance / 2
		}
		elements[i] = Element{Resistance: r, Capacitance: g.capacitance}
	}

	return Result{
		Elements:            elements,
		RemainingResistance: groups[order-1].resistance / 2,
	}, nil
}

// mergeLeastSignificant merges the group with the smallest capacitance
// into its thermally lighter neighbor. Ties resolve to the lower index,
// keeping the reduction deterministic.
func mergeLeastSignificant(groups []group) []group {
	smallest := 0
	for i, g := range groups {
		if g.capacitance < groups[smallest].capacitance {
			smallest = i
		}
	}

	neighbor := pickNeighbor(groups, smallest)
	lo, hi := neighbor, smallest
	if lo > hi {
		lo, hi = hi, lo
	}

	groups[lo] = group{
		resistance:  groups[lo].resistance + groups[hi].resistance,
		capacitance: groups[lo].capacitance + groups[hi].capacitance,
	}
	return append(groups[:hi], groups[hi+1:]...)
}

// pickNeighbor selects the adjacent group to merge with: the one with the
// smaller capacitance, or the only neighbor at the chain ends.
func pickNeighbor(groups []group, i int) int {
	switch {
	case i == 0:
		return 1
	case i == len(groups)-1:
		return i - 1
	case groups[i-1].capacitance <= groups[i+1].capacitance:
		return i - 1
	default:
		return i + 1
	}
}
