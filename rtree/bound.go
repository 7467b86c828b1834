package rtree

import (
	"math"

	"github.com/paulmach/orb"
)

// emptyBound is the bound of a node without entries. It is the same
// representation orb uses for the bound of an empty geometry.
var emptyBound = orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{-1, -1}}

// area returns the area of the rectangle, zero for an empty one.
func area(b orb.Bound) float64 {
	if b.IsEmpty() {
		return 0
	}

	return (b.Max[0] - b.Min[0]) * (b.Max[1] - b.Min[1])
}

// enlargement returns how much area the existing rectangle has to grow by to
// also cover the incoming one. Areas beyond the float64 range make the
// difference undefined; it is reported as +Inf then.
func enlargement(existing, incoming orb.Bound) float64 {
	growth := area(existing.Union(incoming)) - area(existing)
	if math.IsNaN(growth) {
		return math.Inf(1)
	}

	return growth
}

// unionOf returns the smallest rectangle covering all entries.
func unionOf[V Item[V]](entries []Entry[V]) orb.Bound {
	if len(entries) == 0 {
		return emptyBound
	}

	b := entries[0].Bound

	for _, e := range entries[1:] {
		b = b.Union(e.Bound)
	}

	return b
}

// validBound reports whether b can be stored: non-empty with finite
// coordinates.
func validBound(b orb.Bound) bool {
	if b.IsEmpty() {
		return false
	}

	for _, c := range [...]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}

	return true
}
