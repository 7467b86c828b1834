package rtree

import "github.com/paulmach/orb"

const (
	// MaxExhaustiveOrder re-exports [maxExhaustiveOrder] for testing purposes.
	MaxExhaustiveOrder = maxExhaustiveOrder

	// ExhaustivePoolLimit re-exports [exhaustivePoolLimit].
	ExhaustivePoolLimit = exhaustivePoolLimit
)

// Area reexports the internal [area] function.
func Area(b orb.Bound) float64 {
	return area(b)
}

// Enlargement reexports the internal [enlargement] function.
func Enlargement(existing, incoming orb.Bound) float64 {
	return enlargement(existing, incoming)
}

// ExhaustivePartition reexports the internal [exhaustivePartition] function.
func ExhaustivePartition[V Item[V]](pool []Entry[V], minFill int) ([]Entry[V], []Entry[V]) {
	return exhaustivePartition(pool, minFill)
}

// QuadraticPartition reexports the internal [quadraticPartition] function.
func QuadraticPartition[V Item[V]](pool []Entry[V], minFill int) ([]Entry[V], []Entry[V]) {
	return quadraticPartition(pool, minFill)
}

// Parent exposes the back-edge of a node.
func (n *Node[V]) Parent() *Node[V] {
	return n.parent
}
