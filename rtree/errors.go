package rtree

import "errors"

var (
	// ErrInvalidOrder signals an order too small to keep the
	// minimum occupancy invariant.
	ErrInvalidOrder = errors.New("rtree: invalid order")

	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("rtree: invalid configuration")

	// ErrDuplicateKey signals an insert of a value whose bound and identity
	// are already stored.
	ErrDuplicateKey = errors.New("rtree: duplicate key")

	// ErrNotFound signals a delete of a value that is not stored.
	ErrNotFound = errors.New("rtree: not found")

	// ErrInvalidBound signals a value whose bounding rectangle is empty or
	// not finite.
	ErrInvalidBound = errors.New("rtree: invalid bound")

	// ErrCorrupt is returned by [Tree.Check] when a structural invariant does
	// not hold.
	ErrCorrupt = errors.New("rtree: corrupt tree")
)

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
