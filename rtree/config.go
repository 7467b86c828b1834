package rtree

import "fmt"

const (
	// MinOrder is the smallest supported order. Below it a split could not
	// leave both halves with at least two entries.
	MinOrder = 3

	// maxExhaustiveOrder is the largest order [SplitExhaustive] accepts. A
	// redistribution pool holds at most Order+ceil(Order/2)-1 entries, and
	// the exhaustive search is exponential in the pool size.
	maxExhaustiveOrder = 12

	// exhaustivePoolLimit is the largest pool [SplitAuto] partitions
	// exhaustively before falling back to the quadratic heuristic.
	exhaustivePoolLimit = 12
)

// SplitStrategy selects how an overflowing node is partitioned into two, and
// how entries are redistributed between siblings on delete.
type SplitStrategy int

const (
	// SplitAuto partitions small pools exhaustively and larger ones with the
	// quadratic heuristic.
	SplitAuto SplitStrategy = iota

	// SplitExhaustive tries every admissible bipartition and keeps the one
	// with the smallest combined area.
	SplitExhaustive

	// SplitQuadratic uses Guttman's quadratic-cost split.
	SplitQuadratic
)

// String returns the name of the strategy.
func (s SplitStrategy) String() string {
	switch s {
	case SplitAuto:
		return "auto"
	case SplitExhaustive:
		return "exhaustive"
	case SplitQuadratic:
		return "quadratic"
	default:
		return fmt.Sprintf("SplitStrategy(%d)", int(s))
	}
}

// Config configures an R-tree.
type Config struct {
	// Order is the maximum number of entries per node (M). Every node except
	// the root holds at least ceil(M/2) entries.
	Order int

	// Split selects the partition heuristic. The zero value is [SplitAuto].
	Split SplitStrategy
}

func (cfg Config) validate() error {
	if cfg.Order < MinOrder {
		return fmt.Errorf("%w: order %d below %d", ErrInvalidOrder, cfg.Order, MinOrder)
	}

	switch cfg.Split {
	case SplitAuto, SplitQuadratic:
	case SplitExhaustive:
		if cfg.Order > maxExhaustiveOrder {
			return fmt.Errorf("%w: %s split supports order <= %d, got %d",
				ErrInvalidConfig, cfg.Split, maxExhaustiveOrder, cfg.Order)
		}
	default:
		return fmt.Errorf("%w: unknown split strategy %s", ErrInvalidConfig, cfg.Split)
	}

	return nil
}

// minFill is the minimum occupancy ceil(M/2) of a non-root node.
func (cfg Config) minFill() int {
	return (cfg.Order + 1) / 2
}
