package rtree

import (
	"math"
	"math/bits"
	"slices"

	"github.com/paulmach/orb"
)

// split partitions the order+1 entries of an overflowing node. The first
// group stays in n, the second moves to the returned sibling.
func (t *Tree[V]) split(n *Node[V]) *Node[V] {
	assert(n.count == t.cfg.Order+1, "rtree: split of a node that does not overflow")

	left, right := t.partition(slices.Clone(n.active()), t.cfg.minFill())

	sibling := t.newNode(n.leaf)
	n.reset(left)
	sibling.reset(right)

	tracer().Debugf("rtree: split node (leaf=%t) into %d + %d entries", n.leaf, len(left), len(right))

	return sibling
}

// partition divides pool into two groups of at least minFill entries each,
// aiming for the smallest combined area of the two group rectangles.
func (t *Tree[V]) partition(pool []Entry[V], minFill int) ([]Entry[V], []Entry[V]) {
	assert(minFill >= 1 && len(pool) >= 2*minFill, "rtree: pool too small to partition")

	switch {
	case t.cfg.Split == SplitQuadratic:
		return quadraticPartition(pool, minFill)
	case t.cfg.Split == SplitAuto && len(pool) > exhaustivePoolLimit:
		return quadraticPartition(pool, minFill)
	default:
		return exhaustivePartition(pool, minFill)
	}
}

// exhaustivePartition tries every bipartition of pool. Bit i of a mask puts
// pool[i] into the second group. The highest bit is never set, so each
// partition is visited once rather than once per mirror image.
func exhaustivePartition[V Item[V]](pool []Entry[V], minFill int) ([]Entry[V], []Entry[V]) {
	n := len(pool)

	var (
		best     uint64
		bestArea float64
		found    bool
	)

	for mask := uint64(1); mask < 1<<(n-1); mask++ {
		ones := bits.OnesCount64(mask)
		if ones < minFill || n-ones < minFill {
			continue
		}

		var groups [2]group

		for i, e := range pool {
			groups[mask>>i&1].add(e.Bound)
		}

		combined := area(groups[0].bound) + area(groups[1].bound)

		if !found || combined < bestArea {
			best, bestArea, found = mask, combined, true
		}
	}

	assert(found, "rtree: no admissible partition")

	first := make([]Entry[V], 0, n-bits.OnesCount64(best))
	second := make([]Entry[V], 0, bits.OnesCount64(best))

	for i, e := range pool {
		if best>>i&1 == 0 {
			first = append(first, e)
		} else {
			second = append(second, e)
		}
	}

	return first, second
}

// quadraticPartition is Guttman's quadratic split. The two entries that
// would waste the most area together seed the groups. Then the entry with the
// strongest preference for one group joins it, until a group needs all
// remaining entries to reach minFill.
func quadraticPartition[V Item[V]](pool []Entry[V], minFill int) ([]Entry[V], []Entry[V]) {
	const unassigned = -1

	side := make([]int, len(pool))
	for i := range side {
		side[i] = unassigned
	}

	var groups [2]group

	assign := func(i, g int) {
		side[i] = g
		groups[g].add(pool[i].Bound)
	}

	seedA, seedB := pickSeeds(pool)
	assign(seedA, 0)
	assign(seedB, 1)

	for remaining := len(pool) - 2; remaining > 0; remaining-- {
		// One group must take the rest to reach the minimum occupancy.
		if starved := starvedGroup(groups, remaining, minFill); starved != unassigned {
			for i := range pool {
				if side[i] == unassigned {
					assign(i, starved)
				}
			}

			break
		}

		chosen, target := unassigned, 0
		bestDiff := -1.0

		for i, e := range pool {
			if side[i] != unassigned {
				continue
			}

			growth0 := enlargement(groups[0].bound, e.Bound)
			growth1 := enlargement(groups[1].bound, e.Bound)

			diff := math.Abs(growth0 - growth1)
			if math.IsNaN(diff) {
				// Infinite growth towards both groups: no preference.
				diff = 0
			}

			if diff > bestDiff {
				chosen, bestDiff = i, diff
				target = preferredGroup(groups, growth0, growth1)
			}
		}

		assign(chosen, target)
	}

	first := make([]Entry[V], 0, groups[0].count)
	second := make([]Entry[V], 0, groups[1].count)

	for i, e := range pool {
		if side[i] == 0 {
			first = append(first, e)
		} else {
			second = append(second, e)
		}
	}

	return first, second
}

// pickSeeds returns the pair of entries whose covering rectangle wastes the
// most area.
func pickSeeds[V Item[V]](pool []Entry[V]) (int, int) {
	seedA, seedB := 0, 1
	worst := math.Inf(-1)

	for i := 0; i < len(pool)-1; i++ {
		for j := i + 1; j < len(pool); j++ {
			waste := area(pool[i].Bound.Union(pool[j].Bound)) - area(pool[i].Bound) - area(pool[j].Bound)

			if waste > worst {
				seedA, seedB, worst = i, j, waste
			}
		}
	}

	return seedA, seedB
}

// starvedGroup returns the group that needs every remaining entry to reach
// minFill, or -1 if both can still do without.
func starvedGroup(groups [2]group, remaining, minFill int) int {
	for g := range groups {
		if groups[g].count+remaining <= minFill {
			return g
		}
	}

	return -1
}

// preferredGroup picks the group needing less enlargement, then the smaller
// one by area, then the one with fewer entries.
func preferredGroup(groups [2]group, growth0, growth1 float64) int {
	switch {
	case growth0 < growth1:
		return 0
	case growth1 < growth0:
		return 1
	}

	area0, area1 := area(groups[0].bound), area(groups[1].bound)

	switch {
	case area0 < area1:
		return 0
	case area1 < area0:
		return 1
	case groups[1].count < groups[0].count:
		return 1
	default:
		return 0
	}
}

// group accumulates the rectangle and size of one side of a partition.
type group struct {
	bound orb.Bound
	count int
}

func (g *group) add(b orb.Bound) {
	if g.count == 0 {
		g.bound = b
	} else {
		g.bound = g.bound.Union(b)
	}

	g.count++
}
