package rtree

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Insert adds v to the tree.
//
// It fails with [ErrDuplicateKey] if a value with the same bound that is
// Equal to v is already stored, and with [ErrInvalidBound] if v's bound is
// empty or not finite. A failed insert leaves the tree unchanged.
func (t *Tree[V]) Insert(v V) error {
	b := v.Bound()

	if !validBound(b) {
		return fmt.Errorf("%w: %v", ErrInvalidBound, b)
	}

	if _, _, ok := t.findLeaf(t.root, b, v); ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, b)
	}

	leaf := t.chooseLeaf(b)
	leaf.add(Entry[V]{Bound: b, Value: v})
	t.size++

	var sibling *Node[V]

	if leaf.count > t.cfg.Order {
		sibling = t.split(leaf)
	}

	t.adjustTree(leaf, sibling)

	return nil
}

// chooseLeaf descends from the root, at each level following the entry that
// needs the least area enlargement to cover b. Ties go to the smaller entry,
// then to the lower slot.
func (t *Tree[V]) chooseLeaf(b orb.Bound) *Node[V] {
	n := t.root

	for !n.leaf {
		best := 0
		bestGrowth := enlargement(n.entries[0].Bound, b)
		bestArea := area(n.entries[0].Bound)

		for i := 1; i < n.count; i++ {
			growth := enlargement(n.entries[i].Bound, b)
			a := area(n.entries[i].Bound)

			if growth < bestGrowth || (growth == bestGrowth && a < bestArea) {
				best, bestGrowth, bestArea = i, growth, a
			}
		}

		n = n.entries[best].Child
	}

	return n
}

// adjustTree walks from n up to the root, refreshing rectangles. If n was
// split into n and sibling, the sibling is added to the parent, which may
// split in turn. A split of the root grows the tree by one level.
func (t *Tree[V]) adjustTree(n, sibling *Node[V]) {
	for {
		n.recompute()

		if sibling != nil {
			sibling.recompute()
		}

		parent := n.parent
		if parent == nil {
			break
		}

		parent.entries[parent.slotOf(n)].Bound = n.bound

		if sibling != nil {
			parent.add(Entry[V]{Bound: sibling.bound, Child: sibling})
			sibling = nil

			if parent.count > t.cfg.Order {
				sibling = t.split(parent)
			}
		}

		n = parent
	}

	if sibling != nil {
		t.growRoot(n, sibling)
	}
}

// growRoot puts a new internal root above the two halves of the old one.
func (t *Tree[V]) growRoot(left, right *Node[V]) {
	root := t.newNode(false)
	root.add(Entry[V]{Bound: left.bound, Child: left})
	root.add(Entry[V]{Bound: right.bound, Child: right})
	root.recompute()

	t.root = root
	t.levels++

	tracer().Debugf("rtree: root split, height is now %d", t.levels)
}
