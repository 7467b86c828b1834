package rtree

import (
	"fmt"
	"slices"
)

// Delete removes v from the tree.
//
// It fails with [ErrNotFound] if no value with v's bound that is Equal to v
// is stored; the tree is then unchanged.
func (t *Tree[V]) Delete(v V) error {
	b := v.Bound()

	leaf, slot, ok := t.findLeaf(t.root, b, v)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, b)
	}

	leaf.removeAt(slot)
	t.size--

	t.condenseTree(leaf)
	t.shortenTree()

	return nil
}

// condenseTree walks from n up to the root. An underfull node borrows from
// or merges with an adjacent sibling; a merge removes an entry from the
// parent, which is then checked in turn. Rectangles are refreshed on the way.
func (t *Tree[V]) condenseTree(n *Node[V]) {
	for n.parent != nil {
		parent := n.parent
		slot := parent.slotOf(n)

		if n.count >= t.cfg.minFill() {
			n.recompute()
			parent.entries[slot].Bound = n.bound
		} else {
			t.rebalance(parent, slot)
		}

		n = parent
	}

	n.recompute()
}

// rebalance repairs the underfull child at slot. Sibling operations are
// tried in order: borrow-left, borrow-right, merge-left, merge-right.
func (t *Tree[V]) rebalance(parent *Node[V], slot int) {
	minFill := t.cfg.minFill()
	hasLeft := slot > 0
	hasRight := slot+1 < parent.count

	assert(hasLeft || hasRight, "rtree: underfull node has no sibling")

	switch {
	case hasLeft && parent.entries[slot-1].Child.count > minFill:
		t.redistribute(parent, slot-1, slot)
	case hasRight && parent.entries[slot+1].Child.count > minFill:
		t.redistribute(parent, slot, slot+1)
	case hasLeft:
		t.merge(parent, slot, slot-1)
	default:
		t.merge(parent, slot, slot+1)
	}
}

// redistribute pools the entries of the children at slots i and j and
// partitions them again, so that both end up with at least minFill entries.
func (t *Tree[V]) redistribute(parent *Node[V], i, j int) {
	left, right := parent.entries[i].Child, parent.entries[j].Child

	pool := slices.Concat(left.active(), right.active())
	first, second := t.partition(pool, t.cfg.minFill())

	left.reset(first)
	right.reset(second)
	left.recompute()
	right.recompute()

	parent.entries[i].Bound = left.bound
	parent.entries[j].Bound = right.bound

	tracer().Debugf("rtree: redistributed %d entries between siblings (leaf=%t) as %d + %d",
		len(pool), left.leaf, len(first), len(second))
}

// merge moves every entry of the child at slot into the child at into and
// drops the emptied child from parent.
func (t *Tree[V]) merge(parent *Node[V], slot, into int) {
	n, sibling := parent.entries[slot].Child, parent.entries[into].Child

	assert(n.count+sibling.count <= t.cfg.Order, "rtree: merged node would overflow")

	for _, e := range n.active() {
		sibling.add(e)
	}

	sibling.recompute()
	parent.entries[into].Bound = sibling.bound

	parent.removeAt(slot)
	n.reset(nil)
	n.parent = nil

	tracer().Debugf("rtree: merged underfull node (leaf=%t) into sibling, now %d entries",
		sibling.leaf, sibling.count)
}

// shortenTree replaces an internal root that has a single child by that
// child.
func (t *Tree[V]) shortenTree() {
	for !t.root.leaf && t.root.count == 1 {
		child := t.root.entries[0].Child
		t.root.reset(nil)

		child.parent = nil
		t.root = child
		t.levels--

		tracer().Debugf("rtree: root collapsed, height is now %d", t.levels)
	}
}
