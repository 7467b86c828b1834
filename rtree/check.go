package rtree

import "fmt"

// Check validates the structural invariants of the tree: uniform leaf depth,
// occupancy bounds, parent links, exact rectangles at every node and a value
// count matching [Tree.Len].
//
// Violations are reported as errors wrapping [ErrCorrupt]. Check is meant for
// tests and debugging; it visits every node.
func (t *Tree[V]) Check() error {
	if t == nil || t.root == nil {
		return fmt.Errorf("%w: nil tree", ErrCorrupt)
	}

	if t.root.parent != nil {
		return fmt.Errorf("%w: root has a parent", ErrCorrupt)
	}

	values, levels, err := t.checkNode(t.root, true)
	if err != nil {
		return err
	}

	if levels != t.levels {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrCorrupt, levels, t.levels)
	}

	if values != t.size {
		return fmt.Errorf("%w: %d values reachable, %d recorded", ErrCorrupt, values, t.size)
	}

	return nil
}

func (t *Tree[V]) checkNode(n *Node[V], isRoot bool) (values int, levels int, err error) {
	if len(n.entries) != t.cfg.Order+1 {
		return 0, 0, fmt.Errorf("%w: node storage holds %d slots, want %d",
			ErrCorrupt, len(n.entries), t.cfg.Order+1)
	}

	if n.count > t.cfg.Order {
		return 0, 0, fmt.Errorf("%w: node holds %d entries, order is %d", ErrCorrupt, n.count, t.cfg.Order)
	}

	if !isRoot && n.count < t.cfg.minFill() {
		return 0, 0, fmt.Errorf("%w: non-root node holds %d entries, minimum is %d",
			ErrCorrupt, n.count, t.cfg.minFill())
	}

	for i := n.count; i < len(n.entries); i++ {
		if n.entries[i].Child != nil {
			return 0, 0, fmt.Errorf("%w: inactive slot %d references a child", ErrCorrupt, i)
		}
	}

	if want := unionOf(n.active()); n.bound != want {
		return 0, 0, fmt.Errorf("%w: node bound %v, union of entries is %v", ErrCorrupt, n.bound, want)
	}

	if n.leaf {
		for i, e := range n.active() {
			if e.Child != nil {
				return 0, 0, fmt.Errorf("%w: leaf entry %d references a child", ErrCorrupt, i)
			}
		}

		return n.count, 1, nil
	}

	if isRoot && n.count < 2 {
		return 0, 0, fmt.Errorf("%w: internal root holds %d entries", ErrCorrupt, n.count)
	}

	childLevels := 0

	for i, e := range n.active() {
		if e.Child == nil {
			return 0, 0, fmt.Errorf("%w: internal entry %d has no child", ErrCorrupt, i)
		}

		if e.Child.parent != n {
			return 0, 0, fmt.Errorf("%w: child %d does not link back to its parent", ErrCorrupt, i)
		}

		if e.Bound != e.Child.bound {
			return 0, 0, fmt.Errorf("%w: entry %d bound %v, child bound %v", ErrCorrupt, i, e.Bound, e.Child.bound)
		}

		childValues, l, err := t.checkNode(e.Child, false)
		if err != nil {
			return 0, 0, err
		}

		if i == 0 {
			childLevels = l
		} else if l != childLevels {
			return 0, 0, fmt.Errorf("%w: non-uniform subtree heights (%d != %d)", ErrCorrupt, l, childLevels)
		}

		values += childValues
	}

	return values, childLevels + 1, nil
}
