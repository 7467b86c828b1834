// Package rtree implements an in-memory R-tree over the minimum bounding
// rectangles of polygons.
//
// The tree is height balanced: every leaf sits at the same depth, and every
// node except the root holds between ceil(M/2) and M entries, where M is the
// order given to [New]. Searches filter on bounding rectangles only; callers
// needing exact geometric intersection post-filter the results.
//
// A Tree is not safe for concurrent use.
package rtree

import (
	"iter"
	"slices"

	"github.com/paulmach/orb"
)

// Item is a value that can be stored in a [Tree].
//
// Bound returns the minimum bounding rectangle of the value and must be
// stable for as long as the value is stored. Equal reports whether two values
// are the same stored item.
type Item[V any] interface {
	Bound() orb.Bound
	Equal(V) bool
}

// Ensure that orb.Polygon implements the [Item] interface.
var _ Item[orb.Polygon] = orb.Polygon{}

// Entry is a slot of a [Node]. Entries of leaf nodes hold a value, entries of
// internal nodes hold a child node.
type Entry[V Item[V]] struct {
	Bound orb.Bound
	Child *Node[V]
	Value V
}

// Node is a node of a [Tree].
type Node[V Item[V]] struct {
	leaf bool

	// count is the number of active entries; valid entries are
	// entries[:count]. entries has a fixed length of order+1, the extra slot
	// holding the overflowing entry until the node is split.
	count   int
	entries []Entry[V]

	// parent is nil for the root. It is only followed upwards.
	parent *Node[V]

	// bound is the union of the active entries' bounds.
	bound orb.Bound
}

// IsLeaf reports whether the node holds values rather than child nodes.
func (n *Node[V]) IsLeaf() bool {
	return n.leaf
}

// KeyCount returns the number of active entries.
func (n *Node[V]) KeyCount() int {
	return n.count
}

// Bound returns the union of the node's entry rectangles.
func (n *Node[V]) Bound() orb.Bound {
	return n.bound
}

// Children returns a copy of the node's active entries.
func (n *Node[V]) Children() []Entry[V] {
	return slices.Clone(n.active())
}

func (n *Node[V]) active() []Entry[V] {
	return n.entries[:n.count]
}

// add appends an entry and adopts its child, if any.
func (n *Node[V]) add(e Entry[V]) {
	n.entries[n.count] = e
	n.count++

	if e.Child != nil {
		e.Child.parent = n
	}
}

// removeAt drops the entry at slot i, keeping the remaining entries in order.
func (n *Node[V]) removeAt(i int) {
	copy(n.entries[i:n.count], n.entries[i+1:n.count])
	n.count--
	n.entries[n.count] = Entry[V]{}
}

// reset replaces all entries of n. entries must not alias n's storage.
func (n *Node[V]) reset(entries []Entry[V]) {
	clear(n.entries)
	n.count = 0

	for _, e := range entries {
		n.add(e)
	}
}

// slotOf returns the slot of n that points to child.
func (n *Node[V]) slotOf(child *Node[V]) int {
	for i, e := range n.active() {
		if e.Child == child {
			return i
		}
	}

	assert(false, "rtree: child is not referenced by its parent")

	return -1
}

func (n *Node[V]) recompute() {
	n.bound = unionOf(n.active())
}

// Tree is an R-tree holding values of type V.
type Tree[V Item[V]] struct {
	cfg  Config
	root *Node[V]

	// levels is the number of node levels; 1 while the root is a leaf.
	levels int
	size   int
}

// New creates an empty tree of the given order (maximum entries per node).
//
// It fails with [ErrInvalidOrder] if order is below [MinOrder].
func New[V Item[V]](order int) (*Tree[V], error) {
	return NewWithConfig[V](Config{Order: order})
}

// NewWithConfig creates an empty tree with a validated configuration.
func NewWithConfig[V Item[V]](cfg Config) (*Tree[V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	t := &Tree[V]{
		cfg:    cfg,
		levels: 1,
	}

	t.root = t.newNode(true)

	return t, nil
}

func (t *Tree[V]) newNode(leaf bool) *Node[V] {
	return &Node[V]{
		leaf:    leaf,
		entries: make([]Entry[V], t.cfg.Order+1),
		bound:   emptyBound,
	}
}

// Config returns the tree configuration.
func (t *Tree[V]) Config() Config {
	return t.cfg
}

// Order returns the maximum number of entries per node.
func (t *Tree[V]) Order() int {
	return t.cfg.Order
}

// MinFill returns the minimum number of entries of a non-root node.
func (t *Tree[V]) MinFill() int {
	return t.cfg.minFill()
}

// Root returns the root node. The root of an empty tree is a leaf without
// entries.
func (t *Tree[V]) Root() *Node[V] {
	return t.root
}

// Len returns the number of stored values.
func (t *Tree[V]) Len() int {
	return t.size
}

// Height returns the number of node levels: 0 for an empty tree, 1 while all
// values fit into the root leaf.
func (t *Tree[V]) Height() int {
	if t.size == 0 {
		return 0
	}

	return t.levels
}

// Extent returns the rectangle covering every stored value. It returns false
// for an empty tree.
func (t *Tree[V]) Extent() (orb.Bound, bool) {
	if t.size == 0 {
		return orb.Bound{}, false
	}

	return t.root.bound, true
}

// Contains reports whether v is stored in the tree.
func (t *Tree[V]) Contains(v V) bool {
	_, _, ok := t.findLeaf(t.root, v.Bound(), v)

	return ok
}

// RangeSearch returns every stored value whose bounding rectangle intersects
// q. Rectangles touching at an edge or a corner intersect. The result is
// unordered and never nil.
func (t *Tree[V]) RangeSearch(q orb.Bound) []V {
	found := make([]V, 0)

	for v := range t.Search(q) {
		found = append(found, v)
	}

	return found
}

// Search returns an iterator over every stored value whose bounding rectangle
// intersects q.
func (t *Tree[V]) Search(q orb.Bound) iter.Seq[V] {
	return func(yield func(V) bool) {
		if q.IsEmpty() {
			return
		}

		t.search(t.root, q, yield)
	}
}

func (t *Tree[V]) search(n *Node[V], q orb.Bound, yield func(V) bool) bool {
	for _, e := range n.active() {
		if !e.Bound.Intersects(q) {
			continue
		}

		if n.leaf {
			if !yield(e.Value) {
				return false
			}

			continue
		}

		if !t.search(e.Child, q, yield) {
			return false
		}
	}

	return true
}

// All returns an iterator over every stored value.
func (t *Tree[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		t.walk(t.root, yield)
	}
}

func (t *Tree[V]) walk(n *Node[V], yield func(V) bool) bool {
	for _, e := range n.active() {
		if n.leaf {
			if !yield(e.Value) {
				return false
			}

			continue
		}

		if !t.walk(e.Child, yield) {
			return false
		}
	}

	return true
}

// findLeaf locates the leaf entry holding v below n. Every child whose
// rectangle intersects b is visited, since sibling rectangles may overlap.
func (t *Tree[V]) findLeaf(n *Node[V], b orb.Bound, v V) (*Node[V], int, bool) {
	for i, e := range n.active() {
		if n.leaf {
			if e.Bound.Equal(b) && e.Value.Equal(v) {
				return n, i, true
			}

			continue
		}

		if !e.Bound.Intersects(b) {
			continue
		}

		if leaf, slot, ok := t.findLeaf(e.Child, b, v); ok {
			return leaf, slot, true
		}
	}

	return nil, 0, false
}
