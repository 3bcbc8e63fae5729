/*
Package rbtree is an ordered key-value container backed by a red-black tree.

Nodes are kept in an arena and linked by index instead of by pointer, so the parent back-references
never form pointer cycles. Slot 0 of the arena is the NIL sentinel: it is always BLACK and stands in
for every absent child and for the parent of the root.
*/
package rbtree

import (
	"cmp"

	"github.com/emirpasic/gods/containers"
)

type Color uint8

// Red = 0, Black = 1
const (
	RED Color = iota
	BLACK
)

func (c Color) String() string {
	switch c {
	case RED:
		return "RED"
	case BLACK:
		return "BLACK"
	}
	return "INVALID"
}

// nilIndex is the arena slot of the shared NIL sentinel.
const nilIndex uint32 = 0

// Comparator returns a negative number if a < b, zero if a == b and a positive number if a > b.
type Comparator[K any] func(a, b K) int

type node[K any, V any] struct {
	key    K
	value  V
	parent uint32
	left   uint32
	right  uint32
	color  Color
	gen    uint32 // bumped every time the slot is released
	live   bool
}

type Tree[K any, V any] struct {
	nodes     []node[K, V]
	free      []uint32
	root      uint32
	size      int
	compare   Comparator[K]
	rotations uint64
	epoch     uint32 // bumped by Clear, handles from an older epoch are stale
}

var _ containers.Container = (*Tree[int, int])(nil)

// New returns an empty tree ordered by the natural ordering of K.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return NewWith[K, V](cmp.Compare[K])
}

// NewWith returns an empty tree ordered by compare.
func NewWith[K any, V any](compare Comparator[K]) *Tree[K, V] {
	tree := &Tree[K, V]{compare: compare}
	tree.reset()
	return tree
}

func (tree *Tree[K, V]) reset() {
	tree.nodes = make([]node[K, V], 1, 16)
	tree.nodes[nilIndex].color = BLACK
	tree.free = nil
	tree.root = nilIndex
	tree.size = 0
	tree.epoch++
}

// Len returns the number of keys in the tree.
func (tree *Tree[K, V]) Len() int {
	return tree.size
}

func (tree *Tree[K, V]) Size() int {
	return tree.size
}

func (tree *Tree[K, V]) Empty() bool {
	return tree.size == 0
}

// Clear removes every node. Handles taken before Clear become invalid.
func (tree *Tree[K, V]) Clear() {
	tree.reset()
}

// Rotations returns the number of rotations performed since the tree was created.
func (tree *Tree[K, V]) Rotations() uint64 {
	return tree.rotations
}

// Root returns a handle to the root node, or the zero Node if the tree is empty.
func (tree *Tree[K, V]) Root() Node[K, V] {
	return tree.handle(tree.root)
}

func (tree *Tree[K, V]) alloc(key K, value V, parent uint32) uint32 {
	n := node[K, V]{key: key, value: value, parent: parent, color: RED, live: true}

	// reuse a released slot before growing the arena
	if last := len(tree.free) - 1; last >= 0 {
		idx := tree.free[last]
		tree.free = tree.free[:last]
		n.gen = tree.nodes[idx].gen
		tree.nodes[idx] = n
		return idx
	}
	tree.nodes = append(tree.nodes, n)
	return uint32(len(tree.nodes) - 1)
}

func (tree *Tree[K, V]) release(idx uint32) {
	gen := tree.nodes[idx].gen + 1
	tree.nodes[idx] = node[K, V]{gen: gen}
	tree.free = append(tree.free, idx)
}

func (tree *Tree[K, V]) isRed(idx uint32) bool {
	return tree.nodes[idx].color == RED
}
