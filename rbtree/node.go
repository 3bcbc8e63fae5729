package rbtree

import (
	"fmt"

	"github.com/tferdous17/rbkv/utils"
)

// Node is a handle to a node of a Tree. The zero Node refers to no node.
//
// A handle stays valid until the key it refers to is deleted or the tree is cleared. Deleting a key
// whose node has two children also invalidates the handle of that key's successor, because the
// successor's entry is relocated into the deleted key's node. Accessors on an invalid handle return
// zero values.
type Node[K any, V any] struct {
	tree  *Tree[K, V]
	id    uint32
	gen   uint32
	epoch uint32
}

// Entry is a key-value pair copied out of the tree.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

func (tree *Tree[K, V]) handle(idx uint32) Node[K, V] {
	if idx == nilIndex {
		return Node[K, V]{}
	}
	return Node[K, V]{tree: tree, id: idx, gen: tree.nodes[idx].gen, epoch: tree.epoch}
}

// IsZero reports whether n refers to no node at all.
func (n Node[K, V]) IsZero() bool {
	return n.tree == nil || n.id == nilIndex
}

// Valid reports whether n still refers to a live node.
func (n Node[K, V]) Valid() bool {
	if n.IsZero() || n.epoch != n.tree.epoch || int(n.id) >= len(n.tree.nodes) {
		return false
	}
	slot := &n.tree.nodes[n.id]
	return slot.live && slot.gen == n.gen
}

func (n Node[K, V]) Key() K {
	if !n.Valid() {
		var k K
		return k
	}
	return n.tree.nodes[n.id].key
}

func (n Node[K, V]) Value() V {
	if !n.Valid() {
		var v V
		return v
	}
	return n.tree.nodes[n.id].value
}

// Color reports BLACK for an invalid handle, like the sentinel.
func (n Node[K, V]) Color() Color {
	if !n.Valid() {
		return BLACK
	}
	return n.tree.nodes[n.id].color
}

func (n Node[K, V]) Entry() Entry[K, V] {
	return Entry[K, V]{Key: n.Key(), Value: n.Value()}
}

func (n Node[K, V]) String() string {
	if !n.Valid() {
		return "<nil>"
	}
	return fmt.Sprintf("%v", n.Key())
}

// Parent, Left and Right return the zero Node when the relation is absent or n is invalid.
func (n Node[K, V]) Parent() Node[K, V] {
	return n.relative(func(slot *node[K, V]) uint32 { return slot.parent })
}

func (n Node[K, V]) Left() Node[K, V] {
	return n.relative(func(slot *node[K, V]) uint32 { return slot.left })
}

func (n Node[K, V]) Right() Node[K, V] {
	return n.relative(func(slot *node[K, V]) uint32 { return slot.right })
}

func (n Node[K, V]) relative(link func(*node[K, V]) uint32) Node[K, V] {
	if !n.Valid() {
		return Node[K, V]{}
	}
	return n.tree.handle(link(&n.tree.nodes[n.id]))
}

// check resolves a handle passed back into the tree to its arena index.
func (tree *Tree[K, V]) check(n Node[K, V]) (uint32, error) {
	if n.IsZero() {
		return nilIndex, utils.ErrEmptyTree
	}
	if n.tree != tree || !n.Valid() {
		return nilIndex, utils.ErrInvalidNode
	}
	return n.id, nil
}
