package rbtree

import "github.com/emirpasic/gods/containers"

var _ containers.ReverseIteratorWithKey = (*Iterator[int, int])(nil)

// Iterator walks the tree in key order by following successor and predecessor links.
// It is invalidated by any Insert, Put or Delete on the tree.
type Iterator[K any, V any] struct {
	tree     *Tree[K, V]
	idx      uint32
	position position
}

type position byte

const (
	begin, between, end position = 0, 1, 2
)

// Iterator returns an iterator positioned one-before-first.
func (tree *Tree[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{tree: tree, idx: nilIndex, position: begin}
}

// IteratorAt returns an iterator positioned on n.
func (tree *Tree[K, V]) IteratorAt(n Node[K, V]) (*Iterator[K, V], error) {
	idx, err := tree.check(n)
	if err != nil {
		return nil, err
	}
	return &Iterator[K, V]{tree: tree, idx: idx, position: between}, nil
}

func (iterator *Iterator[K, V]) Next() bool {
	tree := iterator.tree
	switch iterator.position {
	case end:
		return false
	case begin:
		if tree.root == nilIndex {
			iterator.End()
			return false
		}
		iterator.idx = tree.minimum(tree.root)
	default:
		iterator.idx = tree.successor(iterator.idx)
	}
	if iterator.idx == nilIndex {
		iterator.End()
		return false
	}
	iterator.position = between
	return true
}

func (iterator *Iterator[K, V]) Prev() bool {
	tree := iterator.tree
	switch iterator.position {
	case begin:
		return false
	case end:
		if tree.root == nilIndex {
			iterator.Begin()
			return false
		}
		iterator.idx = tree.maximum(tree.root)
	default:
		iterator.idx = tree.predecessor(iterator.idx)
	}
	if iterator.idx == nilIndex {
		iterator.Begin()
		return false
	}
	iterator.position = between
	return true
}

func (iterator *Iterator[K, V]) Key() interface{} {
	return iterator.tree.nodes[iterator.idx].key
}

func (iterator *Iterator[K, V]) Value() interface{} {
	return iterator.tree.nodes[iterator.idx].value
}

// Node returns the typed handle of the current position.
func (iterator *Iterator[K, V]) Node() Node[K, V] {
	return iterator.tree.handle(iterator.idx)
}

func (iterator *Iterator[K, V]) Begin() {
	iterator.idx = nilIndex
	iterator.position = begin
}

func (iterator *Iterator[K, V]) End() {
	iterator.idx = nilIndex
	iterator.position = end
}

func (iterator *Iterator[K, V]) First() bool {
	iterator.Begin()
	return iterator.Next()
}

func (iterator *Iterator[K, V]) Last() bool {
	iterator.End()
	return iterator.Prev()
}

func (iterator *Iterator[K, V]) NextTo(f func(key interface{}, value interface{}) bool) bool {
	for iterator.Next() {
		if f(iterator.Key(), iterator.Value()) {
			return true
		}
	}
	return false
}

func (iterator *Iterator[K, V]) PrevTo(f func(key interface{}, value interface{}) bool) bool {
	for iterator.Prev() {
		if f(iterator.Key(), iterator.Value()) {
			return true
		}
	}
	return false
}
