package rbtree

import (
	"github.com/tferdous17/rbkv/utils"
)

// lookup is a plain BST descent, it returns nilIndex when key is absent.
func (tree *Tree[K, V]) lookup(key K) uint32 {
	current := tree.root
	for current != nilIndex {
		c := tree.compare(key, tree.nodes[current].key)
		switch {
		case c < 0:
			current = tree.nodes[current].left
		case c > 0:
			current = tree.nodes[current].right
		default:
			return current
		}
	}
	return nilIndex
}

// Search returns a handle to the node holding key, or utils.ErrKeyNotFound.
func (tree *Tree[K, V]) Search(key K) (Node[K, V], error) {
	idx := tree.lookup(key)
	if idx == nilIndex {
		return Node[K, V]{}, utils.ErrKeyNotFound
	}
	return tree.handle(idx), nil
}

func (tree *Tree[K, V]) Get(key K) (value V, found bool) {
	idx := tree.lookup(key)
	if idx == nilIndex {
		return value, false
	}
	return tree.nodes[idx].value, true
}

func (tree *Tree[K, V]) Contains(key K) bool {
	return tree.lookup(key) != nilIndex
}

func (tree *Tree[K, V]) minimum(idx uint32) uint32 {
	for tree.nodes[idx].left != nilIndex {
		idx = tree.nodes[idx].left
	}
	return idx
}

func (tree *Tree[K, V]) maximum(idx uint32) uint32 {
	for tree.nodes[idx].right != nilIndex {
		idx = tree.nodes[idx].right
	}
	return idx
}

// successor returns nilIndex when idx holds the maximum key.
func (tree *Tree[K, V]) successor(idx uint32) uint32 {
	if tree.nodes[idx].right != nilIndex {
		return tree.minimum(tree.nodes[idx].right)
	}
	// climb until we arrive from a left child
	parent := tree.nodes[idx].parent
	for parent != nilIndex && idx == tree.nodes[parent].right {
		idx = parent
		parent = tree.nodes[parent].parent
	}
	return parent
}

func (tree *Tree[K, V]) predecessor(idx uint32) uint32 {
	if tree.nodes[idx].left != nilIndex {
		return tree.maximum(tree.nodes[idx].left)
	}
	parent := tree.nodes[idx].parent
	for parent != nilIndex && idx == tree.nodes[parent].left {
		idx = parent
		parent = tree.nodes[parent].parent
	}
	return parent
}

// Minimum returns the node holding the smallest key, or utils.ErrEmptyTree.
func (tree *Tree[K, V]) Minimum() (Node[K, V], error) {
	if tree.root == nilIndex {
		return Node[K, V]{}, utils.ErrEmptyTree
	}
	return tree.handle(tree.minimum(tree.root)), nil
}

// Maximum returns the node holding the largest key, or utils.ErrEmptyTree.
func (tree *Tree[K, V]) Maximum() (Node[K, V], error) {
	if tree.root == nilIndex {
		return Node[K, V]{}, utils.ErrEmptyTree
	}
	return tree.handle(tree.maximum(tree.root)), nil
}

// MinimumOf returns the smallest node of the subtree rooted at n.
func (tree *Tree[K, V]) MinimumOf(n Node[K, V]) (Node[K, V], error) {
	idx, err := tree.check(n)
	if err != nil {
		return Node[K, V]{}, err
	}
	return tree.handle(tree.minimum(idx)), nil
}

// MaximumOf returns the largest node of the subtree rooted at n.
func (tree *Tree[K, V]) MaximumOf(n Node[K, V]) (Node[K, V], error) {
	idx, err := tree.check(n)
	if err != nil {
		return Node[K, V]{}, err
	}
	return tree.handle(tree.maximum(idx)), nil
}

// Successor returns the node holding the next larger key, or utils.ErrNoSuccessor if n holds the maximum.
func (tree *Tree[K, V]) Successor(n Node[K, V]) (Node[K, V], error) {
	idx, err := tree.check(n)
	if err != nil {
		return Node[K, V]{}, err
	}
	next := tree.successor(idx)
	if next == nilIndex {
		return Node[K, V]{}, utils.ErrNoSuccessor
	}
	return tree.handle(next), nil
}

// Predecessor returns the node holding the next smaller key, or utils.ErrNoPredecessor if n holds the minimum.
func (tree *Tree[K, V]) Predecessor(n Node[K, V]) (Node[K, V], error) {
	idx, err := tree.check(n)
	if err != nil {
		return Node[K, V]{}, err
	}
	prev := tree.predecessor(idx)
	if prev == nilIndex {
		return Node[K, V]{}, utils.ErrNoPredecessor
	}
	return tree.handle(prev), nil
}

// Floor returns the node with the largest key <= key.
func (tree *Tree[K, V]) Floor(key K) (Node[K, V], error) {
	found := nilIndex
	current := tree.root
	for current != nilIndex {
		c := tree.compare(key, tree.nodes[current].key)
		switch {
		case c == 0:
			return tree.handle(current), nil
		case c < 0:
			current = tree.nodes[current].left
		default:
			found = current
			current = tree.nodes[current].right
		}
	}
	if found == nilIndex {
		return Node[K, V]{}, utils.ErrKeyNotFound
	}
	return tree.handle(found), nil
}

// Ceiling returns the node with the smallest key >= key.
func (tree *Tree[K, V]) Ceiling(key K) (Node[K, V], error) {
	found := nilIndex
	current := tree.root
	for current != nilIndex {
		c := tree.compare(key, tree.nodes[current].key)
		switch {
		case c == 0:
			return tree.handle(current), nil
		case c > 0:
			current = tree.nodes[current].right
		default:
			found = current
			current = tree.nodes[current].left
		}
	}
	if found == nilIndex {
		return Node[K, V]{}, utils.ErrKeyNotFound
	}
	return tree.handle(found), nil
}
