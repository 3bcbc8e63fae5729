package rbtree

import (
	"github.com/tferdous17/rbkv/utils"
)

// Insert adds key with value. Keys are unique: inserting a key that is already present leaves the
// tree untouched and returns utils.ErrDuplicateKey.
func (tree *Tree[K, V]) Insert(key K, value V) error {
	if _, inserted := tree.insert(key, value, false); !inserted {
		return utils.ErrDuplicateKey
	}
	return nil
}

// Put inserts key with value, or overwrites the value if key is already present.
func (tree *Tree[K, V]) Put(key K, value V) (replaced bool) {
	_, inserted := tree.insert(key, value, true)
	return !inserted
}

func (tree *Tree[K, V]) insert(key K, value V, overwrite bool) (uint32, bool) {
	current := tree.root // Start from the root
	parent := nilIndex   // Contrast to standard BST, we need to keep track of parent nodes
	c := 0
	for current != nilIndex {
		parent = current
		c = tree.compare(key, tree.nodes[current].key)
		switch {
		case c < 0:
			current = tree.nodes[current].left
		case c > 0:
			current = tree.nodes[current].right
		default:
			if overwrite {
				tree.nodes[current].value = value
			}
			return current, false
		}
	}

	// now we're at the sentinel, and parent is the last real node we traversed
	idx := tree.alloc(key, value, parent)
	switch {
	case parent == nilIndex: // tree was empty
		tree.root = idx
	case c < 0:
		tree.nodes[parent].left = idx
	default:
		tree.nodes[parent].right = idx
	}
	tree.size++

	// a red node under a red parent may now exist, and an empty tree got a red root
	tree.insertFixup(idx)
	return idx, true
}

func (tree *Tree[K, V]) insertFixup(z uint32) {
	// The sentinel above the root is BLACK, so this stops at the root at the latest.
	// A RED parent is never the root, so the grandparent always exists.
	for tree.isRed(tree.nodes[z].parent) {
		parent := tree.nodes[z].parent
		grandParent := tree.nodes[parent].parent

		if parent == tree.nodes[grandParent].left {
			uncle := tree.nodes[grandParent].right

			if tree.isRed(uncle) {
				tree.nodes[parent].color = BLACK
				tree.nodes[uncle].color = BLACK
				tree.nodes[grandParent].color = RED
				z = grandParent
				continue
			}
			if z == tree.nodes[parent].right {
				// z-parent-grandparent form a triangle, rotate parent left into a line
				z = parent
				tree.rotateLeft(z)
				parent = tree.nodes[z].parent
			}
			// line, recolor & rotate grandparent right (opp. of z)
			tree.nodes[parent].color = BLACK
			tree.nodes[grandParent].color = RED
			tree.rotateRight(grandParent)
		} else { // parent is right child of grandparent
			uncle := tree.nodes[grandParent].left

			if tree.isRed(uncle) {
				tree.nodes[parent].color = BLACK
				tree.nodes[uncle].color = BLACK
				tree.nodes[grandParent].color = RED
				z = grandParent
				continue
			}
			if z == tree.nodes[parent].left {
				z = parent
				tree.rotateRight(z)
				parent = tree.nodes[z].parent
			}
			tree.nodes[parent].color = BLACK
			tree.nodes[grandParent].color = RED
			tree.rotateLeft(grandParent)
		}
	}
	// Root of the tree must always be black
	tree.nodes[tree.root].color = BLACK
}
