package rbtree

import (
	"github.com/tferdous17/rbkv/utils"
)

// Delete removes key and returns the key and value it held. The tree is left untouched and
// utils.ErrKeyNotFound is returned when key is absent.
func (tree *Tree[K, V]) Delete(key K) (K, V, error) {
	target := tree.lookup(key)
	if target == nilIndex {
		var k K
		var v V
		return k, v, utils.ErrKeyNotFound
	}
	removedKey, removedValue := tree.nodes[target].key, tree.nodes[target].value

	// spliced has at most one child: either target itself, or target's successor which has no left child
	spliced := target
	if tree.nodes[target].left != nilIndex && tree.nodes[target].right != nilIndex {
		spliced = tree.minimum(tree.nodes[target].right)
	}

	child := tree.nodes[spliced].left
	if child == nilIndex {
		child = tree.nodes[spliced].right
	}
	// child may be the sentinel, replaceChild still records spliced's parent on it
	tree.replaceChild(tree.nodes[spliced].parent, spliced, child)

	if spliced != target {
		// the successor's entry moves into target's node, old handles to target are now stale
		tree.nodes[target].key = tree.nodes[spliced].key
		tree.nodes[target].value = tree.nodes[spliced].value
		tree.nodes[target].gen++
	}

	if tree.nodes[spliced].color == BLACK {
		// one path through child's position lost a black node
		tree.deleteFixup(child)
	}

	tree.release(spliced)
	tree.nodes[nilIndex].parent = nilIndex
	tree.size--
	return removedKey, removedValue, nil
}

// deleteFixup pushes the extra black carried by x up the tree until it can be absorbed by a red
// node, resolved by rotation, or dropped at the root. x may be the sentinel.
func (tree *Tree[K, V]) deleteFixup(x uint32) {
	for x != tree.root && !tree.isRed(x) {
		parent := tree.nodes[x].parent

		if x == tree.nodes[parent].left {
			sibling := tree.nodes[parent].right

			if tree.isRed(sibling) {
				tree.nodes[sibling].color = BLACK
				tree.nodes[parent].color = RED
				tree.rotateLeft(parent)
				sibling = tree.nodes[parent].right
			}

			if !tree.isRed(tree.nodes[sibling].left) && !tree.isRed(tree.nodes[sibling].right) {
				tree.nodes[sibling].color = RED
				x = parent
				continue
			}

			if !tree.isRed(tree.nodes[sibling].right) {
				// near child red, far child black: rotate the red child into the far position
				tree.nodes[tree.nodes[sibling].left].color = BLACK
				tree.nodes[sibling].color = RED
				tree.rotateRight(sibling)
				sibling = tree.nodes[parent].right
			}

			tree.nodes[sibling].color = tree.nodes[parent].color
			tree.nodes[parent].color = BLACK
			tree.nodes[tree.nodes[sibling].right].color = BLACK
			tree.rotateLeft(parent)
			x = tree.root
		} else {
			sibling := tree.nodes[parent].left

			if tree.isRed(sibling) {
				tree.nodes[sibling].color = BLACK
				tree.nodes[parent].color = RED
				tree.rotateRight(parent)
				sibling = tree.nodes[parent].left
			}

			if !tree.isRed(tree.nodes[sibling].left) && !tree.isRed(tree.nodes[sibling].right) {
				tree.nodes[sibling].color = RED
				x = parent
				continue
			}

			if !tree.isRed(tree.nodes[sibling].left) {
				tree.nodes[tree.nodes[sibling].right].color = BLACK
				tree.nodes[sibling].color = RED
				tree.rotateLeft(sibling)
				sibling = tree.nodes[parent].left
			}

			tree.nodes[sibling].color = tree.nodes[parent].color
			tree.nodes[parent].color = BLACK
			tree.nodes[tree.nodes[sibling].left].color = BLACK
			tree.rotateRight(parent)
			x = tree.root
		}
	}
	tree.nodes[x].color = BLACK
}
