package rbtree

import (
	"fmt"

	"github.com/tferdous17/rbkv/utils"
)

func violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", utils.ErrInvariantViolation, fmt.Sprintf(format, args...))
}

type verifier[K any, V any] struct {
	tree    *Tree[K, V]
	visited int
	last    uint32 // previous node in key order
}

// Verify checks every red-black invariant and the link structure of the tree. It returns nil for a
// well-formed tree and an error wrapping utils.ErrInvariantViolation otherwise.
func (tree *Tree[K, V]) Verify() error {
	if tree.nodes[nilIndex].color != BLACK {
		return violation("sentinel is %s", tree.nodes[nilIndex].color)
	}
	if tree.root == nilIndex {
		if tree.size != 0 {
			return violation("empty tree reports %d keys", tree.size)
		}
		return nil
	}
	if tree.nodes[tree.root].parent != nilIndex {
		return violation("root %v has a parent", tree.nodes[tree.root].key)
	}
	if tree.isRed(tree.root) {
		return violation("root %v is RED", tree.nodes[tree.root].key)
	}

	v := &verifier[K, V]{tree: tree, last: nilIndex}
	if _, err := v.walk(tree.root); err != nil {
		return err
	}
	if v.visited != tree.size {
		return violation("reached %d nodes but tree reports %d keys", v.visited, tree.size)
	}
	return nil
}

// walk verifies the subtree at idx in order and returns its black-height.
func (v *verifier[K, V]) walk(idx uint32) (int, error) {
	tree := v.tree
	if idx == nilIndex {
		return 1, nil
	}
	v.visited++
	if v.visited > tree.size {
		return 0, violation("more reachable nodes than the %d keys recorded, links form a cycle", tree.size)
	}

	n := &tree.nodes[idx]
	if !n.live {
		return 0, violation("released slot %d is still linked", idx)
	}
	if n.color != RED && n.color != BLACK {
		return 0, violation("node %v has color %d", n.key, n.color)
	}
	for _, child := range [2]uint32{n.left, n.right} {
		if child == nilIndex {
			continue
		}
		if tree.nodes[child].parent != idx {
			return 0, violation("child %v of %v does not point back to it", tree.nodes[child].key, n.key)
		}
		if n.color == RED && tree.isRed(child) {
			return 0, violation("RED node %v has RED child %v", n.key, tree.nodes[child].key)
		}
	}

	leftHeight, err := v.walk(n.left)
	if err != nil {
		return 0, err
	}
	if v.last != nilIndex && tree.compare(tree.nodes[v.last].key, n.key) >= 0 {
		return 0, violation("key %v is not greater than its in-order predecessor %v", n.key, tree.nodes[v.last].key)
	}
	v.last = idx
	rightHeight, err := v.walk(n.right)
	if err != nil {
		return 0, err
	}

	if leftHeight != rightHeight {
		return 0, violation("node %v has black-height %d on the left and %d on the right", n.key, leftHeight, rightHeight)
	}
	if n.color == BLACK {
		return leftHeight + 1, nil
	}
	return leftHeight, nil
}
