package rbtree

import (
	"fmt"
	"strings"

	"github.com/tferdous17/rbkv/utils"
)

// Each calls fn for every entry in ascending key order until fn returns false.
func (tree *Tree[K, V]) Each(fn func(key K, value V) bool) {
	if tree.root == nilIndex {
		return
	}
	for idx := tree.minimum(tree.root); idx != nilIndex; idx = tree.successor(idx) {
		if !fn(tree.nodes[idx].key, tree.nodes[idx].value) {
			return
		}
	}
}

// Range calls fn for every entry with from <= key <= to in ascending order until fn returns false.
func (tree *Tree[K, V]) Range(from, to K, fn func(key K, value V) bool) error {
	if tree.compare(from, to) > 0 {
		return utils.ErrInvalidRange
	}
	start, err := tree.Ceiling(from)
	if err != nil {
		// nothing at or above from
		return nil
	}
	for idx := start.id; idx != nilIndex; idx = tree.successor(idx) {
		if tree.compare(tree.nodes[idx].key, to) > 0 {
			break
		}
		if !fn(tree.nodes[idx].key, tree.nodes[idx].value) {
			break
		}
	}
	return nil
}

func (tree *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, tree.size)
	tree.Each(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns all values in ascending key order.
func (tree *Tree[K, V]) Values() []interface{} {
	values := make([]interface{}, 0, tree.size)
	tree.Each(func(_ K, value V) bool {
		values = append(values, value)
		return true
	})
	return values
}

func (tree *Tree[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, tree.size)
	tree.Each(func(key K, value V) bool {
		entries = append(entries, Entry[K, V]{Key: key, Value: value})
		return true
	})
	return entries
}

// Height returns the number of edges on the longest root-to-leaf path, -1 for an empty tree.
func (tree *Tree[K, V]) Height() int {
	return tree.height(tree.root)
}

func (tree *Tree[K, V]) height(idx uint32) int {
	if idx == nilIndex {
		return -1
	}
	return 1 + max(tree.height(tree.nodes[idx].left), tree.height(tree.nodes[idx].right))
}

// BlackHeight returns the number of black nodes on the leftmost path below the root, root excluded.
// On a valid tree every root-to-leaf path has the same count.
func (tree *Tree[K, V]) BlackHeight() int {
	if tree.root == nilIndex {
		return 0
	}
	bh := 0
	for idx := tree.nodes[tree.root].left; ; idx = tree.nodes[idx].left {
		if !tree.isRed(idx) {
			bh++
		}
		if idx == nilIndex {
			return bh
		}
	}
}

// String draws the tree sideways, right subtree on top, red nodes marked with a trailing "*".
func (tree *Tree[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("RedBlackTree\n")
	if tree.root != nilIndex {
		tree.output(tree.root, "", true, &sb)
	}
	return sb.String()
}

func (tree *Tree[K, V]) output(idx uint32, prefix string, isTail bool, sb *strings.Builder) {
	n := &tree.nodes[idx]
	if n.right != nilIndex {
		newPrefix := prefix
		if isTail {
			newPrefix += "│   "
		} else {
			newPrefix += "    "
		}
		tree.output(n.right, newPrefix, false, sb)
	}
	sb.WriteString(prefix)
	if isTail {
		sb.WriteString("└── ")
	} else {
		sb.WriteString("┌── ")
	}
	sb.WriteString(fmt.Sprintf("%v", n.key))
	if n.color == RED {
		sb.WriteString("*")
	}
	sb.WriteString("\n")
	if n.left != nilIndex {
		newPrefix := prefix
		if isTail {
			newPrefix += "    "
		} else {
			newPrefix += "│   "
		}
		tree.output(n.left, newPrefix, true, sb)
	}
}
