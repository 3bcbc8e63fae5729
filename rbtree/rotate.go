package rbtree

//	    x                y
//	   / \              / \
//	  a   y    <=>     x   c
//	     / \          / \
//	    b   c        a   b
//
// rotateLeft goes left to right, rotateRight right to left. Neither changes colors.

func (tree *Tree[K, V]) rotateLeft(x uint32) {
	y := tree.nodes[x].right
	if x == nilIndex || y == nilIndex {
		return
	}

	// y's left subtree becomes x's right subtree
	tree.nodes[x].right = tree.nodes[y].left
	if tree.nodes[y].left != nilIndex {
		tree.nodes[tree.nodes[y].left].parent = x
	}

	tree.replaceChild(tree.nodes[x].parent, x, y)

	tree.nodes[y].left = x
	tree.nodes[x].parent = y
	tree.rotations++
}

func (tree *Tree[K, V]) rotateRight(x uint32) {
	y := tree.nodes[x].left
	if x == nilIndex || y == nilIndex {
		return
	}

	tree.nodes[x].left = tree.nodes[y].right
	if tree.nodes[y].right != nilIndex {
		tree.nodes[tree.nodes[y].right].parent = x
	}

	tree.replaceChild(tree.nodes[x].parent, x, y)

	tree.nodes[y].right = x
	tree.nodes[x].parent = y
	tree.rotations++
}

// replaceChild points parent's link to old at replacement instead, and hands parent to replacement.
// A nilIndex parent means old was the root. replacement may be the sentinel, whose parent is then
// set as well: delete fixup reads it to find the parent of an empty position.
func (tree *Tree[K, V]) replaceChild(parent, old, replacement uint32) {
	tree.nodes[replacement].parent = parent
	switch {
	case parent == nilIndex:
		tree.root = replacement
	case old == tree.nodes[parent].left:
		tree.nodes[parent].left = replacement
	default:
		tree.nodes[parent].right = replacement
	}
}
