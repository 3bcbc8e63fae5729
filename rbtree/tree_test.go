package rbtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tferdous17/rbkv/utils"
)

func newIntTree(t *testing.T, keys ...int) *Tree[int, string] {
	t.Helper()
	tree := New[int, string]()
	for _, k := range keys {
		require.NoError(t, tree.Insert(k, "v"+string(rune('0'+k%10))))
		require.NoError(t, tree.Verify())
	}
	return tree
}

// walk the tree from the minimum with Successor
func ascending[K any, V any](t *testing.T, tree *Tree[K, V]) []K {
	t.Helper()
	var keys []K
	n, err := tree.Minimum()
	for err == nil {
		keys = append(keys, n.Key())
		n, err = tree.Successor(n)
	}
	if !tree.Empty() {
		require.ErrorIs(t, err, utils.ErrNoSuccessor)
	}
	return keys
}

func TestInsertThenDeleteRoot(t *testing.T) {
	tree := newIntTree(t, 5, 3, 8, 1, 7, 2, 10)

	assert.Equal(t, []int{1, 2, 3, 5, 7, 8, 10}, tree.Keys())
	assert.Equal(t, []int{1, 2, 3, 5, 7, 8, 10}, ascending(t, tree))
	assert.Equal(t, BLACK, tree.Root().Color())
	assert.Equal(t, 7, tree.Len())

	key, value, err := tree.Delete(5)
	require.NoError(t, err)
	assert.Equal(t, 5, key)
	assert.Equal(t, "v5", value)
	require.NoError(t, tree.Verify())

	assert.Equal(t, []int{1, 2, 3, 7, 8, 10}, tree.Keys())
	assert.Equal(t, 6, tree.Len())

	n, err := tree.Search(10)
	require.NoError(t, err)
	assert.Equal(t, 10, n.Key())

	_, err = tree.Search(5)
	assert.ErrorIs(t, err, utils.ErrKeyNotFound)
}

func TestInsert(t *testing.T) {
	t.Run("duplicate is rejected", func(t *testing.T) {
		tree := newIntTree(t, 2, 1, 3)
		err := tree.Insert(3, "other")
		assert.ErrorIs(t, err, utils.ErrDuplicateKey)
		v, ok := tree.Get(3)
		assert.True(t, ok)
		assert.Equal(t, "v3", v)
		assert.Equal(t, 3, tree.Len())
	})

	t.Run("put overwrites", func(t *testing.T) {
		tree := newIntTree(t, 2, 1, 3)
		assert.True(t, tree.Put(3, "other"))
		assert.False(t, tree.Put(4, "new"))
		v, _ := tree.Get(3)
		assert.Equal(t, "other", v)
		assert.Equal(t, 4, tree.Len())
		require.NoError(t, tree.Verify())
	})

	t.Run("first insert becomes black root", func(t *testing.T) {
		tree := newIntTree(t, 42)
		assert.Equal(t, 42, tree.Root().Key())
		assert.Equal(t, BLACK, tree.Root().Color())
		assert.True(t, tree.Root().Parent().IsZero())
	})

	t.Run("ascending inserts stay balanced", func(t *testing.T) {
		tree := New[int, int]()
		for i := 0; i < 1024; i++ {
			before := tree.Rotations()
			require.NoError(t, tree.Insert(i, i))
			assert.LessOrEqual(t, tree.Rotations()-before, uint64(2))
		}
		require.NoError(t, tree.Verify())
		// 2*log2(1025) is just over 20
		assert.LessOrEqual(t, tree.Height(), 20)
	})
}

func TestSearch(t *testing.T) {
	tree := newIntTree(t, 50, 20, 80, 10, 30, 70, 90)
	for _, k := range []int{50, 20, 80, 10, 30, 70, 90} {
		n, err := tree.Search(k)
		require.NoError(t, err)
		assert.Equal(t, k, n.Key())
		assert.True(t, tree.Contains(k))
	}
	for _, k := range []int{0, 15, 55, 100} {
		_, err := tree.Search(k)
		assert.ErrorIs(t, err, utils.ErrKeyNotFound)
		_, ok := tree.Get(k)
		assert.False(t, ok)
	}
}

func TestEmptyTree(t *testing.T) {
	tree := New[string, int]()

	_, err := tree.Minimum()
	assert.ErrorIs(t, err, utils.ErrEmptyTree)
	_, err = tree.Maximum()
	assert.ErrorIs(t, err, utils.ErrEmptyTree)
	_, err = tree.Successor(Node[string, int]{})
	assert.ErrorIs(t, err, utils.ErrEmptyTree)
	_, _, err = tree.Delete("missing")
	assert.ErrorIs(t, err, utils.ErrKeyNotFound)

	assert.True(t, tree.Root().IsZero())
	assert.Equal(t, -1, tree.Height())
	assert.Equal(t, 0, tree.BlackHeight())
	assert.Empty(t, tree.Keys())
	assert.NoError(t, tree.Verify())
}

func TestMinimumMaximum(t *testing.T) {
	tree := newIntTree(t, 50, 20, 80, 10, 30, 70, 90, 25)

	lo, err := tree.Minimum()
	require.NoError(t, err)
	assert.Equal(t, 10, lo.Key())
	hi, err := tree.Maximum()
	require.NoError(t, err)
	assert.Equal(t, 90, hi.Key())

	// subtree rooted at 20 holds 10, 20, 25, 30
	sub, err := tree.Search(20)
	require.NoError(t, err)
	subMin, err := tree.MinimumOf(sub)
	require.NoError(t, err)
	subMax, err := tree.MaximumOf(sub)
	require.NoError(t, err)
	assert.Equal(t, 10, subMin.Key())
	assert.Equal(t, 30, subMax.Key())

	_, err = tree.MinimumOf(Node[int, string]{})
	assert.ErrorIs(t, err, utils.ErrEmptyTree)
}

func TestSuccessorPredecessor(t *testing.T) {
	tree := newIntTree(t, 50, 20, 80, 10, 30, 70, 90)

	hi, err := tree.Maximum()
	require.NoError(t, err)
	_, err = tree.Successor(hi)
	assert.ErrorIs(t, err, utils.ErrNoSuccessor)

	lo, err := tree.Minimum()
	require.NoError(t, err)
	_, err = tree.Predecessor(lo)
	assert.ErrorIs(t, err, utils.ErrNoPredecessor)

	var descending []int
	for n := hi; ; {
		descending = append(descending, n.Key())
		if n, err = tree.Predecessor(n); err != nil {
			break
		}
	}
	assert.Equal(t, []int{90, 80, 70, 50, 30, 20, 10}, descending)

	// 30 has no right child, its successor is found by climbing
	n, _ := tree.Search(30)
	next, err := tree.Successor(n)
	require.NoError(t, err)
	assert.Equal(t, 50, next.Key())
}

func TestFloorCeiling(t *testing.T) {
	tree := newIntTree(t, 10, 20, 30, 40)

	tests := []struct {
		key             int
		floor, ceiling  int
		noFloor, noCeil bool
	}{
		{key: 5, noFloor: true, ceiling: 10},
		{key: 10, floor: 10, ceiling: 10},
		{key: 25, floor: 20, ceiling: 30},
		{key: 40, floor: 40, ceiling: 40},
		{key: 45, floor: 40, noCeil: true},
	}
	for _, tt := range tests {
		floor, err := tree.Floor(tt.key)
		if tt.noFloor {
			assert.ErrorIs(t, err, utils.ErrKeyNotFound)
		} else if assert.NoError(t, err) {
			assert.Equal(t, tt.floor, floor.Key(), "floor(%d)", tt.key)
		}
		ceiling, err := tree.Ceiling(tt.key)
		if tt.noCeil {
			assert.ErrorIs(t, err, utils.ErrKeyNotFound)
		} else if assert.NoError(t, err) {
			assert.Equal(t, tt.ceiling, ceiling.Key(), "ceiling(%d)", tt.key)
		}
	}
}

func TestRange(t *testing.T) {
	tree := newIntTree(t, 1, 3, 5, 7, 9, 11)

	collect := func(from, to int) []int {
		var keys []int
		require.NoError(t, tree.Range(from, to, func(k int, _ string) bool {
			keys = append(keys, k)
			return true
		}))
		return keys
	}
	assert.Equal(t, []int{3, 5, 7}, collect(2, 8))
	assert.Equal(t, []int{1, 3, 5, 7, 9, 11}, collect(0, 100))
	assert.Equal(t, []int{5}, collect(5, 5))
	assert.Empty(t, collect(12, 20))

	err := tree.Range(8, 2, func(int, string) bool { return true })
	assert.ErrorIs(t, err, utils.ErrInvalidRange)

	var stopped []int
	tree.Each(func(k int, _ string) bool {
		stopped = append(stopped, k)
		return len(stopped) < 2
	})
	assert.Equal(t, []int{1, 3}, stopped)
}

func TestHandleInvalidation(t *testing.T) {
	tree := newIntTree(t, 2, 1, 3)
	two, _ := tree.Search(2)
	three, _ := tree.Search(3)

	// 2 has two children, so 3 is relocated into 2's node
	_, _, err := tree.Delete(2)
	require.NoError(t, err)
	require.NoError(t, tree.Verify())

	assert.False(t, two.Valid())
	assert.False(t, three.Valid())
	_, err = tree.Successor(three)
	assert.ErrorIs(t, err, utils.ErrInvalidNode)

	fresh, err := tree.Search(3)
	require.NoError(t, err)
	assert.True(t, fresh.Valid())
	assert.Equal(t, 3, fresh.Key())

	// a handle from another tree is rejected even when the slot exists
	other := newIntTree(t, 1, 2, 3)
	foreign, _ := other.Search(1)
	_, err = tree.Successor(foreign)
	assert.ErrorIs(t, err, utils.ErrInvalidNode)
}

func TestReleasedSlotsAreReused(t *testing.T) {
	tree := newIntTree(t, 1, 2, 3, 4)
	old, _ := tree.Search(4)
	_, _, err := tree.Delete(4)
	require.NoError(t, err)
	require.NoError(t, tree.Insert(5, "v5"))

	assert.Len(t, tree.nodes, 5) // sentinel + 4 slots, nothing grew
	assert.False(t, old.Valid())
	n, _ := tree.Search(5)
	assert.Equal(t, old.id, n.id)
}

func TestClear(t *testing.T) {
	tree := newIntTree(t, 1, 2, 3)
	n, _ := tree.Search(2)
	tree.Clear()
	assert.True(t, tree.Empty())
	assert.False(t, n.Valid())
	assert.NoError(t, tree.Verify())
	require.NoError(t, tree.Insert(7, "v7"))
	assert.Equal(t, []int{7}, tree.Keys())
}

func TestClearThenRefill(t *testing.T) {
	tree := newIntTree(t, 1, 2, 3)
	stale, err := tree.Search(2)
	require.NoError(t, err)

	tree.Clear()
	for _, k := range []int{10, 20, 30} {
		require.NoError(t, tree.Insert(k, "v"))
	}

	// the old slot now holds 20, the handle must not see it
	refilled, err := tree.Search(20)
	require.NoError(t, err)
	require.Equal(t, stale.id, refilled.id)

	assert.False(t, stale.Valid())
	assert.Zero(t, stale.Key())
	assert.Empty(t, stale.Value())
	assert.Equal(t, BLACK, stale.Color())
	assert.True(t, stale.Parent().IsZero())
	assert.True(t, stale.Left().IsZero())
	assert.True(t, stale.Right().IsZero())
	assert.Equal(t, "<nil>", stale.String())

	_, err = tree.Successor(stale)
	assert.ErrorIs(t, err, utils.ErrInvalidNode)
	_, err = tree.Predecessor(stale)
	assert.ErrorIs(t, err, utils.ErrInvalidNode)
	_, err = tree.IteratorAt(stale)
	assert.ErrorIs(t, err, utils.ErrInvalidNode)
}

func TestStaleHandleAccessors(t *testing.T) {
	tree := newIntTree(t, 1, 2, 3)
	one, _ := tree.Search(1)
	_, _, err := tree.Delete(1)
	require.NoError(t, err)

	assert.False(t, one.Valid())
	assert.Zero(t, one.Key())
	assert.Equal(t, Entry[int, string]{}, one.Entry())

	// after Clear the slot index is past the end of the new arena
	tree.Clear()
	three := Node[int, string]{tree: tree, id: 3, gen: 0, epoch: tree.epoch}
	assert.False(t, three.Valid())
	assert.Zero(t, three.Key())
}

func TestString(t *testing.T) {
	tree := newIntTree(t, 2, 1, 3)
	out := tree.String()
	assert.True(t, strings.HasPrefix(out, "RedBlackTree\n"))
	assert.Contains(t, out, "└── 2\n")
	assert.Contains(t, out, "┌── 3*\n")
	assert.Contains(t, out, "└── 1*\n")
}

func TestCustomComparator(t *testing.T) {
	// reverse order
	tree := NewWith[int, int](func(a, b int) int { return b - a })
	for _, k := range []int{3, 1, 4, 1, 5, 9, 2, 6} {
		tree.Put(k, k)
	}
	assert.Equal(t, []int{9, 6, 5, 4, 3, 2, 1}, tree.Keys())
	assert.NoError(t, tree.Verify())
}
