package store

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tferdous17/rbkv/utils"
)

func newCluster(t *testing.T, shards int, keys ...string) *Cluster {
	t.Helper()
	c, err := NewCluster(shards, 64, DefaultFalsePositiveRate)
	require.NoError(t, err)
	for _, key := range keys {
		require.NoError(t, c.Put(key, "val-"+key))
	}
	return c
}

func TestNewCluster_Invalid(t *testing.T) {
	_, err := NewCluster(0, 64, DefaultFalsePositiveRate)
	assert.ErrorIs(t, err, utils.ErrInvalidConfig)
}

func TestCluster_Routing(t *testing.T) {
	var keys []string
	for i := 0; i < 200; i++ {
		keys = append(keys, fmt.Sprintf("key-%03d", i))
	}
	c := newCluster(t, 4, keys...)

	assert.Equal(t, 200, c.Len())
	require.NoError(t, c.Verify())

	populated := 0
	for _, node := range c.Nodes() {
		if node.Store.Len() > 0 {
			populated++
		}
	}
	assert.Greater(t, populated, 1)

	for _, key := range keys {
		record, err := c.Get(key)
		require.NoError(t, err)
		assert.Equal(t, "val-"+key, record.Value)
	}
	assert.Equal(t, keys, c.Keys())
}

func TestCluster_OrderedQueries(t *testing.T) {
	keys := []string{"pear", "apple", "fig", "kiwi", "banana", "mango", "cherry", "date"}
	c := newCluster(t, 3, keys...)

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	assert.Equal(t, sorted, c.Keys())

	min, err := c.Min()
	require.NoError(t, err)
	assert.Equal(t, "apple", min.Key)
	max, err := c.Max()
	require.NoError(t, err)
	assert.Equal(t, "pear", max.Key)

	for i := 0; i < len(sorted)-1; i++ {
		next, err := c.Next(sorted[i])
		require.NoError(t, err)
		assert.Equal(t, sorted[i+1], next.Key)

		prev, err := c.Prev(sorted[i+1])
		require.NoError(t, err)
		assert.Equal(t, sorted[i], prev.Key)
	}
	_, err = c.Next("pear")
	assert.ErrorIs(t, err, utils.ErrNoSuccessor)
	_, err = c.Prev("apple")
	assert.ErrorIs(t, err, utils.ErrNoPredecessor)
	_, err = c.Next("grape")
	assert.ErrorIs(t, err, utils.ErrKeyNotFound)

	records, err := c.Range("banana", "kiwi")
	require.NoError(t, err)
	assert.Equal(t, []string{"banana", "cherry", "date", "fig", "kiwi"}, recordKeys(records))

	_, err = c.Range("z", "a")
	assert.ErrorIs(t, err, utils.ErrInvalidRange)
}

func TestCluster_Empty(t *testing.T) {
	c := newCluster(t, 2)

	_, err := c.Min()
	assert.ErrorIs(t, err, utils.ErrEmptyTree)
	_, err = c.Max()
	assert.ErrorIs(t, err, utils.ErrEmptyTree)
	assert.Empty(t, c.Keys())
	require.NoError(t, c.Verify())
}

func TestCluster_Delete(t *testing.T) {
	c := newCluster(t, 3, "a", "b", "c")

	record, err := c.Delete("b")
	require.NoError(t, err)
	assert.Equal(t, "val-b", record.Value)

	_, err = c.Get("b")
	assert.ErrorIs(t, err, utils.ErrKeyNotFound)
	_, err = c.Delete("b")
	assert.ErrorIs(t, err, utils.ErrKeyNotFound)

	next, err := c.Next("a")
	require.NoError(t, err)
	assert.Equal(t, "c", next.Key)
}

func TestCluster_Validation(t *testing.T) {
	c := newCluster(t, 2)
	assert.ErrorIs(t, c.Put("", "v"), utils.ErrEmptyKey)
	assert.ErrorIs(t, c.Put("k", ""), utils.ErrEmptyValue)
	_, err := c.Get("")
	assert.ErrorIs(t, err, utils.ErrEmptyKey)
	_, err = c.Delete("")
	assert.ErrorIs(t, err, utils.ErrEmptyKey)
}

func TestCluster_VerifyDetectsMisplacedKey(t *testing.T) {
	c := newCluster(t, 2)

	// put a key directly on the shard that does not own it
	key := "stray"
	for _, node := range c.Nodes() {
		if node != c.nodeFor(key) {
			require.NoError(t, node.Store.Put(key, "val"))
		}
	}
	assert.ErrorIs(t, c.Verify(), utils.ErrInvariantViolation)
}

func TestMergeRuns(t *testing.T) {
	runs := [][]Record{
		{NewRecord("a", "1"), NewRecord("d", "1")},
		{},
		{NewRecord("b", "1"), NewRecord("c", "1"), NewRecord("e", "1")},
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, recordKeys(mergeRuns(runs)))
	assert.Empty(t, mergeRuns(nil))
}
