package store

import (
	"errors"
	"fmt"

	"github.com/serialx/hashring"
	"golang.org/x/sync/errgroup"

	"github.com/tferdous17/rbkv/utils"
)

type Node struct {
	ID    string
	Store *Memtable
}

// Cluster shards keys across memtables with a consistent hash ring. Point operations go to the
// owning shard; ordered reads ask every shard and merge the answers.
type Cluster struct {
	hashRing *hashring.HashRing
	nodes    map[string]*Node
	order    []*Node
}

func NewCluster(numOfNodes int, expectedKeys uint32, p float64) (*Cluster, error) {
	if numOfNodes < 1 {
		return nil, fmt.Errorf("%w: cluster needs at least one node, got %d", utils.ErrInvalidConfig, numOfNodes)
	}
	c := &Cluster{nodes: make(map[string]*Node, numOfNodes)}
	var nodeIDs []string

	for i := 0; i < numOfNodes; i++ {
		node := &Node{
			ID:    fmt.Sprintf("node-%d", i+1),
			Store: NewMemtableWithCapacity(expectedKeys, p),
		}
		c.nodes[node.ID] = node
		c.order = append(c.order, node)
		nodeIDs = append(nodeIDs, node.ID)
	}

	c.hashRing = hashring.New(nodeIDs)
	return c, nil
}

// nodeFor returns the shard that owns key.
func (c *Cluster) nodeFor(key string) *Node {
	nodeID, _ := c.hashRing.GetNode(key)
	return c.nodes[nodeID]
}

func (c *Cluster) Nodes() []*Node {
	return c.order
}

func (c *Cluster) Put(key, value string) error {
	if err := utils.ValidateKV(key, value); err != nil {
		return err
	}
	return c.nodeFor(key).Store.Put(key, value)
}

func (c *Cluster) Get(key string) (Record, error) {
	if err := utils.ValidateKey(key); err != nil {
		return Record{}, err
	}
	return c.nodeFor(key).Store.Get(key)
}

func (c *Cluster) Delete(key string) (Record, error) {
	if err := utils.ValidateKey(key); err != nil {
		return Record{}, err
	}
	return c.nodeFor(key).Store.Delete(key)
}

// fanOut runs fn against every shard concurrently. Results are indexed by shard position.
func (c *Cluster) fanOut(fn func(i int, node *Node) error) error {
	var g errgroup.Group
	for i, node := range c.order {
		g.Go(func() error {
			return fn(i, node)
		})
	}
	return g.Wait()
}

// pick asks every shard for one record and keeps the best by less. Shards answering with miss are
// skipped; if all of them miss, miss is returned.
func (c *Cluster) pick(ask func(*Memtable) (Record, error), miss error, less func(a, b Record) bool) (Record, error) {
	found := make([]*Record, len(c.order))
	err := c.fanOut(func(i int, node *Node) error {
		record, err := ask(node.Store)
		if errors.Is(err, miss) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", node.ID, err)
		}
		found[i] = &record
		return nil
	})
	if err != nil {
		return Record{}, err
	}

	var best *Record
	for _, record := range found {
		if record != nil && (best == nil || less(*record, *best)) {
			best = record
		}
	}
	if best == nil {
		return Record{}, miss
	}
	return *best, nil
}

func byKey(a, b Record) bool {
	return a.Key < b.Key
}

func byKeyDesc(a, b Record) bool {
	return a.Key > b.Key
}

func (c *Cluster) Min() (Record, error) {
	return c.pick((*Memtable).Min, utils.ErrEmptyTree, byKey)
}

func (c *Cluster) Max() (Record, error) {
	return c.pick((*Memtable).Max, utils.ErrEmptyTree, byKeyDesc)
}

// Next returns the record with the smallest key greater than key across all shards. key itself
// must be stored.
func (c *Cluster) Next(key string) (Record, error) {
	if _, err := c.Get(key); err != nil {
		return Record{}, err
	}
	return c.pick(func(m *Memtable) (Record, error) {
		return m.After(key)
	}, utils.ErrNoSuccessor, byKey)
}

// Prev mirrors Next.
func (c *Cluster) Prev(key string) (Record, error) {
	if _, err := c.Get(key); err != nil {
		return Record{}, err
	}
	return c.pick(func(m *Memtable) (Record, error) {
		return m.Before(key)
	}, utils.ErrNoPredecessor, byKeyDesc)
}

func (c *Cluster) Range(from, to string) ([]Record, error) {
	if from > to {
		return nil, utils.ErrInvalidRange
	}
	runs := make([][]Record, len(c.order))
	err := c.fanOut(func(i int, node *Node) error {
		records, err := node.Store.Range(from, to)
		runs[i] = records
		return err
	})
	if err != nil {
		return nil, err
	}
	return mergeRuns(runs), nil
}

func (c *Cluster) SortedRecords() []Record {
	runs := make([][]Record, len(c.order))
	_ = c.fanOut(func(i int, node *Node) error {
		runs[i] = node.Store.SortedRecords()
		return nil
	})
	return mergeRuns(runs)
}

func (c *Cluster) Keys() []string {
	records := c.SortedRecords()
	keys := make([]string, len(records))
	for i, record := range records {
		keys[i] = record.Key
	}
	return keys
}

func (c *Cluster) Len() int {
	total := 0
	for _, node := range c.order {
		total += node.Store.Len()
	}
	return total
}

// Verify checks every shard's tree and that each key lives on the shard the ring assigns it.
func (c *Cluster) Verify() error {
	return c.fanOut(func(_ int, node *Node) error {
		if err := node.Store.Verify(); err != nil {
			return fmt.Errorf("%s: %w", node.ID, err)
		}
		for _, key := range node.Store.Keys() {
			if owner := c.nodeFor(key); owner != node {
				return fmt.Errorf("%w: key %q stored on %s but owned by %s",
					utils.ErrInvariantViolation, key, node.ID, owner.ID)
			}
		}
		return nil
	})
}

func (c *Cluster) Diagnostics() {
	utils.LogCYAN("DIAGNOSTICS:")
	for _, node := range c.order {
		utils.LogCYAN("%s, num keys: %d, size in bytes: %d", node.ID, node.Store.Len(), node.Store.SizeInBytes())
	}
}
