package store

import (
	"fmt"
	"sync"
	"time"

	godsutils "github.com/emirpasic/gods/utils"

	"github.com/tferdous17/rbkv/rbtree"
	"github.com/tferdous17/rbkv/utils"
)

const DefaultExpectedKeys = 1024

/*
Our memtable uses our own Red-Black tree as its under-the-hood implementation.
Mutations take the write lock, lookups and ordered reads share the read lock.
*/
type Memtable struct {
	mu           sync.RWMutex
	data         *rbtree.Tree[string, Record]
	filter       *BloomFilter
	expectedKeys uint32
	sizeInBytes  uint32
}

func NewMemtable() *Memtable {
	return NewMemtableWithCapacity(DefaultExpectedKeys, DefaultFalsePositiveRate)
}

// NewMemtableWithCapacity sizes the bloom filter for expectedKeys at false positive rate p. The
// filter grows on its own once more keys arrive.
func NewMemtableWithCapacity(expectedKeys uint32, p float64) *Memtable {
	return &Memtable{
		data:         rbtree.NewWith[string, Record](stringComparator),
		filter:       NewBloomFilter(expectedKeys, p),
		expectedKeys: expectedKeys,
	}
}

func stringComparator(a, b string) int {
	return godsutils.StringComparator(a, b)
}

func (m *Memtable) Put(key, value string) (err error) {
	defer func(start time.Time) {
		observe("put", start, err)
	}(time.Now())

	if err = utils.ValidateKV(key, value); err != nil {
		return err
	}
	record := NewRecord(key, value)

	m.mu.Lock()
	defer m.mu.Unlock()

	rotations := m.data.Rotations()
	if old, found := m.data.Get(key); found {
		m.sizeInBytes -= old.RecordSize
	}
	if replaced := m.data.Put(key, record); !replaced {
		m.addToFilter(key)
		MetricKeys.Inc()
	}
	m.sizeInBytes += record.RecordSize
	MetricRotations.Add(float64(m.data.Rotations() - rotations))
	return nil
}

// addToFilter must be called with the write lock held and key already in the tree.
func (m *Memtable) addToFilter(key string) {
	if !m.filter.Full() {
		m.filter.Add(key)
		return
	}
	// sized too small, rebuild with room to spare
	m.filter.Reset(max(2*m.filter.Capacity(), uint32(m.data.Len())))
	m.data.Each(func(k string, _ Record) bool {
		m.filter.Add(k)
		return true
	})
}

func (m *Memtable) Get(key string) (record Record, err error) {
	defer func(start time.Time) {
		observe("get", start, err)
	}(time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.filter.MightContain(key) {
		return Record{}, utils.ErrKeyNotFound
	}
	record, found := m.data.Get(key)
	if !found {
		return Record{}, utils.ErrKeyNotFound
	}
	if err = record.Validate(); err != nil {
		return Record{}, fmt.Errorf("record %q: %w", key, err)
	}
	return record, nil
}

// Delete removes key and returns the record it held.
func (m *Memtable) Delete(key string) (record Record, err error) {
	defer func(start time.Time) {
		observe("delete", start, err)
	}(time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()

	rotations := m.data.Rotations()
	_, record, err = m.data.Delete(key)
	if err != nil {
		return Record{}, err
	}
	m.sizeInBytes -= record.RecordSize
	MetricKeys.Dec()
	MetricRotations.Add(float64(m.data.Rotations() - rotations))
	return record, nil
}

func (m *Memtable) Min() (record Record, err error) {
	defer func(start time.Time) {
		observe("min", start, err)
	}(time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()
	return nodeRecord(m.data.Minimum())
}

func (m *Memtable) Max() (record Record, err error) {
	defer func(start time.Time) {
		observe("max", start, err)
	}(time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()
	return nodeRecord(m.data.Maximum())
}

// Next returns the record following key, which must be present.
func (m *Memtable) Next(key string) (record Record, err error) {
	defer func(start time.Time) {
		observe("next", start, err)
	}(time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()

	n, err := m.data.Search(key)
	if err != nil {
		return Record{}, err
	}
	return nodeRecord(m.data.Successor(n))
}

// Prev returns the record preceding key, which must be present.
func (m *Memtable) Prev(key string) (record Record, err error) {
	defer func(start time.Time) {
		observe("prev", start, err)
	}(time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()

	n, err := m.data.Search(key)
	if err != nil {
		return Record{}, err
	}
	return nodeRecord(m.data.Predecessor(n))
}

// After returns the first record with a key strictly greater than key, present or not.
func (m *Memtable) After(key string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, err := m.data.Ceiling(key)
	if err != nil {
		return Record{}, utils.ErrNoSuccessor
	}
	if n.Key() == key {
		return nodeRecord(m.data.Successor(n))
	}
	return n.Value(), nil
}

// Before returns the last record with a key strictly smaller than key, present or not.
func (m *Memtable) Before(key string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n, err := m.data.Floor(key)
	if err != nil {
		return Record{}, utils.ErrNoPredecessor
	}
	if n.Key() == key {
		return nodeRecord(m.data.Predecessor(n))
	}
	return n.Value(), nil
}

func (m *Memtable) Floor(key string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return nodeRecord(m.data.Floor(key))
}

func (m *Memtable) Ceiling(key string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return nodeRecord(m.data.Ceiling(key))
}

// Range returns the records with from <= key <= to in ascending order.
func (m *Memtable) Range(from, to string) (records []Record, err error) {
	defer func(start time.Time) {
		observe("range", start, err)
	}(time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()

	err = m.data.Range(from, to, func(_ string, record Record) bool {
		records = append(records, record)
		return true
	})
	return records, err
}

func (m *Memtable) SortedRecords() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]Record, 0, m.data.Len())
	m.data.Each(func(_ string, record Record) bool {
		records = append(records, record)
		return true
	})
	return records
}

func (m *Memtable) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Keys()
}

func (m *Memtable) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Len()
}

func (m *Memtable) SizeInBytes() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sizeInBytes
}

// Verify checks the underlying tree's invariants.
func (m *Memtable) Verify() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.Verify()
}

func (m *Memtable) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	MetricKeys.Sub(float64(m.data.Len()))
	m.data.Clear()
	m.filter.Reset(m.expectedKeys)
	m.sizeInBytes = 0
}

// Dump draws the underlying tree.
func (m *Memtable) Dump() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data.String()
}

func (m *Memtable) Debug() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	utils.Logf("KEYS: %d, HEIGHT: %d, BLACK HEIGHT: %d, ROTATIONS: %d",
		m.data.Len(), m.data.Height(), m.data.BlackHeight(), m.data.Rotations())
	utils.Logf("CURRENT SIZE IN BYTES: %d", m.sizeInBytes)
	m.filter.Debug()
}

func nodeRecord(n rbtree.Node[string, Record], err error) (Record, error) {
	if err != nil {
		return Record{}, err
	}
	return n.Value(), nil
}
