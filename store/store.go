package store

// Store is the ordered key-value surface shared by a single Memtable and a sharded Cluster.
type Store interface {
	Put(key, value string) error
	Get(key string) (Record, error)
	Delete(key string) (Record, error)
	Min() (Record, error)
	Max() (Record, error)
	Next(key string) (Record, error)
	Prev(key string) (Record, error)
	Range(from, to string) ([]Record, error)
	Len() int
	Verify() error
}

var (
	_ Store = (*Memtable)(nil)
	_ Store = (*Cluster)(nil)
)
