package json

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/drakos74/free-cluster/internal/storage"
)

// LocalShard creates in-memory storage shards holding at most capacity values each.
// A capacity below 1 keeps everything.
func LocalShard(capacity int) storage.Shard {
	return func(shard string) (storage.Persistence, error) {
		return NewLocalStorage(capacity), nil
	}
}

// LocalStorage keeps the json encoded values in memory.
// Once full, storing a new key drops the oldest one.
type LocalStorage struct {
	capacity int
	values   map[storage.Key][]byte
	order    []storage.Key
	mutex    *sync.RWMutex
}

// NewLocalStorage creates an in-memory store for the given number of values.
func NewLocalStorage(capacity int) *LocalStorage {
	return &LocalStorage{
		capacity: capacity,
		values:   make(map[storage.Key][]byte),
		order:    make([]storage.Key, 0),
		mutex:    new(sync.RWMutex),
	}
}

func (l *LocalStorage) Store(k storage.Key, value interface{}) error {
	bb, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode '%s': %w", k.Path(), err)
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	if _, ok := l.values[k]; !ok {
		l.order = append(l.order, k)
	}
	l.values[k] = bb
	for l.capacity > 0 && len(l.order) > l.capacity {
		delete(l.values, l.order[0])
		l.order = l.order[1:]
	}
	return nil
}

func (l *LocalStorage) Load(k storage.Key, value interface{}) error {
	l.mutex.RLock()
	bb, ok := l.values[k]
	l.mutex.RUnlock()

	if !ok {
		return fmt.Errorf("no value for '%s': %w", k.Path(), storage.NotFoundErr)
	}
	if err := json.Unmarshal(bb, value); err != nil {
		return fmt.Errorf("could not decode '%s': %v: %w", k.Path(), err, storage.CouldNotLoadErr)
	}
	return nil
}

// Len returns the number of stored values.
func (l *LocalStorage) Len() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return len(l.values)
}
