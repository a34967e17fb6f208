package databases

import (
	"context"
	"sync"
)

// MemoryBackend keeps every collection in process memory
type MemoryBackend struct {
	mu          sync.RWMutex
	collections map[string]Snapshot
}

// NewMemoryBackend returns an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{collections: make(map[string]Snapshot)}
}

// Load returns a copy of the collection; a missing collection is empty
func (m *MemoryBackend) Load(ctx context.Context, collection string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[collection]
	if !ok {
		return Snapshot{}, nil
	}
	return c.Clone(), nil
}

// Put replaces the record
func (m *MemoryBackend) Put(ctx context.Context, collection, id string, record Record) error {
	rec, err := Normalize(record)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		c = Snapshot{}
		m.collections[collection] = c
	}
	c[id] = rec
	return nil
}

// Patch merges the patch into the record, creating it if absent
func (m *MemoryBackend) Patch(ctx context.Context, collection, id string, patch Record) error {
	p, err := Normalize(patch)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		c = Snapshot{}
		m.collections[collection] = c
	}
	c[id] = merge(c[id], p)
	return nil
}
