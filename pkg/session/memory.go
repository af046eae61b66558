package session

import (
	"context"
	"sync"
)

// Memory is an in-process Store.
type Memory struct {
	kvStore
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*SQLite)(nil)
)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{kvStore: kvStore{kv: &memoryKV{values: make(map[string]string)}}}
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memoryKV) get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryKV) del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
