package cart

import (
	"context"
	"sync"
)

// MemoryStore keeps slots in process memory, namespaced by device.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

// For returns a view of the store restricted to one namespace.
func (m *MemoryStore) For(namespace string) Store {
	return &memorySlot{parent: m, prefix: namespace + "/"}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.slots[key] = v
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return nil
}

type memorySlot struct {
	parent *MemoryStore
	prefix string
}

func (s *memorySlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.parent.Get(ctx, s.prefix+key)
}

func (s *memorySlot) Set(ctx context.Context, key string, value []byte) error {
	return s.parent.Set(ctx, s.prefix+key, value)
}

func (s *memorySlot) Clear(ctx context.Context, key string) error {
	return s.parent.Clear(ctx, s.prefix+key)
}
