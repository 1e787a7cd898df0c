package recent

import (
	"context"
	"sync"
)

// memoryBackend keeps lists in process memory. Each Get and Set is atomic on
// its own; a read-modify-write spanning both is not.
type memoryBackend struct {
	mu    sync.RWMutex
	lists map[string][]string
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{lists: make(map[string][]string)}
}

func (m *memoryBackend) Get(_ context.Context, key string) ([]string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items, ok := m.lists[key]
	if !ok {
		return nil, false, nil
	}
	return copyList(items), true, nil
}

func (m *memoryBackend) Set(_ context.Context, key string, items []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = copyList(items)
	return nil
}

func copyList(items []string) []string {
	cp := make([]string, len(items))
	copy(cp, items)
	return cp
}
