package scores

import "sync"

// Store defines the key-value operations the board needs
type Store interface {
	// Get returns the value stored under key and whether it was present
	Get(key string) (string, bool, error)

	// Set stores value under key
	Set(key, value string) error
}

// MemoryStore implements Store in memory
type MemoryStore struct {
	values map[string]string
	mu     sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value stored under key
func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

// Set stores value under key
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
