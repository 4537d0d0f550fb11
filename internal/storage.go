package internal

import "sync"

// TabStorage is key-value storage scoped to a single tab
type TabStorage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryTabStorage keeps values for the lifetime of the process
type MemoryTabStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryTabStorage creates an empty in-memory storage
func NewMemoryTabStorage() *MemoryTabStorage {
	return &MemoryTabStorage{values: make(map[string]string)}
}

// Get returns the value stored under key
func (s *MemoryTabStorage) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores value under key
func (s *MemoryTabStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes key
func (s *MemoryTabStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
