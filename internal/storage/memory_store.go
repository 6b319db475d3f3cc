package storage

import (
	"sync"

	"cocktailgrip/internal/domain"
)

// MemoryStore is an in-memory KeyValueStore for tests and ephemeral runs.
// SetErr, when non-nil, is returned by every SetItem call.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[string]string
	writes int
	SetErr error
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

func (s *MemoryStore) GetItem(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.items[key] = value
	s.writes++
	return nil
}

func (s *MemoryStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Writes returns how many successful SetItem calls were made
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
