package kv

import "sync"

// MemoryStore keeps slots in memory. Used by tests and the "memory" backend.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots: make(map[string]string),
	}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	if s == nil {
		return "", false, ErrNotConfigured
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	return v, ok, nil
}

// Set replaces the value stored under key.
func (s *MemoryStore) Set(key, value string) error {
	if s == nil {
		return ErrNotConfigured
	}
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = value
	return nil
}
