// Package settings provides the option storage the client reads API keys
// from and saves them to.
package settings

import (
	"context"
	"sync"
)

// Store is a named option store owned by the host application
type Store interface {
	// Get returns the value of name and whether it is set
	Get(ctx context.Context, name string) (string, bool, error)
	// Set stores value under name, replacing any previous value
	Set(ctx context.Context, name, value string) error
}

// MemoryStore is a Store kept in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	options map[string]string
}

// NewMemoryStore creates a MemoryStore holding a copy of initial
func NewMemoryStore(initial map[string]string) *MemoryStore {
	options := make(map[string]string, len(initial))
	for k, v := range initial {
		options[k] = v
	}
	return &MemoryStore{options: options}
}

// Get implements Store
func (s *MemoryStore) Get(_ context.Context, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.options[name]
	return v, ok, nil
}

// Set implements Store
func (s *MemoryStore) Set(_ context.Context, name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options[name] = value
	return nil
}
