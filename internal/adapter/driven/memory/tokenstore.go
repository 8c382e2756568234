// Package memory implements the TokenStore port in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/ericfisherdev/notty/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore keeps tokens in a map for the lifetime of the process.
type TokenStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewTokenStore creates an empty TokenStore.
func NewTokenStore() *TokenStore {
	return &TokenStore{values: make(map[string]string)}
}

// Get returns the value stored under key, or "" if none.
func (s *TokenStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

// Set stores or replaces the value under key.
func (s *TokenStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
