// Package repository implements key store backends for automatic key
// management: an in-memory store for embedding and tests, and SQL-backed
// stores for PostgreSQL and MySQL that survive process restarts.
package repository

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
)

// MemoryKeyStore is an in-process key store backed by a map.
//
// It is safe for concurrent use and suitable for tests and single-process
// embedding; values do not survive a restart.
type MemoryKeyStore struct {
	mu   sync.Mutex
	keys map[string][]byte
}

// NewMemoryKeyStore creates an empty in-memory key store.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{keys: make(map[string][]byte)}
}

// GetOrCreate returns the value stored under name, generating and storing
// length random bytes on first use. The mutex makes the get-or-create atomic
// for concurrent callers within the process.
func (s *MemoryKeyStore) GetOrCreate(ctx context.Context, name string, length int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value, ok := s.keys[name]; ok {
		out := make([]byte, len(value))
		copy(out, value)
		return out, nil
	}

	value := make([]byte, length)
	if _, err := rand.Read(value); err != nil {
		return nil, fmt.Errorf("failed to generate key material: %w", err)
	}
	s.keys[name] = value

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}
