// internal/store/memory.go
//
// Key-value persistence for the saved game.
// The Store interface is the only contract the persistence adapter relies on:
// per-entry read, write and delete. Two implementations exist:
//   - memory (this file): RWMutex-guarded map, lost on restart. Used by tests
//     and by `-storage memory`.
//   - SQLite (sqlite.go): kv table in the local database file.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("not found")

// Store defines the key-value capability used to persist game state.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set creates or replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex      // guards values
	values map[string][]byte // keyed by storage key
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{values: make(map[string][]byte)}
}

// Set stores a copy of value so callers may reuse their buffer.
func (m *memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Get looks up key and returns a copy of its value.
func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return append([]byte(nil), v...), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
