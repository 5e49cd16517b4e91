package store

import (
	"github.com/heysubinoy/kvs/pkg/kv"
)

// MemStore is a volatile, map-backed implementation of the kv.Store interface.
// It holds no lock: a MemStore belongs to a single owner, and callers that share
// one across goroutines must serialize access themselves.
type MemStore struct {
	data map[string]string
}

// Compile-time check to ensure MemStore implements kv.Store.
var _ kv.Store = (*MemStore)(nil)

// NewMemStore creates and returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		data: make(map[string]string),
	}
}

// Get retrieves a value by key from the store.
// Returns the value and true if found, empty string and false otherwise.
func (s *MemStore) Get(key string) (string, bool) {
	val, ok := s.data[key]
	return val, ok
}

// Set stores a key-value pair, overwriting any existing value.
func (s *MemStore) Set(key, value string) {
	s.data[key] = value
}

// Remove deletes a key from the store. Absent keys are ignored.
func (s *MemStore) Remove(key string) {
	delete(s.data, key)
}

// Len returns the number of entries.
func (s *MemStore) Len() int {
	return len(s.data)
}
