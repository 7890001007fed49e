// Package store provides a generic keyed in-memory store. The memsys command
// service uses it to track live allocation references by address so that the
// free command can resolve a bare address back to a reference.
package store

import "sync"

// Memory keeps entities of type *T mapped by a comparable key K obtained
// from the supplied keyOf function.
type Memory[K comparable, T any] struct {
	mu      sync.RWMutex
	records map[K]*T
	keyOf   func(*T) K
}

// NewMemory creates a new store; keyOf extracts the entity key from a value.
func NewMemory[K comparable, T any](keyOf func(*T) K) *Memory[K, T] {
	return &Memory[K, T]{
		records: make(map[K]*T),
		keyOf:   keyOf,
	}
}

// Put stores or overwrites a record; nil values are silently ignored.
func (s *Memory[K, T]) Put(v *T) {
	if v == nil {
		return
	}
	key := s.keyOf(v)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = v
}

// Get returns a record by key.
func (s *Memory[K, T]) Get(key K) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	return v, ok
}

// Remove deletes a record, reporting whether it existed.
func (s *Memory[K, T]) Remove(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return false
	}
	delete(s.records, key)
	return true
}

// Len returns the number of stored records.
func (s *Memory[K, T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// List returns all stored records.
func (s *Memory[K, T]) List() []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.records))
	for _, v := range s.records {
		out = append(out, v)
	}
	return out
}
