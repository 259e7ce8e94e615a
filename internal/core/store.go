package core

import (
	"sort"
	"sync"
)

// Store holds the current Table of each loaded catalog.
//
// Tables are immutable, so a reader that has fetched one keeps a consistent
// snapshot while a reload swaps in its replacement. The lock only guards the map.
type Store struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{tables: make(map[string]*Table)}
}

// Get returns the current table for key.
func (s *Store) Get(key string) (*Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[key]
	return t, ok
}

// Put installs t as the table for t.Key, replacing any previous one.
func (s *Store) Put(t *Table) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[t.Key] = t
}

// Len returns the number of loaded catalogs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tables)
}

// Keys returns the loaded catalog keys, sorted.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.tables))
	for k := range s.tables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
