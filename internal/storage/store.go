// Package storage provides in-memory, mutex-guarded keyed stores for the
// engine's entities. Stores hold values, not pointers: reads hand out copies,
// so callers iterate snapshots without holding the store lock. Cross-entity
// atomicity is composed by the dispatch engine on top; the lock order there
// is always orders before couriers.
package storage

import (
	"sync"

	"p2p-delivery/internal/apperr"
)

// Store is a concurrency-safe keyed store for a single entity type.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

// New creates an empty Store.
func New[T any]() *Store[T] {
	return &Store[T]{items: make(map[string]T)}
}

// Get returns a copy of the entity and whether it exists.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	return v, ok
}

// Put stores the entity under the given id, overwriting any previous value.
func (s *Store[T]) Put(id string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = v
}

// PutNew stores the entity only if the id is unused.
func (s *Store[T]) PutNew(id string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		return apperr.ErrDuplicate
	}
	s.items[id] = v
	return nil
}

// Delete removes the entity if present.
func (s *Store[T]) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Len returns the number of stored entities.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// All returns a snapshot of all entities. The slice and its elements are
// copies; iterating it never blocks writers.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out
}

// Update applies fn to the stored entity atomically. The closure runs under
// the store lock and must not call back into the store or perform I/O. If fn
// returns an error the entity is left unchanged. Returns apperr.ErrNotFound
// for an unknown id.
func (s *Store[T]) Update(id string, fn func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[id]
	if !ok {
		return apperr.ErrNotFound
	}
	if err := fn(&v); err != nil {
		return err
	}
	s.items[id] = v
	return nil
}
