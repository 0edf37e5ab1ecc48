// Package memory provides the reference in-memory Store[T] adapter used
// by the CLI and tests; a generic replacement for the teacher's
// per-entity repositories (InventoryRepository, DemandRepository, ...).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/relieflogix/relief/pkg/domain/repositories"
)

// Store is a mutex-protected, in-memory implementation of
// repositories.Store[T], keyed by entity ID. Safe for concurrent use.
type Store[T repositories.Identifiable] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]T
}

// NewStore constructs an empty store.
func NewStore[T repositories.Identifiable]() *Store[T] {
	return &Store[T]{items: make(map[uuid.UUID]T)}
}

// SaveAll replaces every entry with the same ID already present and
// adds any new ones; it does not clear entries absent from items.
func (s *Store[T]) SaveAll(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		s.items[item.ID()] = item
	}
	return nil
}

// LoadAll returns every non-soft-deleted stored entry, sorted by ID for
// deterministic iteration order.
func (s *Store[T]) LoadAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if item.IsDeleted() {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

// Save inserts or overwrites a single entry.
func (s *Store[T]) Save(ctx context.Context, item T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID()] = item
	return nil
}

// Delete removes the entry with the given ID. Returns ErrNotFound if
// absent.
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return &repositories.ErrNotFound{ID: id}
	}
	delete(s.items, id)
	return nil
}

// Get returns the entry with the given ID, or ErrNotFound.
func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return zero, &repositories.ErrNotFound{ID: id}
	}
	return item, nil
}

// Exists reports whether id is present.
func (s *Store[T]) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok, nil
}

// Clear removes every entry.
func (s *Store[T]) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[uuid.UUID]T)
	return nil
}

var _ repositories.Store[*stubIdentifiable] = (*Store[*stubIdentifiable])(nil)

// stubIdentifiable only exists to pin the interface-compliance check
// above to a concrete type parameter.
type stubIdentifiable struct{}

func (s *stubIdentifiable) ID() uuid.UUID   { return uuid.UUID{} }
func (s *stubIdentifiable) IsDeleted() bool { return false }
