// Package repositories declares the storage-sink and audit-sink
// contracts the core consumes as external collaborators (§6). No
// implementation lives here; see pkg/infrastructure for the in-memory
// reference adapters.
package repositories

import (
	"context"

	"github.com/google/uuid"
)

// Identifiable is satisfied by any domain entity exposing its identity.
type Identifiable interface {
	ID() uuid.UUID
	IsDeleted() bool
}

// Store is a generic per-type storage sink. Every operation is
// cancelable via ctx. Save is upsert-by-identifier; LoadAll returns all
// non-soft-deleted items; Delete hard-deletes at the storage tier
// (acceptable since entities carry their own soft-delete flag).
type Store[T Identifiable] interface {
	SaveAll(ctx context.Context, items []T) error
	LoadAll(ctx context.Context) ([]T, error)
	Save(ctx context.Context, item T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (T, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Clear(ctx context.Context) error
}

// ErrNotFound is returned by Get when no item matches the identifier.
type ErrNotFound struct {
	ID uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return "not found: " + e.ID.String()
}
