// Package entities holds the disaster-relief domain model: Need, Supply,
// Shipment, Location, and the allocation records a matching pass produces.
// Entities carry their own invariants and safe mutators; nothing in this
// package performs I/O.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// EntityBase is embedded by value in every domain entity to share the
// identifier/timestamp/soft-delete fields. Composition, not inheritance:
// no behavior here dispatches on the embedding type.
type EntityBase struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
	deleted   bool
}

// NewEntityBase assigns a fresh identifier and stamps both timestamps to
// the same instant.
func NewEntityBase(now time.Time) EntityBase {
	return EntityBase{
		id:        uuid.New(),
		createdAt: now,
		updatedAt: now,
	}
}

// ID returns the entity's stable, opaque identifier. Never reassigned.
func (b EntityBase) ID() uuid.UUID { return b.id }

// CreatedAt is immutable after construction.
func (b EntityBase) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt is bumped by any successful mutator.
func (b EntityBase) UpdatedAt() time.Time { return b.updatedAt }

// IsDeleted reports whether the entity has been soft-deleted.
func (b EntityBase) IsDeleted() bool { return b.deleted }

// touch bumps the update timestamp. Called by every mutator on the
// embedding entity.
func (b *EntityBase) touch(now time.Time) {
	b.updatedAt = now
}

// markDeleted soft-deletes the entity. Idempotent: a second call still
// leaves deleted=true, but per spec it still bumps the update timestamp
// like any other successful mutator.
func (b *EntityBase) markDeleted(now time.Time) {
	b.deleted = true
	b.touch(now)
}
