// Package store is the entity store: one keyed table per entity type with
// monotonic id allocation and CRUD primitives. It knows nothing about the
// relationships between entity types.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned by CreateUnless when a conflicting record exists.
	ErrConflict = errors.New("conflicting record exists")
)

// Entity is the pointer-method set every stored record type provides.
type Entity[T any] interface {
	*T
	Key() int64
	Assign(id int64, at time.Time)
}

// Table is a keyed record table for one entity type.
//
// Ids start at 1, grow by one per Create and are never reused, even after a
// delete. Compound read-then-write operations (CreateUnless, Update,
// DeleteFirst) run as a single critical section. List returns records in
// ascending id order, which is insertion order.
type Table[T any] interface {
	Create(ctx context.Context, rec T) (T, error)
	// CreateUnless inserts rec unless some stored record satisfies conflict,
	// in which case it returns ErrConflict.
	CreateUnless(ctx context.Context, rec T, conflict func(T) bool) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	// Update applies mutate to the stored record and persists the result.
	// mutate must not change the record key.
	Update(ctx context.Context, id int64, mutate func(*T)) (T, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// DeleteFirst removes the lowest-id record satisfying match.
	DeleteFirst(ctx context.Context, match func(T) bool) (bool, error)
	// List returns every record satisfying match; a nil match selects all.
	List(ctx context.Context, match func(T) bool) ([]T, error)
}

// Clock supplies creation timestamps.
type Clock func() time.Time
