package store

import (
	"context"
	"errors"

	"github.com/goliatone/go-family-records/entity"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrRecordNotFound is returned by FindByID and Update when no row has the ID.
	ErrRecordNotFound = errors.New("store: record not found")
	// ErrDuplicateKey is returned by the memory store when inserting an existing ID.
	ErrDuplicateKey = errors.New("store: duplicate key")
)

// Record constrains T to a pointer to an aggregate struct E.
type Record[E any] interface {
	*E
	entity.Entity
}

// Scope describes the owning reference an aggregate's lists can be narrowed by.
// The zero Scope means the aggregate has no owner.
type Scope[T any] struct {
	// Column is the SQL column holding the owning entity's ID.
	Column string
	// Of extracts the owning entity's ID from a record.
	Of func(T) uuid.UUID
}

// Scoped reports whether the aggregate has an owning reference.
func (s Scope[T]) Scoped() bool {
	return s.Of != nil
}

// Store is the primitive persistence contract for one aggregate type.
type Store[T any] interface {
	// FindByID returns the row with id, soft deleted or not.
	FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (T, error)
	// ListActive returns rows with IsDeleted unset. A non-nil scope restricts
	// the result to rows owned by that entity.
	ListActive(ctx context.Context, db bun.IDB, scope uuid.UUID) ([]T, error)
	Insert(ctx context.Context, db bun.IDB, record T) (T, error)
	Update(ctx context.Context, db bun.IDB, record T) (T, error)
}
