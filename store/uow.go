package store

import (
	"context"

	"github.com/uptrace/bun"
)

// UnitOfWork runs one logical operation against the store.
// The bun.IDB handed to fn is only valid for the duration of the call.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error
}

type bunUnitOfWork struct {
	db *bun.DB
}

// NewBunUnitOfWork creates a UnitOfWork that wraps each operation in a transaction.
func NewBunUnitOfWork(db *bun.DB) UnitOfWork {
	return &bunUnitOfWork{db: db}
}

// Do commits when fn returns nil and rolls back otherwise, including on panic.
func (u *bunUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	return u.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

// NoopUnitOfWork executes operations without a transaction.
// It's useful with the memory store, which applies each write atomically.
type NoopUnitOfWork struct{}

// NewNoopUnitOfWork creates a NoopUnitOfWork.
func NewNoopUnitOfWork() UnitOfWork {
	return NoopUnitOfWork{}
}

// Do calls fn with a nil bun.IDB after checking ctx.
func (NoopUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, nil)
}
