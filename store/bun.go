package store

import (
	"context"
	"database/sql"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// bunStore persists one aggregate type through bun. Inserts go through the
// go-repository-bun repository so ID assignment follows its ModelHandlers;
// reads and updates are issued directly so deleted rows stay visible to
// FindByID and every column is written on Update.
type bunStore[E any, T Record[E]] struct {
	repo  repository.Repository[T]
	scope Scope[T]
}

// NewBunStore creates a Store backed by db.
func NewBunStore[E any, T Record[E]](db *bun.DB, scope Scope[T]) Store[T] {
	handlers := repository.ModelHandlers[T]{
		NewRecord: func() T {
			return T(new(E))
		},
		GetID: func(record T) uuid.UUID {
			return record.BaseEntity().ID
		},
		SetID: func(record T, id uuid.UUID) {
			record.BaseEntity().ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
	}

	return &bunStore[E, T]{
		repo:  repository.NewRepository[T](db, handlers),
		scope: scope,
	}
}

func (s *bunStore[E, T]) FindByID(ctx context.Context, db bun.IDB, id uuid.UUID) (T, error) {
	record := T(new(E))
	err := db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrRecordNotFound
		}
		return zero, err
	}
	return record, nil
}

func (s *bunStore[E, T]) ListActive(ctx context.Context, db bun.IDB, scope uuid.UUID) ([]T, error) {
	records := make([]T, 0)
	q := db.NewSelect().
		Model(&records).
		Where("?TableAlias.is_deleted = ?", false)
	if scope != uuid.Nil && s.scope.Column != "" {
		q = q.Where("?TableAlias.? = ?", bun.Ident(s.scope.Column), scope)
	}
	if err := q.OrderExpr("?TableAlias.created_at ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *bunStore[E, T]) Insert(ctx context.Context, db bun.IDB, record T) (T, error) {
	return s.repo.CreateTx(ctx, db, record)
}

func (s *bunStore[E, T]) Update(ctx context.Context, db bun.IDB, record T) (T, error) {
	res, err := db.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var zero T
		return zero, ErrRecordNotFound
	}
	return record, nil
}
