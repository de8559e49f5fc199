package repositorycache

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/goliatone/go-family-records/cache"
	"github.com/goliatone/go-family-records/store"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Descriptor holds the per-aggregate hooks of a Repository.
type Descriptor[T any] struct {
	// Name is the cache namespace. Empty derives it from the entity type name
	// in snake_case.
	Name string
	// Scope is the owning reference used for scoped lists. The zero value
	// means the aggregate is only listed as a whole.
	Scope store.Scope[T]
}

// Option configures a Repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the wall clock used for creation and update timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Repository is the cached, soft-deleting repository of one aggregate type.
//
// Point reads go straight to the store. List reads are served from the cache
// and loaded from the store on a miss. Writes run in a unit of work and, once
// it commits, invalidate the type-level list and the scoped lists of every
// owner the write touched.
type Repository[E any, T store.Record[E]] struct {
	name  string
	scope store.Scope[T]
	store store.Store[T]
	uow   store.UnitOfWork
	cache cache.Cache
	now   func() time.Time
}

// New creates a Repository for the aggregate described by desc.
func New[E any, T store.Record[E]](desc Descriptor[T], st store.Store[T], uow store.UnitOfWork, c cache.Cache, opts ...Option) *Repository[E, T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	name := desc.Name
	if name == "" {
		name = toSnake(reflect.TypeOf((*E)(nil)).Elem().Name())
	}

	return &Repository[E, T]{
		name:  name,
		scope: desc.Scope,
		store: st,
		uow:   uow,
		cache: c,
		now:   o.now,
	}
}

// Name returns the aggregate's cache namespace.
func (r *Repository[E, T]) Name() string {
	return r.name
}

// GetByID reads a record from the store, including soft deleted ones.
func (r *Repository[E, T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	var record T
	err := r.uow.Do(ctx, func(ctx context.Context, db bun.IDB) error {
		var err error
		record, err = r.find(ctx, db, id)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return record, nil
}

// GetAllActive returns every record that is not soft deleted.
// The returned slice is shared with the cache and must not be modified.
func (r *Repository[E, T]) GetAllActive(ctx context.Context) ([]T, error) {
	return r.list(ctx, cache.TypeKey(r.name), uuid.Nil)
}

// GetAllActiveByScope returns the active records owned by scope. A nil scope
// is the same as GetAllActive.
// The returned slice is shared with the cache and must not be modified.
func (r *Repository[E, T]) GetAllActiveByScope(ctx context.Context, scope uuid.UUID) ([]T, error) {
	if scope == uuid.Nil {
		return r.GetAllActive(ctx)
	}
	if !r.scope.Scoped() {
		return nil, ErrNotScoped
	}
	return r.list(ctx, cache.ScopeKey(r.name, scope), scope)
}

// Add persists a new record. A missing ID, creation time or creator is filled
// in; the record always starts active with no update attribution.
func (r *Repository[E, T]) Add(ctx context.Context, record T, actor string) (T, error) {
	base := record.BaseEntity()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedAt.IsZero() {
		base.CreatedAt = r.now().UTC()
	}
	if base.CreatedBy == "" {
		base.CreatedBy = actor
	}
	base.IsDeleted = false
	base.UpdatedAt = nil
	base.UpdatedBy = nil

	var saved T
	err := r.uow.Do(ctx, func(ctx context.Context, db bun.IDB) error {
		var err error
		saved, err = r.store.Insert(ctx, db, record)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	r.invalidate(r.scopeOf(saved))
	return saved, nil
}

// Update overwrites the mutable fields of an existing record. Identity,
// creation attribution and the soft-delete flag are taken from the stored row.
// record itself is left untouched; the stamped copy is persisted and returned.
func (r *Repository[E, T]) Update(ctx context.Context, record T, actor string) (T, error) {
	copied := *record
	next := T(&copied)

	var (
		saved    T
		previous uuid.UUID
	)
	err := r.uow.Do(ctx, func(ctx context.Context, db bun.IDB) error {
		base := next.BaseEntity()
		current, err := r.find(ctx, db, base.ID)
		if err != nil {
			return err
		}
		previous = r.scopeOf(current)

		stored := current.BaseEntity()
		base.CreatedAt = stored.CreatedAt
		base.CreatedBy = stored.CreatedBy
		base.IsDeleted = stored.IsDeleted
		base.Touch(actor, r.now())

		saved, err = r.store.Update(ctx, db, next)
		return r.translate(err, base.ID)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	r.invalidate(previous, r.scopeOf(saved))
	return saved, nil
}

// DeleteByID soft deletes a record, attributing the change to actor.
// Deleting a record that is already deleted succeeds and keeps the original
// attribution.
func (r *Repository[E, T]) DeleteByID(ctx context.Context, id uuid.UUID, actor string) error {
	_, _, err := r.SoftDelete(ctx, id, actor)
	return err
}

// SoftDelete is DeleteByID returning the stored row and whether this call
// flagged it. changed is false when the record was already deleted.
func (r *Repository[E, T]) SoftDelete(ctx context.Context, id uuid.UUID, actor string) (record T, changed bool, err error) {
	err = r.uow.Do(ctx, func(ctx context.Context, db bun.IDB) error {
		current, err := r.find(ctx, db, id)
		if err != nil {
			return err
		}
		record = current

		base := current.BaseEntity()
		if base.IsDeleted {
			return nil
		}
		base.IsDeleted = true
		base.Touch(actor, r.now())

		if _, err := r.store.Update(ctx, db, current); err != nil {
			return r.translate(err, id)
		}
		changed = true
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}

	if changed {
		r.invalidate(r.scopeOf(record))
	}
	return record, changed, nil
}

// Keys returns the cache keys whose lists could contain a record owned by
// each of the given scopes. uuid.Nil scopes contribute only the type key.
func (r *Repository[E, T]) Keys(scopes ...uuid.UUID) []cache.Key {
	keys := []cache.Key{cache.TypeKey(r.name)}
	for _, scope := range scopes {
		if scope == uuid.Nil {
			continue
		}
		key := cache.ScopeKey(r.name, scope)
		duplicate := false
		for _, k := range keys {
			if k == key {
				duplicate = true
				break
			}
		}
		if !duplicate {
			keys = append(keys, key)
		}
	}
	return keys
}

func (r *Repository[E, T]) list(ctx context.Context, key cache.Key, scope uuid.UUID) ([]T, error) {
	if records, ok := cache.Lookup[[]T](r.cache, key); ok {
		return records, nil
	}

	var records []T
	err := r.uow.Do(ctx, func(ctx context.Context, db bun.IDB) error {
		var err error
		records, err = r.store.ListActive(ctx, db, scope)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, records)
	return records, nil
}

func (r *Repository[E, T]) find(ctx context.Context, db bun.IDB, id uuid.UUID) (T, error) {
	record, err := r.store.FindByID(ctx, db, id)
	if err != nil {
		var zero T
		return zero, r.translate(err, id)
	}
	return record, nil
}

// translate maps the store's missing-row error to NotFound and returns
// everything else unchanged.
func (r *Repository[E, T]) translate(err error, id uuid.UUID) error {
	if errors.Is(err, store.ErrRecordNotFound) {
		return NotFound(r.name, id)
	}
	return err
}

func (r *Repository[E, T]) scopeOf(record T) uuid.UUID {
	if !r.scope.Scoped() {
		return uuid.Nil
	}
	return r.scope.Of(record)
}

func (r *Repository[E, T]) invalidate(scopes ...uuid.UUID) {
	r.cache.InvalidateAll(r.Keys(scopes...)...)
}
