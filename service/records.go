package service

import (
	"context"

	"github.com/goliatone/go-family-records/audit"
	"github.com/goliatone/go-family-records/entity"
	"github.com/goliatone/go-family-records/repositorycache"
	"github.com/goliatone/go-family-records/store"
	"github.com/google/uuid"
)

// Record is an aggregate pointer type that can validate itself.
type Record[E any] interface {
	store.Record[E]
	Validate() error
}

// RequestMeta carries request attributes copied onto audit events.
type RequestMeta struct {
	IPAddress string
}

// Describer returns the audit context of a record: its owning family,
// member or document.
type Describer[T any] func(T) []audit.EventOption

// Records is the CRUD service of one aggregate type.
type Records[E any, T Record[E]] struct {
	repo     *repositorycache.Repository[E, T]
	recorder *audit.Recorder
	describe Describer[T]
}

// NewRecords creates a Records service. describe may be nil.
func NewRecords[E any, T Record[E]](repo *repositorycache.Repository[E, T], recorder *audit.Recorder, describe Describer[T]) *Records[E, T] {
	return &Records[E, T]{
		repo:     repo,
		recorder: recorder,
		describe: describe,
	}
}

// Get returns the record with id, including a soft deleted one.
func (s *Records[E, T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns every active record.
func (s *Records[E, T]) List(ctx context.Context) ([]T, error) {
	return s.repo.GetAllActive(ctx)
}

// ListByScope returns the active records owned by scope.
func (s *Records[E, T]) ListByScope(ctx context.Context, scope uuid.UUID) ([]T, error) {
	return s.repo.GetAllActiveByScope(ctx, scope)
}

// Create validates and stores a new record, then audits it.
func (s *Records[E, T]) Create(ctx context.Context, actor string, record T, meta RequestMeta) (T, error) {
	var zero T
	if actor == "" {
		return zero, ErrActorRequired
	}
	if err := validate(s.repo.Name(), record); err != nil {
		return zero, err
	}

	saved, err := s.repo.Add(ctx, record, actor)
	if err != nil {
		return zero, err
	}
	s.audit(ctx, actor, entity.ActionCreate, saved, meta)
	return saved, nil
}

// Update validates and stores the new state of a record, then audits it.
func (s *Records[E, T]) Update(ctx context.Context, actor string, record T, meta RequestMeta) (T, error) {
	var zero T
	if actor == "" {
		return zero, ErrActorRequired
	}
	if err := validate(s.repo.Name(), record); err != nil {
		return zero, err
	}

	saved, err := s.repo.Update(ctx, record, actor)
	if err != nil {
		return zero, err
	}
	s.audit(ctx, actor, entity.ActionUpdate, saved, meta)
	return saved, nil
}

// Delete soft deletes the record with id, then audits it. Deleting a record
// that was already deleted changes nothing and is not audited again.
func (s *Records[E, T]) Delete(ctx context.Context, actor string, id uuid.UUID, meta RequestMeta) error {
	if actor == "" {
		return ErrActorRequired
	}
	deleted, changed, err := s.repo.SoftDelete(ctx, id, actor)
	if err != nil {
		return err
	}
	if changed {
		s.audit(ctx, actor, entity.ActionDelete, deleted, meta)
	}
	return nil
}

func (s *Records[E, T]) audit(ctx context.Context, actor, action string, record T, meta RequestMeta) {
	opts := []audit.EventOption{
		audit.WithEntity(record.BaseEntity().ID),
		audit.WithIPAddress(meta.IPAddress),
	}
	if s.describe != nil {
		opts = append(opts, s.describe(record)...)
	}
	s.recorder.Record(ctx, audit.NewEvent(actor, action, s.repo.Name(), opts...))
}
