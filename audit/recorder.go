package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/goliatone/go-family-records/entity"
)

// DefaultWriteTimeout bounds a detached audit append.
const DefaultWriteTimeout = 5 * time.Second

// Recorder appends audit events on behalf of services after their mutation
// has committed.
type Recorder struct {
	repo    Repository
	logger  *slog.Logger
	timeout time.Duration
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithLogger sets the logger used for failed appends.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithWriteTimeout bounds each append. Zero disables the bound.
func WithWriteTimeout(timeout time.Duration) RecorderOption {
	return func(r *Recorder) {
		r.timeout = timeout
	}
}

// NewRecorder creates a Recorder over repo.
func NewRecorder(repo Repository, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		repo:    repo,
		logger:  slog.Default(),
		timeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record validates and appends event, ignoring cancellation of ctx. Failures
// are logged and returned; services discard them.
func (r *Recorder) Record(ctx context.Context, event *entity.AuditEvent) error {
	ctx = context.WithoutCancel(ctx)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := event.Validate(); err != nil {
		r.logger.WarnContext(ctx, "audit event rejected",
			"action", event.Action,
			"entity_type", event.EntityType,
			"error", err,
		)
		return err
	}

	if _, err := r.repo.Add(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "audit append failed",
			"action", event.Action,
			"actor", event.ActorID,
			"entity_type", event.EntityType,
			"error", err,
		)
		return err
	}
	return nil
}

// Repository exposes the underlying audit log for report queries.
func (r *Recorder) Repository() Repository {
	return r.repo
}
