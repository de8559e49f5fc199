package audit

import (
	"context"
	"time"

	"github.com/goliatone/go-family-records/entity"
	"github.com/google/uuid"
)

// Repository is the append-only audit log.
type Repository interface {
	// Add appends event, assigning ID and CreatedAt when unset.
	Add(ctx context.Context, event *entity.AuditEvent) (*entity.AuditEvent, error)
	// GetActivityByUser returns at most take events of any action by userID
	// created at or after from, newest first.
	GetActivityByUser(ctx context.Context, userID string, from time.Time, take int) ([]*entity.AuditEvent, error)
	// GetDownloadHistoryByUser is GetActivityByUser restricted to Download events.
	GetDownloadHistoryByUser(ctx context.Context, userID string, from time.Time, take int) ([]*entity.AuditEvent, error)
}

// Option configures a Repository implementation.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func prepare(event *entity.AuditEvent, now func() time.Time) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now()
	}
	event.CreatedAt = event.CreatedAt.UTC()
}
