package audit

import (
	"context"
	"time"

	"github.com/goliatone/go-family-records/entity"
	"github.com/uptrace/bun"
)

type bunRepository struct {
	db  bun.IDB
	now func() time.Time
}

// NewBunRepository creates a Repository writing to the audit_events table.
// Appends are single-row inserts outside of any domain unit of work.
func NewBunRepository(db bun.IDB, opts ...Option) Repository {
	o := buildOptions(opts)
	return &bunRepository{db: db, now: o.now}
}

func (r *bunRepository) Add(ctx context.Context, event *entity.AuditEvent) (*entity.AuditEvent, error) {
	prepare(event, r.now)
	if _, err := r.db.NewInsert().Model(event).Exec(ctx); err != nil {
		return nil, err
	}
	return event, nil
}

func (r *bunRepository) GetActivityByUser(ctx context.Context, userID string, from time.Time, take int) ([]*entity.AuditEvent, error) {
	return r.query(ctx, userID, from, take, "")
}

func (r *bunRepository) GetDownloadHistoryByUser(ctx context.Context, userID string, from time.Time, take int) ([]*entity.AuditEvent, error) {
	return r.query(ctx, userID, from, take, entity.ActionDownload)
}

func (r *bunRepository) query(ctx context.Context, userID string, from time.Time, take int, action string) ([]*entity.AuditEvent, error) {
	events := make([]*entity.AuditEvent, 0)
	if take <= 0 {
		return events, nil
	}

	q := r.db.NewSelect().
		Model(&events).
		Where("?TableAlias.actor_id = ?", userID).
		Where("?TableAlias.created_at >= ?", from.UTC())
	if action != "" {
		q = q.Where("?TableAlias.action = ?", action)
	}
	err := q.OrderExpr("?TableAlias.created_at DESC").
		Limit(take).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return events, nil
}
