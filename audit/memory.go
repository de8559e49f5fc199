package audit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-family-records/entity"
)

// memoryRepository keeps private clones of the events it is given and hands
// out clones on every query.
type memoryRepository struct {
	mu     sync.RWMutex
	events []*entity.AuditEvent
	now    func() time.Time
}

// NewMemoryRepository creates an in-process Repository.
func NewMemoryRepository(opts ...Option) Repository {
	o := buildOptions(opts)
	return &memoryRepository{now: o.now}
}

func (r *memoryRepository) Add(ctx context.Context, event *entity.AuditEvent) (*entity.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prepare(event, r.now)

	r.mu.Lock()
	r.events = append(r.events, event.Clone())
	r.mu.Unlock()

	return event, nil
}

func (r *memoryRepository) GetActivityByUser(ctx context.Context, userID string, from time.Time, take int) ([]*entity.AuditEvent, error) {
	return r.query(ctx, userID, from, take, "")
}

func (r *memoryRepository) GetDownloadHistoryByUser(ctx context.Context, userID string, from time.Time, take int) ([]*entity.AuditEvent, error) {
	return r.query(ctx, userID, from, take, entity.ActionDownload)
}

func (r *memoryRepository) query(ctx context.Context, userID string, from time.Time, take int, action string) ([]*entity.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	events := make([]*entity.AuditEvent, 0)
	if take <= 0 {
		return events, nil
	}

	// walk newest appended first so equal timestamps keep append order reversed
	r.mu.RLock()
	for i := len(r.events) - 1; i >= 0; i-- {
		event := r.events[i]
		if event.ActorID != userID || event.CreatedAt.Before(from) {
			continue
		}
		if action != "" && event.Action != action {
			continue
		}
		events = append(events, event.Clone())
	}
	r.mu.RUnlock()

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	if len(events) > take {
		events = events[:take]
	}
	return events, nil
}
