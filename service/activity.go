package service

import (
	"context"
	"time"

	"github.com/goliatone/go-family-records/audit"
	"github.com/goliatone/go-family-records/entity"
)

// Activity answers audit report queries for a user.
type Activity struct {
	repo audit.Repository
	now  func() time.Time
}

// ActivityOption configures Activity.
type ActivityOption func(*Activity)

// WithActivityClock overrides the clock the report window ends at.
func WithActivityClock(now func() time.Time) ActivityOption {
	return func(a *Activity) {
		if now != nil {
			a.now = now
		}
	}
}

// NewActivity creates an Activity service over repo.
func NewActivity(repo audit.Repository, opts ...ActivityOption) *Activity {
	a := &Activity{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Recent returns up to take events of any action by userID in the last days.
func (a *Activity) Recent(ctx context.Context, userID string, days, take int) ([]*entity.AuditEvent, error) {
	return a.repo.GetActivityByUser(ctx, userID, a.since(days), take)
}

// Downloads returns up to take Download events by userID in the last days.
func (a *Activity) Downloads(ctx context.Context, userID string, days, take int) ([]*entity.AuditEvent, error) {
	return a.repo.GetDownloadHistoryByUser(ctx, userID, a.since(days), take)
}

func (a *Activity) since(days int) time.Time {
	if days < 0 {
		days = 0
	}
	return a.now().UTC().AddDate(0, 0, -days)
}
