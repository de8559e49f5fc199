package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/goliatone/go-family-records/entity"
	"github.com/goliatone/go-family-records/pkg/testsupport"
	"github.com/goliatone/go-family-records/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice = "alice"
	bob   = "bob"
)

func openBunRepository(t *testing.T, clock *testsupport.Clock) Repository {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open(ctx, store.Options{Driver: store.DriverSQLite, DSN: testsupport.MemoryDSN(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, store.CreateSchema(ctx, db))
	return NewBunRepository(db, WithClock(clock.Now))
}

var implementations = map[string]func(*testing.T, *testsupport.Clock) Repository{
	"memory": func(_ *testing.T, c *testsupport.Clock) Repository {
		return NewMemoryRepository(WithClock(c.Now))
	},
	"bun": openBunRepository,
}

func TestRepository_AddAssignsIdentity(t *testing.T) {
	for name, build := range implementations {
		t.Run(name, func(t *testing.T) {
			clock := testsupport.NewClock(testsupport.Epoch)
			repo := build(t, clock)

			event, err := repo.Add(context.Background(), NewEvent(alice, entity.ActionLogin, "user"))
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, event.ID)
			assert.True(t, event.CreatedAt.Equal(testsupport.Epoch))

			preset := NewEvent(alice, entity.ActionView, "document")
			preset.ID = uuid.New()
			preset.CreatedAt = testsupport.Epoch.Add(-time.Hour)
			stored, err := repo.Add(context.Background(), preset)
			require.NoError(t, err)
			assert.Equal(t, preset.ID, stored.ID)
			assert.True(t, stored.CreatedAt.Equal(testsupport.Epoch.Add(-time.Hour)))
		})
	}
}

func TestRepository_Queries(t *testing.T) {
	for name, build := range implementations {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			clock := testsupport.NewClock(testsupport.Epoch)
			repo := build(t, clock)
			docID := uuid.New()

			add := func(actor, action string) {
				_, err := repo.Add(ctx, NewEvent(actor, action, "document", WithDocument(docID)))
				require.NoError(t, err)
				clock.Advance(time.Hour)
			}
			add(alice, entity.ActionDownload) // Epoch
			add(alice, entity.ActionView)     // +1h
			add(bob, entity.ActionDownload)   // +2h
			add(alice, entity.ActionDownload) // +3h
			add(alice, entity.ActionUpdate)   // +4h

			activity, err := repo.GetActivityByUser(ctx, alice, testsupport.Epoch, 10)
			require.NoError(t, err)
			require.Len(t, activity, 4)
			assert.Equal(t, entity.ActionUpdate, activity[0].Action)
			assert.Equal(t, entity.ActionDownload, activity[3].Action)
			for i := 1; i < len(activity); i++ {
				assert.True(t, activity[i-1].CreatedAt.After(activity[i].CreatedAt))
			}
			require.NotNil(t, activity[0].DocumentID)
			assert.Equal(t, docID, *activity[0].DocumentID)

			downloads, err := repo.GetDownloadHistoryByUser(ctx, alice, testsupport.Epoch, 10)
			require.NoError(t, err)
			require.Len(t, downloads, 2)
			for _, event := range downloads {
				assert.Equal(t, entity.ActionDownload, event.Action)
				assert.Equal(t, alice, event.ActorID)
			}
			assert.True(t, downloads[0].CreatedAt.Equal(testsupport.Epoch.Add(3*time.Hour)))

			windowed, err := repo.GetActivityByUser(ctx, alice, testsupport.Epoch.Add(90*time.Minute), 10)
			require.NoError(t, err)
			assert.Len(t, windowed, 2)

			capped, err := repo.GetActivityByUser(ctx, alice, testsupport.Epoch, 2)
			require.NoError(t, err)
			require.Len(t, capped, 2)
			assert.Equal(t, entity.ActionUpdate, capped[0].Action)

			empty, err := repo.GetDownloadHistoryByUser(ctx, alice, testsupport.Epoch, 0)
			require.NoError(t, err)
			assert.NotNil(t, empty)
			assert.Empty(t, empty)

			none, err := repo.GetActivityByUser(ctx, "carol", testsupport.Epoch, 10)
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestRepository_StoredEventsAreImmutable(t *testing.T) {
	for name, build := range implementations {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := build(t, testsupport.NewClock(testsupport.Epoch))
			docID := uuid.New()

			event := NewEvent(alice, entity.ActionDownload, "document",
				WithDocument(docID),
				WithIPAddress("10.0.0.1"),
				WithMetadata(map[string]any{"k": "orig"}),
			)
			_, err := repo.Add(ctx, event)
			require.NoError(t, err)

			event.Metadata["k"] = "caller"
			*event.IPAddress = "10.9.9.9"
			*event.DocumentID = uuid.New()

			got, err := repo.GetDownloadHistoryByUser(ctx, alice, time.Time{}, 10)
			require.NoError(t, err)
			require.Len(t, got, 1)
			got[0].Metadata["k"] = "tampered"
			*got[0].IPAddress = "10.6.6.6"
			*got[0].DocumentID = uuid.Nil

			again, err := repo.GetDownloadHistoryByUser(ctx, alice, time.Time{}, 10)
			require.NoError(t, err)
			require.Len(t, again, 1)
			assert.Equal(t, "orig", again[0].Metadata["k"])
			require.NotNil(t, again[0].IPAddress)
			assert.Equal(t, "10.0.0.1", *again[0].IPAddress)
			require.NotNil(t, again[0].DocumentID)
			assert.Equal(t, docID, *again[0].DocumentID)
		})
	}
}

func TestBunRepository_RoundTripsOptionalFields(t *testing.T) {
	ctx := context.Background()
	clock := testsupport.NewClock(testsupport.Epoch)
	repo := openBunRepository(t, clock)

	family, member := uuid.New(), uuid.New()
	_, err := repo.Add(ctx, NewEvent(alice, entity.ActionDelete, "bank_account",
		WithFamily(family),
		WithFamilyMember(member),
		WithIPAddress("10.1.2.3"),
		WithDescription("closed account"),
		WithMetadata(map[string]any{"bank": "State Bank"}),
	))
	require.NoError(t, err)

	events, err := repo.GetActivityByUser(ctx, alice, time.Time{}, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	require.NotNil(t, got.FamilyID)
	assert.Equal(t, family, *got.FamilyID)
	require.NotNil(t, got.FamilyMemberID)
	assert.Equal(t, member, *got.FamilyMemberID)
	assert.Nil(t, got.DocumentID)
	assert.Nil(t, got.EntityID)
	require.NotNil(t, got.IPAddress)
	assert.Equal(t, "10.1.2.3", *got.IPAddress)
	assert.Equal(t, "closed account", got.Description)
	assert.Equal(t, "State Bank", got.Metadata["bank"])
}

func TestNewEvent_IgnoresEmptyOptions(t *testing.T) {
	event := NewEvent(alice, entity.ActionCreate, "family",
		WithEntity(uuid.Nil),
		WithFamily(uuid.Nil),
		WithIPAddress(""),
		WithMetadata(nil),
	)

	assert.Nil(t, event.EntityID)
	assert.Nil(t, event.FamilyID)
	assert.Nil(t, event.IPAddress)
	assert.Nil(t, event.Metadata)
	assert.Equal(t, uuid.Nil, event.ID)
	assert.True(t, event.CreatedAt.IsZero())
}

type stubRepository struct {
	Repository
	err   error
	added []*entity.AuditEvent
	ctxs  []context.Context
}

func (s *stubRepository) Add(ctx context.Context, event *entity.AuditEvent) (*entity.AuditEvent, error) {
	s.ctxs = append(s.ctxs, ctx)
	if s.err != nil {
		return nil, s.err
	}
	s.added = append(s.added, event)
	return event, nil
}

func TestRecorder_SurvivesCallerCancellation(t *testing.T) {
	stub := &stubRepository{}
	recorder := NewRecorder(stub, WithWriteTimeout(time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, recorder.Record(ctx, NewEvent(alice, entity.ActionDownload, "document")))
	require.Len(t, stub.added, 1)
	require.Len(t, stub.ctxs, 1)
	assert.NoError(t, stub.ctxs[0].Err())

	deadline, ok := stub.ctxs[0].Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestRecorder_NoTimeout(t *testing.T) {
	stub := &stubRepository{}
	recorder := NewRecorder(stub, WithWriteTimeout(0))

	require.NoError(t, recorder.Record(context.Background(), NewEvent(alice, entity.ActionView, "document")))
	_, ok := stub.ctxs[0].Deadline()
	assert.False(t, ok)
}

func TestRecorder_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	stub := &stubRepository{err: errors.New("disk full")}
	recorder := NewRecorder(stub, WithLogger(logger))

	err := recorder.Record(context.Background(), NewEvent(alice, entity.ActionDelete, "document"))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "audit append failed")
	assert.Contains(t, buf.String(), "disk full")
	assert.Contains(t, buf.String(), "action=Delete")
}

func TestRecorder_RejectsInvalidEvent(t *testing.T) {
	var buf bytes.Buffer
	stub := &stubRepository{}
	recorder := NewRecorder(stub, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	err := recorder.Record(context.Background(), NewEvent("", entity.ActionCreate, "family"))
	require.Error(t, err)
	assert.Empty(t, stub.ctxs)
	assert.Contains(t, buf.String(), "audit event rejected")
}

func TestRecorder_Repository(t *testing.T) {
	repo := NewMemoryRepository()
	assert.Same(t, repo, NewRecorder(repo).Repository())
}

func TestRepository_DownloadWindowAroundEvent(t *testing.T) {
	for name, build := range implementations {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			clock := testsupport.NewClock(testsupport.Epoch)
			repo := build(t, clock)
			t0 := clock.Now()

			added, err := repo.Add(ctx, NewEvent(alice, entity.ActionDownload, "document"))
			require.NoError(t, err)

			day := 24 * time.Hour
			got, err := repo.GetDownloadHistoryByUser(ctx, alice, t0.Add(-day), 10)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, added.ID, got[0].ID)

			later, err := repo.GetDownloadHistoryByUser(ctx, alice, t0.Add(day), 10)
			require.NoError(t, err)
			assert.Empty(t, later)
		})
	}
}
