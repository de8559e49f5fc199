package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-family-records/audit"
	"github.com/goliatone/go-family-records/cache"
	"github.com/goliatone/go-family-records/entity"
	"github.com/goliatone/go-family-records/pkg/testsupport"
	"github.com/goliatone/go-family-records/repositorycache"
	"github.com/goliatone/go-family-records/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const actor = testsupport.Actor

type household struct {
	Family    entity.Family         `json:"family"`
	Members   []entity.FamilyMember `json:"members"`
	Documents []entity.Document     `json:"documents"`
}

type fixture struct {
	svc   Services
	log   audit.Repository
	clock *testsupport.Clock
	home  household
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithAudit(t, nil)
}

// newFixtureWithAudit builds services over memory stores. A nil log uses a
// memory audit repository.
func newFixtureWithAudit(t *testing.T, log audit.Repository) *fixture {
	t.Helper()

	clock := testsupport.NewClock(testsupport.Epoch)
	c, err := cache.NewCache(cache.DefaultConfig())
	require.NoError(t, err)

	repos := repositorycache.NewRepositories(
		repositorycache.NewMemoryStores(),
		store.NewNoopUnitOfWork(),
		c,
		repositorycache.WithClock(clock.Now),
	)
	if log == nil {
		log = audit.NewMemoryRepository(audit.WithClock(clock.Now))
	}
	recorder := audit.NewRecorder(log,
		audit.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		audit.WithWriteTimeout(time.Second),
	)

	f := &fixture{
		svc:   New(repos, recorder, WithActivityClock(clock.Now)),
		log:   log,
		clock: clock,
	}
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("household.json"), &f.home)
	return f
}

// seed stores the household fixture and returns the audit events it produced.
func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	family := f.home.Family
	_, err := f.svc.Families.Create(ctx, actor, &family, RequestMeta{})
	require.NoError(t, err)

	for i := range f.home.Members {
		member := f.home.Members[i]
		_, err := f.svc.FamilyMembers.Create(ctx, actor, &member, RequestMeta{})
		require.NoError(t, err)
	}
	for i := range f.home.Documents {
		doc := f.home.Documents[i]
		_, err := f.svc.Documents.Create(ctx, actor, &doc, RequestMeta{})
		require.NoError(t, err)
	}
}

func (f *fixture) events(t *testing.T) []*entity.AuditEvent {
	t.Helper()
	events, err := f.log.GetActivityByUser(context.Background(), actor, time.Time{}, 1000)
	require.NoError(t, err)
	return events
}

type failingLog struct {
	audit.Repository
	err error
}

func (l failingLog) Add(context.Context, *entity.AuditEvent) (*entity.AuditEvent, error) {
	return nil, l.err
}

func TestRecords_CreateAuditsWithContext(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()

	member := f.home.Members[0]
	account := &entity.BankAccount{
		FamilyMemberID: member.ID,
		BankName:       "State Bank",
		AccountNumber:  "00112233",
	}
	saved, err := f.svc.BankAccounts.Create(ctx, actor, account, RequestMeta{IPAddress: "10.0.0.7"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, actor, saved.CreatedBy)

	events := f.events(t)
	require.NotEmpty(t, events)
	last := events[0]
	assert.Equal(t, entity.ActionCreate, last.Action)
	assert.Equal(t, repositorycache.AggregateBankAccount, last.EntityType)
	require.NotNil(t, last.EntityID)
	assert.Equal(t, saved.ID, *last.EntityID)
	require.NotNil(t, last.FamilyMemberID)
	assert.Equal(t, member.ID, *last.FamilyMemberID)
	require.NotNil(t, last.IPAddress)
	assert.Equal(t, "10.0.0.7", *last.IPAddress)
}

func TestRecords_SeedProducesOneEventPerCreate(t *testing.T) {
	f := newFixture(t)
	f.seed(t)

	want := 1 + len(f.home.Members) + len(f.home.Documents)
	assert.Len(t, f.events(t), want)

	members, err := f.svc.FamilyMembers.ListByScope(context.Background(), f.home.Family.ID)
	require.NoError(t, err)
	assert.Len(t, members, len(f.home.Members))
}

func TestRecords_CreateRejectsInvalidRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Documents.Create(ctx, actor, &entity.Document{DocumentType: "Ticket"}, RequestMeta{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var verr *goerrors.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, goerrors.CategoryValidation, verr.Category)
	fields := verr.ValidationMap()
	assert.Contains(t, fields, "family_member_id")
	assert.Contains(t, fields, "document_type")
	assert.Contains(t, fields, "document_number")
	assert.True(t, sort.SliceIsSorted(verr.ValidationErrors, func(i, j int) bool {
		return verr.ValidationErrors[i].Field < verr.ValidationErrors[j].Field
	}))

	all, err := f.svc.Documents.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.events(t))
}

func TestRecords_RequiresActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	family := f.home.Family

	_, err := f.svc.Families.Create(ctx, "", &family, RequestMeta{})
	assert.ErrorIs(t, err, ErrActorRequired)

	_, err = f.svc.Families.Update(ctx, "", &family, RequestMeta{})
	assert.ErrorIs(t, err, ErrActorRequired)

	assert.ErrorIs(t, f.svc.Families.Delete(ctx, "", family.ID, RequestMeta{}), ErrActorRequired)

	_, err = f.svc.Documents.Download(ctx, "", uuid.New(), RequestMeta{})
	assert.ErrorIs(t, err, ErrActorRequired)
}

func TestRecords_UpdateStampsAndAudits(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()
	f.clock.Advance(time.Hour)

	member := f.home.Members[1]
	member.Phone = "+91 98765 43210"
	updated, err := f.svc.FamilyMembers.Update(ctx, "editor", &member, RequestMeta{})
	require.NoError(t, err)

	require.NotNil(t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.Equal(f.clock.Now()))
	assert.Equal(t, "editor", updated.UpdatedByValue())
	assert.Equal(t, actor, updated.CreatedBy)

	events, err := f.log.GetActivityByUser(ctx, "editor", time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entity.ActionUpdate, events[0].Action)
	require.NotNil(t, events[0].FamilyID)
	assert.Equal(t, f.home.Family.ID, *events[0].FamilyID)
}

func TestRecords_UpdateMissingIsNotAudited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	family := f.home.Family
	_, err := f.svc.Families.Update(ctx, actor, &family, RequestMeta{})
	assert.ErrorIs(t, err, repositorycache.ErrNotFound)
	assert.Empty(t, f.events(t))
}

func TestRecords_DeleteHidesAndAudits(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()

	doc := f.home.Documents[1]
	require.NoError(t, f.svc.Documents.Delete(ctx, actor, doc.ID, RequestMeta{}))

	docs, err := f.svc.Documents.ListByFamilyMember(ctx, doc.FamilyMemberID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, f.home.Documents[0].ID, docs[0].ID)

	last := f.events(t)[0]
	assert.Equal(t, entity.ActionDelete, last.Action)
	require.NotNil(t, last.DocumentID)
	assert.Equal(t, doc.ID, *last.DocumentID)
	require.NotNil(t, last.FamilyMemberID)
	assert.Equal(t, doc.FamilyMemberID, *last.FamilyMemberID)

	err = f.svc.Documents.Delete(ctx, actor, uuid.New(), RequestMeta{})
	assert.True(t, repositorycache.IsNotFound(err))
}

func TestRecords_RepeatDeleteIsNotAudited(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()
	doc := f.home.Documents[0]

	require.NoError(t, f.svc.Documents.Delete(ctx, actor, doc.ID, RequestMeta{}))
	before := len(f.events(t))

	f.clock.Advance(time.Hour)
	require.NoError(t, f.svc.Documents.Delete(ctx, actor, doc.ID, RequestMeta{}))

	events := f.events(t)
	assert.Len(t, events, before)

	deletes := 0
	for _, e := range events {
		if e.Action == entity.ActionDelete {
			deletes++
		}
	}
	assert.Equal(t, 1, deletes)
}

func TestDocuments_Download(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()
	doc := f.home.Documents[0]

	got, err := f.svc.Documents.Download(ctx, actor, doc.ID, RequestMeta{IPAddress: "192.168.1.20"})
	require.NoError(t, err)
	assert.Equal(t, doc.FilePath, got.FilePath)

	downloads, err := f.log.GetDownloadHistoryByUser(ctx, actor, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, downloads, 1)

	event := downloads[0]
	assert.Equal(t, entity.ActionDownload, event.Action)
	assert.Equal(t, repositorycache.AggregateDocument, event.EntityType)
	require.NotNil(t, event.DocumentID)
	assert.Equal(t, doc.ID, *event.DocumentID)
	require.NotNil(t, event.FamilyMemberID)
	assert.Equal(t, doc.FamilyMemberID, *event.FamilyMemberID)
	assert.Equal(t, "Passport", event.Metadata["document_type"])
}

func TestDocuments_DownloadDeletedIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()
	doc := f.home.Documents[0]

	require.NoError(t, f.svc.Documents.Delete(ctx, actor, doc.ID, RequestMeta{}))

	_, err := f.svc.Documents.Download(ctx, actor, doc.ID, RequestMeta{})
	assert.ErrorIs(t, err, repositorycache.ErrNotFound)

	_, err = f.svc.Documents.Download(ctx, actor, uuid.New(), RequestMeta{})
	assert.ErrorIs(t, err, repositorycache.ErrNotFound)

	downloads, err := f.log.GetDownloadHistoryByUser(ctx, actor, time.Time{}, 10)
	require.NoError(t, err)
	assert.Empty(t, downloads)
}

func TestRecords_AuditFailureDoesNotFailMutation(t *testing.T) {
	f := newFixtureWithAudit(t, failingLog{
		Repository: audit.NewMemoryRepository(),
		err:        errors.New("audit store offline"),
	})
	ctx := context.Background()

	family := f.home.Family
	saved, err := f.svc.Families.Create(ctx, actor, &family, RequestMeta{})
	require.NoError(t, err)

	got, err := f.svc.Families.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sharma", got.Name)
}

func TestActivity_Windows(t *testing.T) {
	f := newFixture(t)
	f.seed(t)
	ctx := context.Background()
	doc := f.home.Documents[0]

	_, err := f.svc.Documents.Download(ctx, actor, doc.ID, RequestMeta{})
	require.NoError(t, err)

	f.clock.Advance(10 * 24 * time.Hour)
	_, err = f.svc.Documents.Download(ctx, actor, doc.ID, RequestMeta{})
	require.NoError(t, err)

	recent, err := f.svc.Activity.Recent(ctx, actor, 7, 50)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.True(t, recent[0].CreatedAt.Equal(f.clock.Now()))

	all, err := f.svc.Activity.Recent(ctx, actor, 30, 50)
	require.NoError(t, err)
	assert.Len(t, all, 1+len(f.home.Members)+len(f.home.Documents)+2)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "events must be newest first")
	}

	downloads, err := f.svc.Activity.Downloads(ctx, actor, 30, 50)
	require.NoError(t, err)
	assert.Len(t, downloads, 2)

	capped, err := f.svc.Activity.Downloads(ctx, actor, 30, 1)
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.True(t, capped[0].CreatedAt.Equal(f.clock.Now()))

	none, err := f.svc.Activity.Recent(ctx, actor, 30, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
