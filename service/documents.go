package service

import (
	"context"

	"github.com/goliatone/go-family-records/audit"
	"github.com/goliatone/go-family-records/entity"
	"github.com/goliatone/go-family-records/repositorycache"
	"github.com/google/uuid"
)

// Documents manages identity documents and audits their downloads.
type Documents struct {
	*Records[entity.Document, *entity.Document]
}

// NewDocuments creates a Documents service.
func NewDocuments(repo repositorycache.DocumentRepository, recorder *audit.Recorder) *Documents {
	return &Documents{NewRecords(repo.Repository, recorder, describeDocument)}
}

// ListByFamilyMember returns the active documents of memberID.
func (s *Documents) ListByFamilyMember(ctx context.Context, memberID uuid.UUID) ([]*entity.Document, error) {
	return s.ListByScope(ctx, memberID)
}

// Download returns the document for retrieval by actor and records a
// Download event. Soft deleted documents are reported as not found.
func (s *Documents) Download(ctx context.Context, actor string, id uuid.UUID, meta RequestMeta) (*entity.Document, error) {
	if actor == "" {
		return nil, ErrActorRequired
	}

	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.IsDeleted {
		return nil, repositorycache.NotFound(s.repo.Name(), id)
	}

	opts := append(describeDocument(doc),
		audit.WithEntity(doc.ID),
		audit.WithIPAddress(meta.IPAddress),
		audit.WithDescription("document downloaded"),
		audit.WithMetadata(map[string]any{"document_type": doc.DocumentType}),
	)
	s.recorder.Record(ctx, audit.NewEvent(actor, entity.ActionDownload, s.repo.Name(), opts...))
	return doc, nil
}

func describeDocument(d *entity.Document) []audit.EventOption {
	return []audit.EventOption{
		audit.WithFamilyMember(d.FamilyMemberID),
		audit.WithDocument(d.ID),
	}
}
