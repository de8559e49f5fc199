package entity

import (
	"maps"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Audit action labels.
const (
	ActionCreate   = "Create"
	ActionUpdate   = "Update"
	ActionDelete   = "Delete"
	ActionView     = "View"
	ActionDownload = "Download"
	ActionLogin    = "Login"
)

// AuditEvent is one immutable entry of the audit log.
type AuditEvent struct {
	bun.BaseModel `bun:"table:audit_events,alias:ae"`

	ID             uuid.UUID      `bun:"id,pk,type:uuid" json:"id"`
	ActorID        string         `bun:"actor_id,notnull" json:"actor_id"`
	Action         string         `bun:"action,notnull" json:"action"`
	EntityType     string         `bun:"entity_type,notnull" json:"entity_type"`
	EntityID       *uuid.UUID     `bun:"entity_id,type:uuid,nullzero" json:"entity_id,omitempty"`
	FamilyID       *uuid.UUID     `bun:"family_id,type:uuid,nullzero" json:"family_id,omitempty"`
	FamilyMemberID *uuid.UUID     `bun:"family_member_id,type:uuid,nullzero" json:"family_member_id,omitempty"`
	DocumentID     *uuid.UUID     `bun:"document_id,type:uuid,nullzero" json:"document_id,omitempty"`
	Description    string         `bun:"description" json:"description,omitempty"`
	IPAddress      *string        `bun:"ip_address,nullzero" json:"ip_address,omitempty"`
	Metadata       map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time      `bun:"created_at,notnull" json:"created_at"`
}

func (e *AuditEvent) Validate() error {
	return validation.ValidateStruct(e,
		validation.Field(&e.ActorID, validation.Required),
		validation.Field(&e.Action, validation.Required, validation.Length(1, 64)),
		validation.Field(&e.EntityType, validation.Required),
	)
}

// Clone returns a copy of e that shares no pointers or maps with it.
// Metadata is copied one level deep.
func (e *AuditEvent) Clone() *AuditEvent {
	c := *e
	c.EntityID = cloneRef(e.EntityID)
	c.FamilyID = cloneRef(e.FamilyID)
	c.FamilyMemberID = cloneRef(e.FamilyMemberID)
	c.DocumentID = cloneRef(e.DocumentID)
	c.IPAddress = cloneRef(e.IPAddress)
	c.Metadata = maps.Clone(e.Metadata)
	return &c
}

func cloneRef[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
