package audit

import (
	"github.com/goliatone/go-family-records/entity"
	"github.com/google/uuid"
)

// EventOption configures an AuditEvent built by NewEvent.
type EventOption func(*entity.AuditEvent)

// NewEvent builds an audit event. ID and CreatedAt are left for the
// repository to assign.
func NewEvent(actor, action, entityType string, opts ...EventOption) *entity.AuditEvent {
	event := &entity.AuditEvent{
		ActorID:    actor,
		Action:     action,
		EntityType: entityType,
	}
	for _, opt := range opts {
		opt(event)
	}
	return event
}

// WithEntity sets the subject entity ID.
func WithEntity(id uuid.UUID) EventOption {
	return func(e *entity.AuditEvent) {
		if id != uuid.Nil {
			e.EntityID = &id
		}
	}
}

// WithFamily sets the contextual family ID.
func WithFamily(id uuid.UUID) EventOption {
	return func(e *entity.AuditEvent) {
		if id != uuid.Nil {
			e.FamilyID = &id
		}
	}
}

// WithFamilyMember sets the contextual family member ID.
func WithFamilyMember(id uuid.UUID) EventOption {
	return func(e *entity.AuditEvent) {
		if id != uuid.Nil {
			e.FamilyMemberID = &id
		}
	}
}

// WithDocument sets the contextual document ID.
func WithDocument(id uuid.UUID) EventOption {
	return func(e *entity.AuditEvent) {
		if id != uuid.Nil {
			e.DocumentID = &id
		}
	}
}

// WithDescription sets the free-text description.
func WithDescription(description string) EventOption {
	return func(e *entity.AuditEvent) {
		e.Description = description
	}
}

// WithIPAddress sets the source address when known.
func WithIPAddress(ip string) EventOption {
	return func(e *entity.AuditEvent) {
		if ip != "" {
			e.IPAddress = &ip
		}
	}
}

// WithMetadata merges structured metadata into the event.
func WithMetadata(metadata map[string]any) EventOption {
	return func(e *entity.AuditEvent) {
		if len(metadata) == 0 {
			return
		}
		if e.Metadata == nil {
			e.Metadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			e.Metadata[k] = v
		}
	}
}
