// Package entity defines the persisted shapes managed by the family records backend.
//
// Every aggregate embeds Base, which carries identity, creation attribution, the
// soft-delete flag and last-update attribution. Rows are never physically removed:
// a delete sets IsDeleted and stamps the update fields, so a record remains
// addressable by ID after it disappears from active listings.
//
// AuditEvent is the one shape that does not embed Base. Audit events are an
// append-only log and are never updated or soft deleted.
//
// Aggregates implement validation.Validatable (ozzo-validation) so the service
// layer can reject malformed input before it reaches a repository.
package entity
