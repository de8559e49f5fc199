package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is the shape shared by every aggregate.
// ID, CreatedAt and CreatedBy are set once by the repository and never change.
type Base struct {
	ID        uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	CreatedAt time.Time  `bun:"created_at,notnull" json:"created_at"`
	CreatedBy string     `bun:"created_by,notnull" json:"created_by"`
	IsDeleted bool       `bun:"is_deleted,notnull,default:false" json:"is_deleted"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
	UpdatedBy *string    `bun:"updated_by,nullzero" json:"updated_by,omitempty"`
}

// Entity is implemented by pointers to every aggregate through the embedded Base.
type Entity interface {
	BaseEntity() *Base
}

// BaseEntity exposes the embedded base shape.
func (b *Base) BaseEntity() *Base {
	return b
}

// Touch stamps the last-update attribution.
func (b *Base) Touch(actor string, at time.Time) {
	at = at.UTC()
	b.UpdatedAt = &at
	b.UpdatedBy = &actor
}

// UpdatedByValue returns the last updater or an empty string.
func (b *Base) UpdatedByValue() string {
	if b.UpdatedBy == nil {
		return ""
	}
	return *b.UpdatedBy
}
