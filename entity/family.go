package entity

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Family groups members under one owning user.
type Family struct {
	bun.BaseModel `bun:"table:families,alias:f"`
	Base

	OwnerUserID uuid.UUID `bun:"owner_user_id,type:uuid,notnull" json:"owner_user_id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
}

func (f *Family) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.OwnerUserID, requiredID),
		validation.Field(&f.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&f.Description, validation.Length(0, 1000)),
	)
}

// FamilyMember is a person inside a family; financial records hang off members.
type FamilyMember struct {
	bun.BaseModel `bun:"table:family_members,alias:fm"`
	Base

	FamilyID     uuid.UUID  `bun:"family_id,type:uuid,notnull" json:"family_id"`
	FirstName    string     `bun:"first_name,notnull" json:"first_name"`
	LastName     string     `bun:"last_name" json:"last_name,omitempty"`
	Relationship string     `bun:"relationship" json:"relationship,omitempty"`
	DateOfBirth  *time.Time `bun:"date_of_birth,nullzero" json:"date_of_birth,omitempty"`
	Email        string     `bun:"email" json:"email,omitempty"`
	Phone        string     `bun:"phone" json:"phone,omitempty"`
}

func (m *FamilyMember) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.FamilyID, requiredID),
		validation.Field(&m.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&m.LastName, validation.Length(0, 100)),
		validation.Field(&m.Email, is.EmailFormat),
		validation.Field(&m.Phone, validation.Length(0, 32)),
	)
}
