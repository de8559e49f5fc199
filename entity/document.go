package entity

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Document types.
const (
	DocumentPassport       = "Passport"
	DocumentPAN            = "PAN"
	DocumentAadhaar        = "Aadhaar"
	DocumentDrivingLicense = "DrivingLicense"
	DocumentVoterID        = "VoterID"
	DocumentOther          = "Other"
)

// Document is an identity or legal document held by a family member.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`
	Base

	FamilyMemberID   uuid.UUID  `bun:"family_member_id,type:uuid,notnull" json:"family_member_id"`
	DocumentType     string     `bun:"document_type,notnull" json:"document_type"`
	DocumentNumber   string     `bun:"document_number,notnull" json:"document_number"`
	IssueDate        *time.Time `bun:"issue_date,nullzero" json:"issue_date,omitempty"`
	ExpiryDate       *time.Time `bun:"expiry_date,nullzero" json:"expiry_date,omitempty"`
	IssuingAuthority string     `bun:"issuing_authority" json:"issuing_authority,omitempty"`
	FilePath         string     `bun:"file_path" json:"file_path,omitempty"`
	Notes            string     `bun:"notes" json:"notes,omitempty"`
}

func (d *Document) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.FamilyMemberID, requiredID),
		validation.Field(&d.DocumentType, validation.Required, validation.In(
			DocumentPassport, DocumentPAN, DocumentAadhaar, DocumentDrivingLicense, DocumentVoterID, DocumentOther,
		)),
		validation.Field(&d.DocumentNumber, validation.Required, validation.Length(1, 64)),
		validation.Field(&d.ExpiryDate, notBefore(d.IssueDate, d.ExpiryDate)),
		validation.Field(&d.Notes, validation.Length(0, 2000)),
	)
}
