package entity

import (
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %T: %v", err, err)
	}
	return errs
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestValidate(t *testing.T) {
	member := uuid.New()

	tests := []struct {
		name       string
		record     validation.Validatable
		wantFields []string
	}{
		{
			name:   "valid user",
			record: &User{Email: "asha@example.com", FullName: "Asha Sharma", Role: RoleAdmin},
		},
		{
			name:       "user with bad email and role",
			record:     &User{Email: "asha", FullName: "Asha", Role: "owner"},
			wantFields: []string{"email", "role"},
		},
		{
			name:       "family without owner",
			record:     &Family{Name: "Sharma"},
			wantFields: []string{"owner_user_id"},
		},
		{
			name:       "member without family or name",
			record:     &FamilyMember{Email: "not-an-email"},
			wantFields: []string{"family_id", "first_name", "email"},
		},
		{
			name: "valid document",
			record: &Document{
				FamilyMemberID: member,
				DocumentType:   DocumentPassport,
				DocumentNumber: "P1234567",
				IssueDate:      date(2020, 1, 1),
				ExpiryDate:     date(2030, 1, 1),
			},
		},
		{
			name: "document expiring before issue",
			record: &Document{
				FamilyMemberID: member,
				DocumentType:   DocumentPAN,
				DocumentNumber: "ABCDE1234F",
				IssueDate:      date(2020, 1, 1),
				ExpiryDate:     date(2019, 1, 1),
			},
			wantFields: []string{"expiry_date"},
		},
		{
			name:       "bank account with short number",
			record:     &BankAccount{FamilyMemberID: member, BankName: "SBI", AccountNumber: "12"},
			wantFields: []string{"account_number"},
		},
		{
			name:       "demat account with unknown depository",
			record:     &DematAccount{FamilyMemberID: member, Depository: "DTC", DPID: "IN300", ClientID: "123"},
			wantFields: []string{"depository"},
		},
		{
			name: "fixed deposit with negative principal and bad rate",
			record: &FixedDeposit{
				FamilyMemberID:  member,
				BankName:        "HDFC",
				DepositNumber:   "FD-1",
				PrincipalAmount: -1,
				InterestRate:    120,
			},
			wantFields: []string{"principal_amount", "interest_rate"},
		},
		{
			name: "mutual fund without folio",
			record: &MutualFundHolding{
				FamilyMemberID: member,
				AMCName:        "AMC",
				SchemeName:     "Bluechip",
			},
			wantFields: []string{"folio_number"},
		},
		{
			name: "life policy with unknown frequency",
			record: &LifeInsurancePolicy{
				FamilyMemberID:   member,
				InsurerName:      "LIC",
				PolicyNumber:     "123",
				PremiumFrequency: "Weekly",
			},
			wantFields: []string{"premium_frequency"},
		},
		{
			name: "mediclaim ending before start",
			record: &MediclaimPolicy{
				FamilyMemberID: member,
				InsurerName:    "Star",
				PolicyNumber:   "MC-1",
				StartDate:      date(2024, 4, 1),
				EndDate:        date(2024, 3, 31),
			},
			wantFields: []string{"end_date"},
		},
		{
			name:       "audit event without actor",
			record:     &AuditEvent{Action: ActionLogin, EntityType: "user"},
			wantFields: []string{"actor_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := fieldErrors(t, tt.record.Validate())
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("expected errors on %v, got %v", tt.wantFields, errs)
			}
			for _, field := range tt.wantFields {
				if _, ok := errs[field]; !ok {
					t.Errorf("expected an error on %q, got %v", field, errs)
				}
			}
		})
	}
}

func TestBase_Touch(t *testing.T) {
	var b Base
	if b.UpdatedByValue() != "" {
		t.Error("expected empty updater")
	}

	ist := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2024, 3, 1, 14, 30, 0, 0, ist)
	b.Touch("alice", at)

	if b.UpdatedByValue() != "alice" {
		t.Errorf("expected alice, got %q", b.UpdatedByValue())
	}
	if b.UpdatedAt == nil || !b.UpdatedAt.Equal(at) || b.UpdatedAt.Location() != time.UTC {
		t.Errorf("expected %v in UTC, got %v", at, b.UpdatedAt)
	}

	var e Entity = &Document{}
	e.BaseEntity().CreatedBy = "bob"
	if e.(*Document).CreatedBy != "bob" {
		t.Error("BaseEntity must expose the embedded base")
	}
}
