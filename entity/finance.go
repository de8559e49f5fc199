package entity

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BankAccount is a savings or current account held by a family member.
type BankAccount struct {
	bun.BaseModel `bun:"table:bank_accounts,alias:ba"`
	Base

	FamilyMemberID uuid.UUID `bun:"family_member_id,type:uuid,notnull" json:"family_member_id"`
	BankName       string    `bun:"bank_name,notnull" json:"bank_name"`
	AccountNumber  string    `bun:"account_number,notnull" json:"account_number"`
	AccountType    string    `bun:"account_type" json:"account_type,omitempty"`
	IFSCCode       string    `bun:"ifsc_code" json:"ifsc_code,omitempty"`
	BranchName     string    `bun:"branch_name" json:"branch_name,omitempty"`
	NomineeName    string    `bun:"nominee_name" json:"nominee_name,omitempty"`
}

func (a *BankAccount) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.FamilyMemberID, requiredID),
		validation.Field(&a.BankName, validation.Required, validation.Length(1, 120)),
		validation.Field(&a.AccountNumber, validation.Required, validation.Length(4, 34)),
		validation.Field(&a.IFSCCode, validation.Length(0, 11)),
	)
}

// DematAccount holds securities through a depository participant.
type DematAccount struct {
	bun.BaseModel `bun:"table:demat_accounts,alias:da"`
	Base

	FamilyMemberID uuid.UUID `bun:"family_member_id,type:uuid,notnull" json:"family_member_id"`
	Depository     string    `bun:"depository,notnull" json:"depository"`
	DPID           string    `bun:"dp_id,notnull" json:"dp_id"`
	ClientID       string    `bun:"client_id,notnull" json:"client_id"`
	BrokerName     string    `bun:"broker_name" json:"broker_name,omitempty"`
	NomineeName    string    `bun:"nominee_name" json:"nominee_name,omitempty"`
}

func (a *DematAccount) Validate() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.FamilyMemberID, requiredID),
		validation.Field(&a.Depository, validation.Required, validation.In("NSDL", "CDSL")),
		validation.Field(&a.DPID, validation.Required, validation.Length(1, 16)),
		validation.Field(&a.ClientID, validation.Required, validation.Length(1, 16)),
	)
}

// FixedDeposit is a term deposit with a bank or NBFC.
type FixedDeposit struct {
	bun.BaseModel `bun:"table:fixed_deposits,alias:fd"`
	Base

	FamilyMemberID  uuid.UUID  `bun:"family_member_id,type:uuid,notnull" json:"family_member_id"`
	BankName        string     `bun:"bank_name,notnull" json:"bank_name"`
	DepositNumber   string     `bun:"deposit_number,notnull" json:"deposit_number"`
	PrincipalAmount float64    `bun:"principal_amount" json:"principal_amount"`
	InterestRate    float64    `bun:"interest_rate" json:"interest_rate"`
	StartDate       *time.Time `bun:"start_date,nullzero" json:"start_date,omitempty"`
	MaturityDate    *time.Time `bun:"maturity_date,nullzero" json:"maturity_date,omitempty"`
	MaturityAmount  float64    `bun:"maturity_amount" json:"maturity_amount,omitempty"`
	NomineeName     string     `bun:"nominee_name" json:"nominee_name,omitempty"`
}

func (d *FixedDeposit) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.FamilyMemberID, requiredID),
		validation.Field(&d.BankName, validation.Required, validation.Length(1, 120)),
		validation.Field(&d.DepositNumber, validation.Required, validation.Length(1, 64)),
		validation.Field(&d.PrincipalAmount, nonNegative),
		validation.Field(&d.InterestRate, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&d.MaturityDate, notBefore(d.StartDate, d.MaturityDate)),
	)
}

// MutualFundHolding is a folio position in one scheme.
type MutualFundHolding struct {
	bun.BaseModel `bun:"table:mutual_fund_holdings,alias:mf"`
	Base

	FamilyMemberID uuid.UUID `bun:"family_member_id,type:uuid,notnull" json:"family_member_id"`
	AMCName        string    `bun:"amc_name,notnull" json:"amc_name"`
	SchemeName     string    `bun:"scheme_name,notnull" json:"scheme_name"`
	FolioNumber    string    `bun:"folio_number,notnull" json:"folio_number"`
	Units          float64   `bun:"units" json:"units"`
	InvestedAmount float64   `bun:"invested_amount" json:"invested_amount"`
	CurrentValue   float64   `bun:"current_value" json:"current_value,omitempty"`
}

func (h *MutualFundHolding) Validate() error {
	return validation.ValidateStruct(h,
		validation.Field(&h.FamilyMemberID, requiredID),
		validation.Field(&h.AMCName, validation.Required),
		validation.Field(&h.SchemeName, validation.Required),
		validation.Field(&h.FolioNumber, validation.Required, validation.Length(1, 32)),
		validation.Field(&h.Units, nonNegative),
		validation.Field(&h.InvestedAmount, nonNegative),
	)
}
