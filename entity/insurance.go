package entity

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Premium frequencies.
const (
	PremiumMonthly    = "Monthly"
	PremiumQuarterly  = "Quarterly"
	PremiumHalfYearly = "HalfYearly"
	PremiumYearly     = "Yearly"
	PremiumSingle     = "Single"
)

var premiumFrequencies = []interface{}{PremiumMonthly, PremiumQuarterly, PremiumHalfYearly, PremiumYearly, PremiumSingle}

// LifeInsurancePolicy covers the life of a family member.
type LifeInsurancePolicy struct {
	bun.BaseModel `bun:"table:life_insurance_policies,alias:lip"`
	Base

	FamilyMemberID   uuid.UUID  `bun:"family_member_id,type:uuid,notnull" json:"family_member_id"`
	InsurerName      string     `bun:"insurer_name,notnull" json:"insurer_name"`
	PolicyNumber     string     `bun:"policy_number,notnull" json:"policy_number"`
	PlanName         string     `bun:"plan_name" json:"plan_name,omitempty"`
	SumAssured       float64    `bun:"sum_assured" json:"sum_assured"`
	PremiumAmount    float64    `bun:"premium_amount" json:"premium_amount"`
	PremiumFrequency string     `bun:"premium_frequency" json:"premium_frequency,omitempty"`
	StartDate        *time.Time `bun:"start_date,nullzero" json:"start_date,omitempty"`
	MaturityDate     *time.Time `bun:"maturity_date,nullzero" json:"maturity_date,omitempty"`
	NomineeName      string     `bun:"nominee_name" json:"nominee_name,omitempty"`
}

func (p *LifeInsurancePolicy) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.FamilyMemberID, requiredID),
		validation.Field(&p.InsurerName, validation.Required),
		validation.Field(&p.PolicyNumber, validation.Required, validation.Length(1, 64)),
		validation.Field(&p.SumAssured, nonNegative),
		validation.Field(&p.PremiumAmount, nonNegative),
		validation.Field(&p.PremiumFrequency, validation.In(premiumFrequencies...)),
		validation.Field(&p.MaturityDate, notBefore(p.StartDate, p.MaturityDate)),
	)
}

// MediclaimPolicy is a health cover that may include several members.
type MediclaimPolicy struct {
	bun.BaseModel `bun:"table:mediclaim_policies,alias:mp"`
	Base

	FamilyMemberID uuid.UUID  `bun:"family_member_id,type:uuid,notnull" json:"family_member_id"`
	InsurerName    string     `bun:"insurer_name,notnull" json:"insurer_name"`
	PolicyNumber   string     `bun:"policy_number,notnull" json:"policy_number"`
	PolicyType     string     `bun:"policy_type" json:"policy_type,omitempty"`
	SumInsured     float64    `bun:"sum_insured" json:"sum_insured"`
	PremiumAmount  float64    `bun:"premium_amount" json:"premium_amount"`
	StartDate      *time.Time `bun:"start_date,nullzero" json:"start_date,omitempty"`
	EndDate        *time.Time `bun:"end_date,nullzero" json:"end_date,omitempty"`
	CoveredMembers string     `bun:"covered_members" json:"covered_members,omitempty"`
}

func (p *MediclaimPolicy) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.FamilyMemberID, requiredID),
		validation.Field(&p.InsurerName, validation.Required),
		validation.Field(&p.PolicyNumber, validation.Required, validation.Length(1, 64)),
		validation.Field(&p.SumInsured, nonNegative),
		validation.Field(&p.PremiumAmount, nonNegative),
		validation.Field(&p.EndDate, notBefore(p.StartDate, p.EndDate)),
	)
}
