package service

import (
	"github.com/goliatone/go-family-records/audit"
	"github.com/goliatone/go-family-records/entity"
	"github.com/goliatone/go-family-records/repositorycache"
	"github.com/goliatone/go-family-records/store"
)

// Services is the full set of application services.
type Services struct {
	Users                 *Records[entity.User, *entity.User]
	Families              *Records[entity.Family, *entity.Family]
	FamilyMembers         *Records[entity.FamilyMember, *entity.FamilyMember]
	Documents             *Documents
	BankAccounts          *Records[entity.BankAccount, *entity.BankAccount]
	DematAccounts         *Records[entity.DematAccount, *entity.DematAccount]
	FixedDeposits         *Records[entity.FixedDeposit, *entity.FixedDeposit]
	LifeInsurancePolicies *Records[entity.LifeInsurancePolicy, *entity.LifeInsurancePolicy]
	MediclaimPolicies     *Records[entity.MediclaimPolicy, *entity.MediclaimPolicy]
	MutualFundHoldings    *Records[entity.MutualFundHolding, *entity.MutualFundHolding]
	Activity              *Activity
}

// New builds every service over repos, auditing through recorder.
func New(repos repositorycache.Repositories, recorder *audit.Recorder, opts ...ActivityOption) Services {
	return Services{
		Users:                 NewRecords(repos.Users.Repository, recorder, nil),
		Families:              NewRecords(repos.Families.Repository, recorder, describeFamily),
		FamilyMembers:         NewRecords(repos.FamilyMembers.Repository, recorder, describeFamilyMember),
		Documents:             NewDocuments(repos.Documents, recorder),
		BankAccounts:          NewRecords(repos.BankAccounts.Repository, recorder, ownedBy(repositorycache.BankAccountDescriptor.Scope)),
		DematAccounts:         NewRecords(repos.DematAccounts.Repository, recorder, ownedBy(repositorycache.DematAccountDescriptor.Scope)),
		FixedDeposits:         NewRecords(repos.FixedDeposits.Repository, recorder, ownedBy(repositorycache.FixedDepositDescriptor.Scope)),
		LifeInsurancePolicies: NewRecords(repos.LifeInsurancePolicies.Repository, recorder, ownedBy(repositorycache.LifeInsurancePolicyDescriptor.Scope)),
		MediclaimPolicies:     NewRecords(repos.MediclaimPolicies.Repository, recorder, ownedBy(repositorycache.MediclaimPolicyDescriptor.Scope)),
		MutualFundHoldings:    NewRecords(repos.MutualFundHoldings.Repository, recorder, ownedBy(repositorycache.MutualFundHoldingDescriptor.Scope)),
		Activity:              NewActivity(recorder.Repository(), opts...),
	}
}

func describeFamily(f *entity.Family) []audit.EventOption {
	return []audit.EventOption{audit.WithFamily(f.ID)}
}

func describeFamilyMember(m *entity.FamilyMember) []audit.EventOption {
	return []audit.EventOption{
		audit.WithFamily(m.FamilyID),
		audit.WithFamilyMember(m.ID),
	}
}

// ownedBy describes records by the family member their scope points at.
func ownedBy[T any](scope store.Scope[T]) Describer[T] {
	return func(record T) []audit.EventOption {
		return []audit.EventOption{audit.WithFamilyMember(scope.Of(record))}
	}
}
