package repositorycache

import (
	"context"

	"github.com/goliatone/go-family-records/cache"
	"github.com/goliatone/go-family-records/entity"
	"github.com/goliatone/go-family-records/store"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Cache namespaces of the aggregate types, as New derives them from the
// entity type names.
const (
	AggregateUser                = "user"
	AggregateFamily              = "family"
	AggregateFamilyMember        = "family_member"
	AggregateDocument            = "document"
	AggregateBankAccount         = "bank_account"
	AggregateDematAccount        = "demat_account"
	AggregateFixedDeposit        = "fixed_deposit"
	AggregateLifeInsurancePolicy = "life_insurance_policy"
	AggregateMediclaimPolicy     = "mediclaim_policy"
	AggregateMutualFundHolding   = "mutual_fund_holding"
)

const familyMemberColumn = "family_member_id"

// Descriptors of the aggregate types. Names are left empty so each
// namespace is derived from its entity type.
var (
	UserDescriptor   = Descriptor[*entity.User]{}
	FamilyDescriptor = Descriptor[*entity.Family]{
		Scope: store.Scope[*entity.Family]{
			Column: "owner_user_id",
			Of:     func(f *entity.Family) uuid.UUID { return f.OwnerUserID },
		},
	}
	FamilyMemberDescriptor = Descriptor[*entity.FamilyMember]{
		Scope: store.Scope[*entity.FamilyMember]{
			Column: "family_id",
			Of:     func(m *entity.FamilyMember) uuid.UUID { return m.FamilyID },
		},
	}
	DocumentDescriptor = Descriptor[*entity.Document]{
		Scope: store.Scope[*entity.Document]{Column: familyMemberColumn, Of: func(d *entity.Document) uuid.UUID { return d.FamilyMemberID }},
	}
	BankAccountDescriptor = Descriptor[*entity.BankAccount]{
		Scope: store.Scope[*entity.BankAccount]{Column: familyMemberColumn, Of: func(a *entity.BankAccount) uuid.UUID { return a.FamilyMemberID }},
	}
	DematAccountDescriptor = Descriptor[*entity.DematAccount]{
		Scope: store.Scope[*entity.DematAccount]{Column: familyMemberColumn, Of: func(a *entity.DematAccount) uuid.UUID { return a.FamilyMemberID }},
	}
	FixedDepositDescriptor = Descriptor[*entity.FixedDeposit]{
		Scope: store.Scope[*entity.FixedDeposit]{Column: familyMemberColumn, Of: func(d *entity.FixedDeposit) uuid.UUID { return d.FamilyMemberID }},
	}
	LifeInsurancePolicyDescriptor = Descriptor[*entity.LifeInsurancePolicy]{
		Scope: store.Scope[*entity.LifeInsurancePolicy]{Column: familyMemberColumn, Of: func(p *entity.LifeInsurancePolicy) uuid.UUID { return p.FamilyMemberID }},
	}
	MediclaimPolicyDescriptor = Descriptor[*entity.MediclaimPolicy]{
		Scope: store.Scope[*entity.MediclaimPolicy]{Column: familyMemberColumn, Of: func(p *entity.MediclaimPolicy) uuid.UUID { return p.FamilyMemberID }},
	}
	MutualFundHoldingDescriptor = Descriptor[*entity.MutualFundHolding]{
		Scope: store.Scope[*entity.MutualFundHolding]{Column: familyMemberColumn, Of: func(h *entity.MutualFundHolding) uuid.UUID { return h.FamilyMemberID }},
	}
)

// UserRepository manages accounts. Users have no owner, so only the
// type-level list is cached.
type UserRepository struct {
	*Repository[entity.User, *entity.User]
}

// FamilyRepository manages families, listed per owning user.
type FamilyRepository struct {
	*Repository[entity.Family, *entity.Family]
}

// GetAllByOwner returns the active families owned by userID.
func (r FamilyRepository) GetAllByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Family, error) {
	return r.GetAllActiveByScope(ctx, userID)
}

// FamilyMemberRepository manages members, listed per family.
type FamilyMemberRepository struct {
	*Repository[entity.FamilyMember, *entity.FamilyMember]
}

// GetAllByFamily returns the active members of familyID.
func (r FamilyMemberRepository) GetAllByFamily(ctx context.Context, familyID uuid.UUID) ([]*entity.FamilyMember, error) {
	return r.GetAllActiveByScope(ctx, familyID)
}

// MemberRecords manages a record type owned by a family member.
type MemberRecords[E any, T store.Record[E]] struct {
	*Repository[E, T]
}

// GetAllByFamilyMember returns the active records of memberID.
func (r MemberRecords[E, T]) GetAllByFamilyMember(ctx context.Context, memberID uuid.UUID) ([]T, error) {
	return r.GetAllActiveByScope(ctx, memberID)
}

type (
	DocumentRepository            = MemberRecords[entity.Document, *entity.Document]
	BankAccountRepository         = MemberRecords[entity.BankAccount, *entity.BankAccount]
	DematAccountRepository        = MemberRecords[entity.DematAccount, *entity.DematAccount]
	FixedDepositRepository        = MemberRecords[entity.FixedDeposit, *entity.FixedDeposit]
	LifeInsurancePolicyRepository = MemberRecords[entity.LifeInsurancePolicy, *entity.LifeInsurancePolicy]
	MediclaimPolicyRepository     = MemberRecords[entity.MediclaimPolicy, *entity.MediclaimPolicy]
	MutualFundHoldingRepository   = MemberRecords[entity.MutualFundHolding, *entity.MutualFundHolding]
)

// Stores holds one Store per aggregate type.
type Stores struct {
	Users                 store.Store[*entity.User]
	Families              store.Store[*entity.Family]
	FamilyMembers         store.Store[*entity.FamilyMember]
	Documents             store.Store[*entity.Document]
	BankAccounts          store.Store[*entity.BankAccount]
	DematAccounts         store.Store[*entity.DematAccount]
	FixedDeposits         store.Store[*entity.FixedDeposit]
	LifeInsurancePolicies store.Store[*entity.LifeInsurancePolicy]
	MediclaimPolicies     store.Store[*entity.MediclaimPolicy]
	MutualFundHoldings    store.Store[*entity.MutualFundHolding]
}

// NewBunStores creates SQL backed stores for every aggregate.
func NewBunStores(db *bun.DB) Stores {
	return Stores{
		Users:                 store.NewBunStore[entity.User](db, UserDescriptor.Scope),
		Families:              store.NewBunStore[entity.Family](db, FamilyDescriptor.Scope),
		FamilyMembers:         store.NewBunStore[entity.FamilyMember](db, FamilyMemberDescriptor.Scope),
		Documents:             store.NewBunStore[entity.Document](db, DocumentDescriptor.Scope),
		BankAccounts:          store.NewBunStore[entity.BankAccount](db, BankAccountDescriptor.Scope),
		DematAccounts:         store.NewBunStore[entity.DematAccount](db, DematAccountDescriptor.Scope),
		FixedDeposits:         store.NewBunStore[entity.FixedDeposit](db, FixedDepositDescriptor.Scope),
		LifeInsurancePolicies: store.NewBunStore[entity.LifeInsurancePolicy](db, LifeInsurancePolicyDescriptor.Scope),
		MediclaimPolicies:     store.NewBunStore[entity.MediclaimPolicy](db, MediclaimPolicyDescriptor.Scope),
		MutualFundHoldings:    store.NewBunStore[entity.MutualFundHolding](db, MutualFundHoldingDescriptor.Scope),
	}
}

// NewMemoryStores creates in-process stores for every aggregate.
func NewMemoryStores() Stores {
	return Stores{
		Users:                 store.NewMemoryStore[entity.User](UserDescriptor.Scope),
		Families:              store.NewMemoryStore[entity.Family](FamilyDescriptor.Scope),
		FamilyMembers:         store.NewMemoryStore[entity.FamilyMember](FamilyMemberDescriptor.Scope),
		Documents:             store.NewMemoryStore[entity.Document](DocumentDescriptor.Scope),
		BankAccounts:          store.NewMemoryStore[entity.BankAccount](BankAccountDescriptor.Scope),
		DematAccounts:         store.NewMemoryStore[entity.DematAccount](DematAccountDescriptor.Scope),
		FixedDeposits:         store.NewMemoryStore[entity.FixedDeposit](FixedDepositDescriptor.Scope),
		LifeInsurancePolicies: store.NewMemoryStore[entity.LifeInsurancePolicy](LifeInsurancePolicyDescriptor.Scope),
		MediclaimPolicies:     store.NewMemoryStore[entity.MediclaimPolicy](MediclaimPolicyDescriptor.Scope),
		MutualFundHoldings:    store.NewMemoryStore[entity.MutualFundHolding](MutualFundHoldingDescriptor.Scope),
	}
}

// Repositories is the full set of aggregate repositories sharing one cache.
type Repositories struct {
	Users                 UserRepository
	Families              FamilyRepository
	FamilyMembers         FamilyMemberRepository
	Documents             DocumentRepository
	BankAccounts          BankAccountRepository
	DematAccounts         DematAccountRepository
	FixedDeposits         FixedDepositRepository
	LifeInsurancePolicies LifeInsurancePolicyRepository
	MediclaimPolicies     MediclaimPolicyRepository
	MutualFundHoldings    MutualFundHoldingRepository
}

// NewRepositories wires every aggregate repository to its store, the shared
// unit of work and the shared cache.
func NewRepositories(s Stores, uow store.UnitOfWork, c cache.Cache, opts ...Option) Repositories {
	return Repositories{
		Users:                 UserRepository{New[entity.User](UserDescriptor, s.Users, uow, c, opts...)},
		Families:              FamilyRepository{New[entity.Family](FamilyDescriptor, s.Families, uow, c, opts...)},
		FamilyMembers:         FamilyMemberRepository{New[entity.FamilyMember](FamilyMemberDescriptor, s.FamilyMembers, uow, c, opts...)},
		Documents:             DocumentRepository{New[entity.Document](DocumentDescriptor, s.Documents, uow, c, opts...)},
		BankAccounts:          BankAccountRepository{New[entity.BankAccount](BankAccountDescriptor, s.BankAccounts, uow, c, opts...)},
		DematAccounts:         DematAccountRepository{New[entity.DematAccount](DematAccountDescriptor, s.DematAccounts, uow, c, opts...)},
		FixedDeposits:         FixedDepositRepository{New[entity.FixedDeposit](FixedDepositDescriptor, s.FixedDeposits, uow, c, opts...)},
		LifeInsurancePolicies: LifeInsurancePolicyRepository{New[entity.LifeInsurancePolicy](LifeInsurancePolicyDescriptor, s.LifeInsurancePolicies, uow, c, opts...)},
		MediclaimPolicies:     MediclaimPolicyRepository{New[entity.MediclaimPolicy](MediclaimPolicyDescriptor, s.MediclaimPolicies, uow, c, opts...)},
		MutualFundHoldings:    MutualFundHoldingRepository{New[entity.MutualFundHolding](MutualFundHoldingDescriptor, s.MutualFundHoldings, uow, c, opts...)},
	}
}
