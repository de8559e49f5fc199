package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goliatone/go-family-records/entity"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Drivers accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Options configures the connection pool opened by Open.
type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Open connects to the database named by opts and verifies the connection.
// The memory driver has no database and is rejected here.
func Open(ctx context.Context, opts Options) (*bun.DB, error) {
	var (
		sqldb *sql.DB
		db    *bun.DB
		err   error
	)

	switch opts.Driver {
	case DriverPostgres:
		if sqldb, err = sql.Open("postgres", opts.DSN); err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	case DriverSQLite:
		if sqldb, err = sql.Open("sqlite3", opts.DSN); err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// sqlite serializes writers; one connection also keeps a shared
		// in-memory database alive for the life of the pool.
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("store: unsupported driver %q", opts.Driver)
	}

	if opts.MaxOpenConns > 0 && opts.Driver != DriverSQLite {
		sqldb.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(opts.MaxIdleConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
	}
	return db, nil
}

// Models lists every table managed by the backend.
func Models() []any {
	return []any{
		(*entity.User)(nil),
		(*entity.Family)(nil),
		(*entity.FamilyMember)(nil),
		(*entity.Document)(nil),
		(*entity.BankAccount)(nil),
		(*entity.DematAccount)(nil),
		(*entity.FixedDeposit)(nil),
		(*entity.LifeInsurancePolicy)(nil),
		(*entity.MediclaimPolicy)(nil),
		(*entity.MutualFundHolding)(nil),
		(*entity.AuditEvent)(nil),
	}
}

type index struct {
	model   any
	name    string
	columns []string
}

var indexes = []index{
	{(*entity.User)(nil), "users_email_idx", []string{"email"}},
	{(*entity.Family)(nil), "families_owner_user_id_idx", []string{"owner_user_id", "is_deleted"}},
	{(*entity.FamilyMember)(nil), "family_members_family_id_idx", []string{"family_id", "is_deleted"}},
	{(*entity.Document)(nil), "documents_family_member_id_idx", []string{"family_member_id", "is_deleted"}},
	{(*entity.BankAccount)(nil), "bank_accounts_family_member_id_idx", []string{"family_member_id", "is_deleted"}},
	{(*entity.DematAccount)(nil), "demat_accounts_family_member_id_idx", []string{"family_member_id", "is_deleted"}},
	{(*entity.FixedDeposit)(nil), "fixed_deposits_family_member_id_idx", []string{"family_member_id", "is_deleted"}},
	{(*entity.LifeInsurancePolicy)(nil), "life_insurance_policies_family_member_id_idx", []string{"family_member_id", "is_deleted"}},
	{(*entity.MediclaimPolicy)(nil), "mediclaim_policies_family_member_id_idx", []string{"family_member_id", "is_deleted"}},
	{(*entity.MutualFundHolding)(nil), "mutual_fund_holdings_family_member_id_idx", []string{"family_member_id", "is_deleted"}},
	{(*entity.AuditEvent)(nil), "audit_events_actor_created_idx", []string{"actor_id", "created_at"}},
}

// CreateSchema creates every table and index that does not exist yet.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table %T: %w", model, err)
		}
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}
