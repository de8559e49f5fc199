package entity

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"
)

// User roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User is an account that owns families and performs mutations.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	Base

	Email        string `bun:"email,notnull" json:"email"`
	FullName     string `bun:"full_name,notnull" json:"full_name"`
	PasswordHash string `bun:"password_hash" json:"-"`
	Role         string `bun:"role,notnull" json:"role"`
}

func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&u.Role, validation.Required, validation.In(RoleMember, RoleAdmin)),
	)
}
