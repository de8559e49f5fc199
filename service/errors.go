package service

import (
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

// ErrActorRequired is returned when a mutation has no acting user.
var ErrActorRequired = goerrors.New("service: actor is required", goerrors.CategoryBadInput).
	WithTextCode("ACTOR_REQUIRED")

// IsValidation reports whether err carries the validation category.
func IsValidation(err error) bool {
	return goerrors.IsValidation(err)
}

// validate runs the record rules and returns a validation category error with
// one FieldError per violated field, sorted by field name.
func validate(entity string, v validation.Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}
	verr := goerrors.FromOzzoValidation(err, "invalid "+entity)
	sort.Slice(verr.ValidationErrors, func(i, j int) bool {
		return verr.ValidationErrors[i].Field < verr.ValidationErrors[j].Field
	})
	return verr
}
