package entity

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

var errIDRequired = errors.New("cannot be blank")

// requiredID rejects uuid.Nil; validation.Required treats a zero array as present.
var requiredID = validation.By(func(value interface{}) error {
	switch id := value.(type) {
	case uuid.UUID:
		if id == uuid.Nil {
			return errIDRequired
		}
	case *uuid.UUID:
		if id == nil || *id == uuid.Nil {
			return errIDRequired
		}
	}
	return nil
})

// notBefore applies when both dates are present.
func notBefore(start *time.Time, end *time.Time) validation.Rule {
	if start == nil || end == nil {
		return validation.Skip
	}
	return validation.Min(*start).Error("must not be before the start date")
}

var nonNegative = validation.Min(0.0)
