package repositorycache

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TextCodeNotFound tags every not-found error returned by a Repository.
const TextCodeNotFound = "RECORD_NOT_FOUND"

// ErrNotFound is the source of every not-found error and matches through
// errors.Is.
var ErrNotFound = errors.New("record not found")

// ErrNotScoped is returned when a scoped list is requested for an aggregate
// that has no owning reference.
var ErrNotScoped = errors.New("aggregate has no owning scope")

// NotFound reports a missing record of one aggregate type. The result carries
// the not_found category and the aggregate and id as metadata.
func NotFound(aggregate string, id uuid.UUID) *goerrors.Error {
	return goerrors.Wrap(ErrNotFound, goerrors.CategoryNotFound, fmt.Sprintf("%s %s", aggregate, id)).
		WithTextCode(TextCodeNotFound).
		WithMetadata(map[string]any{
			"aggregate": aggregate,
			"id":        id.String(),
		})
}

// IsNotFound reports whether err is, or wraps, a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
