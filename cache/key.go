package cache

import (
	"strings"

	"github.com/google/uuid"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// Key identifies one derived list result: every active record of an aggregate
// type, optionally narrowed to a single owning entity.
type Key struct {
	Aggregate string
	Scope     uuid.UUID
}

// TypeKey returns the key of the unscoped list for an aggregate type.
func TypeKey(aggregate string) Key {
	return Key{Aggregate: aggregate}
}

// ScopeKey returns the key of the list of an aggregate type owned by scope.
func ScopeKey(aggregate string, scope uuid.UUID) Key {
	return Key{Aggregate: aggregate, Scope: scope}
}

// Scoped reports whether the key narrows the list to an owning entity.
func (k Key) Scoped() bool {
	return k.Scope != uuid.Nil
}

// String renders the key as stored by the cache backends, e.g. "document" or
// "document::<uuid>". Aggregate names never contain the separator so the two
// forms cannot collide.
func (k Key) String() string {
	if !k.Scoped() {
		return k.Aggregate
	}
	var b strings.Builder
	b.Grow(len(k.Aggregate) + len(KeySeparator) + 36)
	b.WriteString(k.Aggregate)
	b.WriteString(KeySeparator)
	b.WriteString(k.Scope.String())
	return b.String()
}

// ParseKey is the inverse of Key.String.
func ParseKey(s string) (Key, bool) {
	aggregate, scope, found := strings.Cut(s, KeySeparator)
	if aggregate == "" {
		return Key{}, false
	}
	if !found {
		return TypeKey(aggregate), true
	}
	id, err := uuid.Parse(scope)
	if err != nil || id == uuid.Nil {
		return Key{}, false
	}
	return ScopeKey(aggregate, id), true
}
