package cache

import "github.com/goliatone/go-family-records/internal/cacheinfra"

// Cache is the process-wide store of list query results.
// Implementations serialize access internally and never fail: anything that
// goes wrong looks like a miss to the caller.
type Cache interface {
	Get(key Key) (any, bool)
	Set(key Key, value any)
	Invalidate(key Key)
	InvalidateAll(keys ...Key)
	Clear()
}

// Lookup is a type-safe wrapper around Cache.Get. A value of the wrong type is
// reported as a miss so the caller recomputes it from the store.
func Lookup[T any](c Cache, key Key) (T, bool) {
	var zero T
	raw, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return value, true
}

// backendCache adapts a string keyed cacheinfra backend to Cache.
type backendCache struct {
	backend cacheinfra.Backend
}

// New wraps a cacheinfra backend.
func New(backend cacheinfra.Backend) Cache {
	return &backendCache{backend: backend}
}

func (c *backendCache) Get(key Key) (any, bool) {
	return c.backend.Get(key.String())
}

func (c *backendCache) Set(key Key, value any) {
	c.backend.Set(key.String(), value)
}

func (c *backendCache) Invalidate(key Key) {
	c.backend.Delete(key.String())
}

func (c *backendCache) InvalidateAll(keys ...Key) {
	for _, key := range keys {
		c.backend.Delete(key.String())
	}
}

func (c *backendCache) Clear() {
	c.backend.Clear()
}
