// Package cache provides the process-wide cache of list query results used by
// the repository layer.
//
// # Overview
//
// The package exports:
//
//   - Key: a structured cache key (aggregate type + optional owning entity)
//   - Cache: Get, Set, Invalidate, InvalidateAll and Clear over Keys
//   - Lookup: a type-safe wrapper around Cache.Get
//   - Config / NewCache: backend selection (memory or sturdyc)
//   - Instrument: prometheus counters around any Cache
//
// # Keys
//
// A Key names one derived view, never a single record. TypeKey("document")
// holds every active document; ScopeKey("document", memberID) holds the active
// documents of one family member. Writes invalidate both forms so the next
// list read reloads from the store:
//
//	c.InvalidateAll(cache.TypeKey("document"), cache.ScopeKey("document", memberID))
//
// # Semantics
//
// There is no TTL and no LRU policy. An entry lives until a write invalidates
// it, or, with the sturdyc backend, until capacity eviction removes it. The
// cache is derived state: Clear may be called at any time and costs only
// performance.
//
// Cached values are shared snapshots. Callers must not mutate a slice returned
// by Lookup, every concurrent reader of the same key sees that slice.
//
// # Concurrency
//
// All operations are safe for concurrent use without external locking. A read
// that misses can race an invalidation of the same key and repopulate it with
// the result it loaded before the write committed. That window is accepted;
// the next write to the aggregate closes it.
//
// # Failure
//
// Cache operations never return errors. A value of an unexpected type is
// reported by Lookup as a miss.
package cache
