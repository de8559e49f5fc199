// Package store is the persistence boundary of the repository layer.
//
// A Store[T] performs the four primitive operations the repositories need:
// point lookup by ID (deleted rows included), listing of active rows with an
// optional owning-entity scope, insert and full-row update. Every method takes
// the bun.IDB of the current unit of work; a Store never opens transactions on
// its own.
//
// Two implementations are provided:
//
//   - NewBunStore: SQL via uptrace/bun, inserts through go-repository-bun
//   - NewMemoryStore: a mutex guarded map for development and tests
//
// UnitOfWork scopes one logical operation. NewBunUnitOfWork runs the callback in
// a database transaction that is committed on success and rolled back on error
// or panic; NewNoopUnitOfWork runs it directly and is only meaningful with the
// memory store.
package store
