// Package repositorycache provides the cached, soft-deleting repository used for
// every aggregate type of the family records backend.
//
// # Overview
//
// Repository[E, T] is one generic component parameterized by an entity type and
// a Descriptor (cache namespace + owning scope). It couples a store.Store with
// the shared cache.Cache:
//
//   - GetByID reads straight from the store and returns soft deleted records too
//   - GetAllActive and GetAllActiveByScope are read-through: cache hit, or
//     store query for non-deleted rows followed by cache.Set
//   - Add, Update and DeleteByID run in one store.UnitOfWork and invalidate the
//     affected list keys after it commits
//
// # Basic Usage
//
//	stores := repositorycache.NewBunStores(db)
//	repos := repositorycache.NewRepositories(stores, store.NewBunUnitOfWork(db), c)
//
//	doc, err := repos.Documents.Add(ctx, &entity.Document{...}, actor)
//	docs, err := repos.Documents.GetAllByFamilyMember(ctx, memberID)
//	err = repos.Documents.DeleteByID(ctx, doc.ID, actor)
//
// # Cache Invalidation Strategy
//
// A write to a record invalidates:
//
//   - the type key of its aggregate (the unscoped list)
//   - the scope key of the owner it had before the write
//   - the scope key of the owner it has after the write
//
// The last two differ only when an update moves a record to another owner.
// Keys derives the set mechanically from the scopes involved.
//
// # Soft Delete
//
// DeleteByID never removes a row. It sets IsDeleted, UpdatedAt and UpdatedBy in
// one update. SoftDelete does the same and also reports the stored row and
// whether the call changed it.
//
// Update keeps the stored IsDeleted, ID, CreatedAt and CreatedBy whatever the
// caller passes. It stamps and persists a copy of its argument, so a record
// taken from a cached list is never modified in place.
//
// # Error Handling
//
// A missing ID on GetByID, Update or DeleteByID yields a go-errors not_found
// error built by NotFound, matched by errors.Is(err, ErrNotFound). Every other
// store error is returned unchanged. A failed write leaves the cache untouched.
//
// # Consistency
//
// A list read that misses concurrently with a write to the same aggregate may
// store the list it loaded before the write committed. The entry stays stale
// until the next write to that aggregate or scope. This window is accepted;
// there is no cross-request locking around cache population.
package repositorycache
