package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// memoryStore keeps rows by value so callers never share memory with it;
// every read returns a fresh copy.
type memoryStore[E any, T Record[E]] struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]E
	order []uuid.UUID
	scope Scope[T]
}

// NewMemoryStore creates an empty in-process Store. The db argument of its
// methods is ignored.
func NewMemoryStore[E any, T Record[E]](scope Scope[T]) Store[T] {
	return &memoryStore[E, T]{
		rows:  make(map[uuid.UUID]E),
		scope: scope,
	}
}

func (m *memoryStore[E, T]) FindByID(ctx context.Context, _ bun.IDB, id uuid.UUID) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[id]
	if !ok {
		return zero, ErrRecordNotFound
	}
	return T(&row), nil
}

func (m *memoryStore[E, T]) ListActive(ctx context.Context, _ bun.IDB, scope uuid.UUID) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]T, 0)
	for _, id := range m.order {
		row := m.rows[id]
		record := T(&row)
		if record.BaseEntity().IsDeleted {
			continue
		}
		if scope != uuid.Nil && m.scope.Scoped() && m.scope.Of(record) != scope {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (m *memoryStore[E, T]) Insert(ctx context.Context, _ bun.IDB, record T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	base := record.BaseEntity()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if _, exists := m.rows[base.ID]; exists {
		return zero, fmt.Errorf("%w: %s", ErrDuplicateKey, base.ID)
	}
	m.rows[base.ID] = *record
	m.order = append(m.order, base.ID)

	stored := m.rows[base.ID]
	return T(&stored), nil
}

func (m *memoryStore[E, T]) Update(ctx context.Context, _ bun.IDB, record T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := record.BaseEntity().ID
	if _, exists := m.rows[id]; !exists {
		return zero, ErrRecordNotFound
	}
	m.rows[id] = *record

	stored := m.rows[id]
	return T(&stored), nil
}
