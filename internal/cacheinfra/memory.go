package cacheinfra

import "github.com/puzpuzpuz/xsync/v3"

// memoryBackend keeps entries until they are deleted. There is no capacity
// bound and no expiry; the number of keys is bounded by aggregate types times
// owning entities.
type memoryBackend struct {
	entries *xsync.MapOf[string, any]
}

// NewMemoryBackend creates the default unbounded backend.
func NewMemoryBackend() *memoryBackend {
	return &memoryBackend{entries: xsync.NewMapOf[string, any]()}
}

func (m *memoryBackend) Get(key string) (any, bool) {
	return m.entries.Load(key)
}

func (m *memoryBackend) Set(key string, value any) {
	m.entries.Store(key, value)
}

func (m *memoryBackend) Delete(key string) {
	m.entries.Delete(key)
}

func (m *memoryBackend) Clear() {
	m.entries.Clear()
}

func (m *memoryBackend) Keys() []string {
	keys := make([]string, 0, m.entries.Size())
	m.entries.Range(func(key string, _ any) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}
