package cacheinfra

// Backend is a string keyed, concurrency-safe value store.
// Operations are synchronous, in-memory and cannot fail.
type Backend interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	Clear()
	Keys() []string
}

// NewBackend builds the backend selected by cfg.Backend.
func NewBackend(cfg Config) (Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Backend == BackendSturdyc {
		return NewSturdycBackend(cfg)
	}
	return NewMemoryBackend(), nil
}
