package cacheinfra

import (
	"time"

	"github.com/viccon/sturdyc"
)

// sturdyc requires a TTL. Entries here are only ever removed by invalidation or
// capacity eviction, so the TTL is set far beyond any process lifetime.
const sturdycTTL = 100 * 365 * 24 * time.Hour

// sturdycBackend wraps a sturdyc client. Evicting an entry under capacity
// pressure only costs a store round trip on the next read.
type sturdycBackend struct {
	client *sturdyc.Client[any]
}

// NewSturdycBackend creates a capacity bounded backend.
func NewSturdycBackend(cfg Config) (*sturdycBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		sturdycTTL,
		cfg.EvictionPercentage,
		options...,
	)

	return &sturdycBackend{client: client}, nil
}

func (s *sturdycBackend) Get(key string) (any, bool) {
	return s.client.Get(key)
}

func (s *sturdycBackend) Set(key string, value any) {
	s.client.Set(key, value)
}

func (s *sturdycBackend) Delete(key string) {
	s.client.Delete(key)
}

// Clear deletes every key currently held by the client.
func (s *sturdycBackend) Clear() {
	for _, key := range s.client.ScanKeys() {
		s.client.Delete(key)
	}
}

func (s *sturdycBackend) Keys() []string {
	return s.client.ScanKeys()
}
