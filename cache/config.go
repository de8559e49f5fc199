package cache

import (
	"time"

	"github.com/goliatone/go-family-records/internal/cacheinfra"
)

// Backend names.
const (
	BackendMemory  = cacheinfra.BackendMemory
	BackendSturdyc = cacheinfra.BackendSturdyc
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	Backend            string
	Capacity           int
	NumShards          int
	EvictionPercentage int
	EvictionInterval   time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewCache constructs the cache selected by the configuration.
func NewCache(cfg Config) (Cache, error) {
	backend, err := cacheinfra.NewBackend(cfg.toInternal())
	if err != nil {
		return nil, err
	}
	return New(backend), nil
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Backend:            c.Backend,
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	return Config{
		Backend:            cfg.Backend,
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
