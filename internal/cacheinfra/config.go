package cacheinfra

import "time"

// Backend names accepted by Config.Backend.
const (
	BackendMemory  = "memory"
	BackendSturdyc = "sturdyc"
)

// Config holds the configuration for the cache backends.
type Config struct {
	// Backend selects the implementation: "memory" (unbounded xsync map, the
	// default) or "sturdyc" (sharded, capacity bounded).
	Backend string

	// Capacity defines the maximum number of entries the sturdyc backend holds.
	// Ignored by the memory backend. Must be greater than 0 for sturdyc.
	Capacity int

	// NumShards determines the number of sturdyc shards for concurrent access.
	// Must be greater than 0 for sturdyc. Default: 64
	NumShards int

	// EvictionPercentage specifies what percentage of entries sturdyc evicts
	// when it reaches capacity. Must be between 1-100. Default: 10
	EvictionPercentage int

	// EvictionInterval sets how often sturdyc scans for evictable entries.
	// Zero value uses the library default.
	EvictionInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendMemory,
		Capacity:           10000,
		NumShards:          64,
		EvictionPercentage: 10,
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	switch c.Backend {
	case "", BackendMemory:
		return nil
	case BackendSturdyc:
	default:
		return &ConfigError{Field: "Backend", Message: "must be one of memory, sturdyc"}
	}

	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}

	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}

	if c.NumShards > c.Capacity {
		return &ConfigError{Field: "NumShards", Message: "must not exceed Capacity"}
	}

	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}

	if c.EvictionInterval < 0 {
		return &ConfigError{Field: "EvictionInterval", Message: "must be non-negative"}
	}

	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
