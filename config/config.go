package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-family-records/cache"
	"github.com/goliatone/go-family-records/store"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FAMILYVAULT_DATABASE_DRIVER.
const EnvPrefix = "FAMILYVAULT"

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Audit    AuditConfig    `mapstructure:"audit"`
}

// DatabaseConfig selects the persistence driver.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// CacheConfig selects the list cache backend.
type CacheConfig struct {
	Backend            string        `mapstructure:"backend"`
	Capacity           int           `mapstructure:"capacity"`
	NumShards          int           `mapstructure:"num_shards"`
	EvictionPercentage int           `mapstructure:"eviction_percentage"`
	EvictionInterval   time.Duration `mapstructure:"eviction_interval"`
	Metrics            bool          `mapstructure:"metrics"`
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuditConfig holds audit log configuration.
type AuditConfig struct {
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Options converts the database section to store options.
func (c DatabaseConfig) Options() store.Options {
	return store.Options{
		Driver:       c.Driver,
		DSN:          c.DSN,
		MaxOpenConns: c.MaxOpenConns,
		MaxIdleConns: c.MaxIdleConns,
	}
}

// CacheConfig converts the cache section to a cache.Config.
func (c CacheConfig) CacheConfig() cache.Config {
	return cache.Config{
		Backend:            c.Backend,
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

var envKeys = []string{
	"database.driver",
	"database.dsn",
	"database.max_open_conns",
	"database.max_idle_conns",

	"cache.backend",
	"cache.capacity",
	"cache.num_shards",
	"cache.eviction_percentage",
	"cache.eviction_interval",
	"cache.metrics",

	"logging.level",
	"logging.format",

	"audit.write_timeout",
}

// Load reads configuration from defaults, the optional YAML file at
// configPath and FAMILYVAULT_ environment variables, in increasing priority.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("familyvault")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone is not consulted by Unmarshal for nested keys.
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", store.DriverSQLite)
	v.SetDefault("database.dsn", "file:familyvault.db?cache=shared&_foreign_keys=on")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)

	defaults := cache.DefaultConfig()
	v.SetDefault("cache.backend", defaults.Backend)
	v.SetDefault("cache.capacity", defaults.Capacity)
	v.SetDefault("cache.num_shards", defaults.NumShards)
	v.SetDefault("cache.eviction_percentage", defaults.EvictionPercentage)
	v.SetDefault("cache.eviction_interval", defaults.EvictionInterval)
	v.SetDefault("cache.metrics", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("audit.write_timeout", "5s")
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.Driver,
			validation.Required,
			validation.In(store.DriverPostgres, store.DriverSQLite, store.DriverMemory),
		),
		validation.Field(&c.Database.DSN,
			validation.When(c.Database.Driver != store.DriverMemory, validation.Required),
		),
		validation.Field(&c.Database.MaxOpenConns, validation.Min(0)),
		validation.Field(&c.Database.MaxIdleConns, validation.Min(0)),
	)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	err = validation.ValidateStruct(&c.Logging,
		validation.Field(&c.Logging.Format, validation.In("json", "text")),
		validation.Field(&c.Logging.Level, validation.In("debug", "info", "warn", "warning", "error")),
	)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	err = validation.ValidateStruct(&c.Audit,
		validation.Field(&c.Audit.WriteTimeout, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}

	if err := c.Cache.CacheConfig().Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}
