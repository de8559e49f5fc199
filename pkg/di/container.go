package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goliatone/go-family-records/audit"
	"github.com/goliatone/go-family-records/cache"
	"github.com/goliatone/go-family-records/config"
	"github.com/goliatone/go-family-records/repositorycache"
	"github.com/goliatone/go-family-records/service"
	"github.com/goliatone/go-family-records/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
)

// Container owns the wired object graph of the application: database
// handle, shared list cache, repositories, audit log and services.
type Container struct {
	config   config.Config
	logger   *slog.Logger
	db       *bun.DB
	cache    cache.Cache
	repos    repositorycache.Repositories
	auditLog audit.Repository
	services service.Services
}

// Option customizes container construction.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	now        func() time.Time
}

// WithLogger sets the logger handed to components that log.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRegisterer sets where cache metrics are registered.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithClock overrides the clock of repositories, the audit log and reports.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewContainer validates cfg and wires every component it selects.
// SQL drivers open a connection pool that Close releases.
func NewContainer(ctx context.Context, cfg config.Config, opts ...Option) (*Container, error) {
	o := options{
		logger:     slog.Default(),
		registerer: prometheus.DefaultRegisterer,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	listCache, err := cache.NewCache(cfg.Cache.CacheConfig())
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	if cfg.Cache.Metrics {
		if listCache, err = cache.Instrument(listCache, o.registerer); err != nil {
			return nil, fmt.Errorf("register cache metrics: %w", err)
		}
	}

	c := &Container{
		config: cfg,
		logger: o.logger,
		cache:  listCache,
	}

	var (
		stores repositorycache.Stores
		uow    store.UnitOfWork
	)
	switch cfg.Database.Driver {
	case store.DriverMemory:
		stores = repositorycache.NewMemoryStores()
		uow = store.NewNoopUnitOfWork()
		c.auditLog = audit.NewMemoryRepository(audit.WithClock(o.now))
	default:
		db, err := store.Open(ctx, cfg.Database.Options())
		if err != nil {
			return nil, err
		}
		c.db = db
		stores = repositorycache.NewBunStores(db)
		uow = store.NewBunUnitOfWork(db)
		c.auditLog = audit.NewBunRepository(db, audit.WithClock(o.now))
	}

	c.repos = repositorycache.NewRepositories(stores, uow, listCache, repositorycache.WithClock(o.now))
	recorder := audit.NewRecorder(c.auditLog,
		audit.WithLogger(o.logger),
		audit.WithWriteTimeout(cfg.Audit.WriteTimeout),
	)
	c.services = service.New(c.repos, recorder, service.WithActivityClock(o.now))

	o.logger.Info("container ready",
		"driver", cfg.Database.Driver,
		"cache_backend", cfg.Cache.Backend,
		"cache_metrics", cfg.Cache.Metrics,
	)
	return c, nil
}

// NewInMemoryContainer wires memory stores, the memory audit log and the
// default cache, without metrics.
func NewInMemoryContainer(opts ...Option) (*Container, error) {
	cfg := config.Config{
		Database: config.DatabaseConfig{Driver: store.DriverMemory},
		Cache:    config.CacheConfig{Backend: cache.BackendMemory},
		Logging:  config.LoggingConfig{Level: "info", Format: "text"},
		Audit:    config.AuditConfig{WriteTimeout: audit.DefaultWriteTimeout},
	}
	return NewContainer(context.Background(), cfg, opts...)
}

// Migrate creates any missing tables and indexes. It is a no-op for the
// memory driver.
func (c *Container) Migrate(ctx context.Context) error {
	if c.db == nil {
		return nil
	}
	if err := store.CreateSchema(ctx, c.db); err != nil {
		return err
	}
	c.logger.Info("schema ready", "driver", c.config.Database.Driver)
	return nil
}

// Close releases the database pool, if any.
func (c *Container) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Config returns the configuration the container was built from.
func (c *Container) Config() config.Config {
	return c.config
}

// DB returns the database handle, nil for the memory driver.
func (c *Container) DB() *bun.DB {
	return c.db
}

// Cache returns the shared list cache.
func (c *Container) Cache() cache.Cache {
	return c.cache
}

// Repositories returns the cached aggregate repositories.
func (c *Container) Repositories() repositorycache.Repositories {
	return c.repos
}

// AuditLog returns the audit repository.
func (c *Container) AuditLog() audit.Repository {
	return c.auditLog
}

// Services returns the application services.
func (c *Container) Services() service.Services {
	return c.services
}
