package cache

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type instrumentedCache struct {
	next          Cache
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	sets          *prometheus.CounterVec
	invalidations *prometheus.CounterVec
}

// Instrument wraps c with per-aggregate hit, miss, set and invalidation
// counters. A nil registerer leaves the counters unregistered. Registering the
// same collectors twice reuses the ones already present.
func Instrument(c Cache, reg prometheus.Registerer) (Cache, error) {
	counter := func(name, help string) (*prometheus.CounterVec, error) {
		vec := prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "familyvault",
			Subsystem: "cache",
			Name:      name,
			Help:      help,
		}, []string{"aggregate"})
		return register(reg, vec)
	}

	ic := &instrumentedCache{next: c}
	var err error
	if ic.hits, err = counter("hits_total", "List lookups served from the cache."); err != nil {
		return nil, err
	}
	if ic.misses, err = counter("misses_total", "List lookups that fell through to the store."); err != nil {
		return nil, err
	}
	if ic.sets, err = counter("sets_total", "List results stored in the cache."); err != nil {
		return nil, err
	}
	if ic.invalidations, err = counter("invalidations_total", "Cache keys invalidated by writes."); err != nil {
		return nil, err
	}
	return ic, nil
}

func register(reg prometheus.Registerer, vec *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if reg == nil {
		return vec, nil
	}
	if err := reg.Register(vec); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return vec, nil
}

func (c *instrumentedCache) Get(key Key) (any, bool) {
	value, ok := c.next.Get(key)
	if ok {
		c.hits.WithLabelValues(key.Aggregate).Inc()
	} else {
		c.misses.WithLabelValues(key.Aggregate).Inc()
	}
	return value, ok
}

func (c *instrumentedCache) Set(key Key, value any) {
	c.next.Set(key, value)
	c.sets.WithLabelValues(key.Aggregate).Inc()
}

func (c *instrumentedCache) Invalidate(key Key) {
	c.next.Invalidate(key)
	c.invalidations.WithLabelValues(key.Aggregate).Inc()
}

func (c *instrumentedCache) InvalidateAll(keys ...Key) {
	c.next.InvalidateAll(keys...)
	for _, key := range keys {
		c.invalidations.WithLabelValues(key.Aggregate).Inc()
	}
}

func (c *instrumentedCache) Clear() {
	c.next.Clear()
}
