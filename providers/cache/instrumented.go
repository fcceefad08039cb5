package cache

import (
	"context"
	"time"

	"farmweather.app/metrics"
)

// InstrumentedStore wraps a Store and records hit/miss/latency metrics for
// one cache tier
type InstrumentedStore struct {
	store   Store
	metrics *metrics.CacheMetrics
}

func NewInstrumentedStore(store Store, cacheTier string) *InstrumentedStore {
	return &InstrumentedStore{
		store:   store,
		metrics: metrics.NewCacheMetrics(cacheTier),
	}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, bool) {
	start := time.Now()
	data, found := s.store.Get(ctx, key)
	s.metrics.RecordLatency("get", time.Since(start).Seconds())

	if found {
		s.metrics.RecordHit()
	} else {
		s.metrics.RecordMiss()
	}
	return data, found
}

func (s *InstrumentedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	start := time.Now()
	ok := s.store.Set(ctx, key, value, ttl)
	s.metrics.RecordLatency("set", time.Since(start).Seconds())
	return ok
}

func (s *InstrumentedStore) Delete(ctx context.Context, key string) bool {
	start := time.Now()
	ok := s.store.Delete(ctx, key)
	s.metrics.RecordLatency("delete", time.Since(start).Seconds())
	return ok
}

func (s *InstrumentedStore) Exists(ctx context.Context, key string) bool {
	return s.store.Exists(ctx, key)
}

// Stats exposes the tier's counters
func (s *InstrumentedStore) Stats() metrics.CacheStats {
	return s.metrics.GetStats()
}
