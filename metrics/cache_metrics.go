package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type CacheMetricsCollector struct {
	Hits     *prometheus.CounterVec
	Misses   *prometheus.CounterVec
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
	HitRatio *prometheus.GaugeVec
}

var (
	globalCollector *CacheMetricsCollector
	collectorOnce   sync.Once
)

func getCollector() *CacheMetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = &CacheMetricsCollector{
			Hits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "forecast_cache_hits_total",
					Help: "The total number of forecast cache hits",
				},
				[]string{"cache_tier"},
			),
			Misses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "forecast_cache_misses_total",
					Help: "The total number of forecast cache misses",
				},
				[]string{"cache_tier"},
			),
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "forecast_cache_requests_total",
					Help: "The total number of forecast cache requests",
				},
				[]string{"cache_tier"},
			),
			Latency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "forecast_cache_duration_seconds",
					Help:    "Cache operation duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"cache_tier", "operation"},
			),
			HitRatio: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "forecast_cache_hit_ratio",
					Help: "Cache hit ratio (hits/total requests)",
				},
				[]string{"cache_tier"},
			),
		}
	})
	return globalCollector
}

// CacheMetrics tracks hit/miss counters for one cache tier (redis, memory)
type CacheMetrics struct {
	cacheTier string
	hits      int64
	misses    int64
	total     int64
	collector *CacheMetricsCollector
	mu        sync.RWMutex
}

func NewCacheMetrics(cacheTier string) *CacheMetrics {
	return &CacheMetrics{
		cacheTier: cacheTier,
		collector: getCollector(),
	}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.total++
	m.collector.Hits.WithLabelValues(m.cacheTier).Inc()
	m.collector.Requests.WithLabelValues(m.cacheTier).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.total++
	m.collector.Misses.WithLabelValues(m.cacheTier).Inc()
	m.collector.Requests.WithLabelValues(m.cacheTier).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordLatency(operation string, duration float64) {
	m.collector.Latency.WithLabelValues(m.cacheTier, operation).Observe(duration)
}

// updateHitRatio updates the Prometheus hit ratio gauge.
// Must be called while holding the mutex.
func (m *CacheMetrics) updateHitRatio() {
	if m.total > 0 {
		ratio := float64(m.hits) / float64(m.total)
		m.collector.HitRatio.WithLabelValues(m.cacheTier).Set(ratio)
	}
}

type CacheStats struct {
	Hits     int64
	Misses   int64
	Total    int64
	HitRatio float64
}

func (m *CacheMetrics) GetStats() CacheStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hitRatio float64
	if m.total > 0 {
		hitRatio = float64(m.hits) / float64(m.total)
	}

	return CacheStats{
		Hits:     m.hits,
		Misses:   m.misses,
		Total:    m.total,
		HitRatio: hitRatio,
	}
}
