package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/openradius/raddecode/pkg/metrics"
)

func init() {
	metrics.RegisterBadgerMetricsConstructor(func() metrics.BadgerMetrics {
		return newBadgerMetrics()
	})
}

// badgerMetrics is the Prometheus implementation of metrics.BadgerMetrics,
// covering the BadgerDB-backed unknown-descriptor cache.
type badgerMetrics struct {
	cacheHitRatio *prometheus.GaugeVec
	cacheMisses   *prometheus.CounterVec
	cacheHits     *prometheus.CounterVec
}

func newBadgerMetrics() metrics.BadgerMetrics {
	reg := metrics.GetRegistry()

	return &badgerMetrics{
		cacheHitRatio: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "raddecode_unknown_cache_hit_ratio",
				Help: "Unknown-descriptor cache hit ratio (0.0 to 1.0) by record type",
			},
			[]string{"cache_type"}, // "attribute", "vendor"
		),
		cacheMisses: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "raddecode_unknown_cache_misses_total",
				Help: "Total number of unknown-descriptor cache misses by record type",
			},
			[]string{"cache_type"},
		),
		cacheHits: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "raddecode_unknown_cache_hits_total",
				Help: "Total number of unknown-descriptor cache hits by record type",
			},
			[]string{"cache_type"},
		),
	}
}

func (m *badgerMetrics) RecordCacheHitRatio(cacheType string, ratio float64) {
	if m == nil {
		return
	}
	m.cacheHitRatio.WithLabelValues(cacheType).Set(ratio)
}

func (m *badgerMetrics) RecordCacheMiss(cacheType string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(cacheType).Inc()
}

func (m *badgerMetrics) RecordCacheHit(cacheType string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(cacheType).Inc()
}
