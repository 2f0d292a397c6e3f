package metrics

// BadgerMetrics observes the BadgerDB-backed unknown-descriptor cache.
// Implementations must accept a nil receiver as a no-op.
type BadgerMetrics interface {
	// RecordCacheHit records a lookup that found a previously fabricated
	// unknown attribute or vendor record.
	RecordCacheHit(cacheType string)

	// RecordCacheMiss records a lookup that found nothing cached.
	RecordCacheMiss(cacheType string)

	// RecordCacheHitRatio records the current hit ratio (0.0 to 1.0) for a
	// cache type, for dashboards that prefer a gauge over derived counters.
	RecordCacheHitRatio(cacheType string, ratio float64)
}

// newBadgerMetrics is supplied by pkg/metrics/prometheus's init(), avoiding
// an import cycle between the interface package and its implementation.
var newBadgerMetrics func() BadgerMetrics

// RegisterBadgerMetricsConstructor is called by pkg/metrics/prometheus to
// install the concrete constructor.
func RegisterBadgerMetricsConstructor(constructor func() BadgerMetrics) {
	newBadgerMetrics = constructor
}

// NewBadgerMetrics returns a Prometheus-backed BadgerMetrics, or nil if
// metrics are not enabled.
func NewBadgerMetrics() BadgerMetrics {
	if !IsEnabled() || newBadgerMetrics == nil {
		return nil
	}
	return newBadgerMetrics()
}

// RecordCacheHit records m's hit if m is non-nil.
func RecordCacheHit(m BadgerMetrics, cacheType string) {
	if m != nil {
		m.RecordCacheHit(cacheType)
	}
}

// RecordCacheMiss records m's miss if m is non-nil.
func RecordCacheMiss(m BadgerMetrics, cacheType string) {
	if m != nil {
		m.RecordCacheMiss(cacheType)
	}
}
