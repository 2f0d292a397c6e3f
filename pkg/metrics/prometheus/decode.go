// Package prometheus supplies Prometheus-backed implementations of the
// pkg/metrics interfaces.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/openradius/raddecode/pkg/metrics"
)

func init() {
	metrics.RegisterDecodeMetricsConstructor(func() metrics.DecodeMetrics {
		return newDecodeMetrics()
	})
}

type decodeMetrics struct {
	attributesTotal  *prometheus.CounterVec
	attributeLatency *prometheus.HistogramVec
	rawFallbackTotal *prometheus.CounterVec
	fragmentsTotal   *prometheus.CounterVec
	maxDepth         prometheus.Histogram
	obfuscationFails *prometheus.CounterVec
}

func newDecodeMetrics() metrics.DecodeMetrics {
	reg := metrics.GetRegistry()

	return &decodeMetrics{
		attributesTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "raddecode_attributes_decoded_total",
				Help: "Total number of top-level attributes decoded, by attribute name",
			},
			[]string{"attribute"},
		),
		attributeLatency: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "raddecode_attribute_decode_duration_seconds",
				Help:    "Time to decode one top-level attribute",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"attribute"},
		),
		rawFallbackTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "raddecode_raw_fallback_total",
				Help: "Total number of attributes that degraded to raw octets",
			},
			[]string{"attribute"},
		),
		fragmentsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "raddecode_fragments_reassembled_total",
				Help: "Total number of fragments combined into one attribute value, by reassembly kind",
			},
			[]string{"kind"}, // "concat", "extended", "wimax"
		),
		maxDepth: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "raddecode_nesting_depth",
				Help:    "Maximum TLV/VSA/struct nesting depth reached decoding one attribute",
				Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			},
		),
		obfuscationFails: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "raddecode_obfuscation_failures_total",
				Help: "Total number of obfuscation unwrap failures by scheme",
			},
			[]string{"scheme"}, // "user_password", "tunnel_password", "ascend_secret"
		),
	}
}

func (m *decodeMetrics) RecordAttribute(attrName string, duration time.Duration, rawFallback bool) {
	if m == nil {
		return
	}
	m.attributesTotal.WithLabelValues(attrName).Inc()
	m.attributeLatency.WithLabelValues(attrName).Observe(duration.Seconds())
	if rawFallback {
		m.rawFallbackTotal.WithLabelValues(attrName).Inc()
	}
}

func (m *decodeMetrics) RecordFragments(kind string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.fragmentsTotal.WithLabelValues(kind).Add(float64(count))
}

func (m *decodeMetrics) RecordDepth(depth int) {
	if m == nil {
		return
	}
	m.maxDepth.Observe(float64(depth))
}

func (m *decodeMetrics) RecordObfuscationFailure(scheme string) {
	if m == nil {
		return
	}
	m.obfuscationFails.WithLabelValues(scheme).Inc()
}
