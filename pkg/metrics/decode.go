package metrics

import "time"

// DecodeMetrics observes the attribute decoder. Implementations must accept
// a nil pointer receiver as a no-op. NewDecodeMetrics returns a nil
// interface when metrics are disabled, and calling a method on that panics,
// so callers check the value against nil first (DecodeAttributesWithMetrics
// does).
//
// Example usage:
//
//	metrics.InitRegistry()
//	dm := metrics.NewDecodeMetrics()
//	// ... pass dm down to wherever DecodePair is called
type DecodeMetrics interface {
	// RecordAttribute records one decoded VP, with the duration of the
	// top-level DecodePair call that produced it.
	RecordAttribute(attrName string, duration time.Duration, rawFallback bool)

	// RecordFragments records how many fragments a reassembled attribute
	// (concat, long-extended, or WiMAX) combined into one value.
	RecordFragments(kind string, count int)

	// RecordDepth records the maximum TLV/VSA/struct nesting depth reached
	// while decoding one top-level attribute.
	RecordDepth(depth int)

	// RecordObfuscationFailure records an obfuscation unwrap that failed
	// and forced a raw fallback, tagged by scheme.
	RecordObfuscationFailure(scheme string)
}

// newDecodeMetrics is supplied by pkg/metrics/prometheus's init(), avoiding
// an import cycle between the interface package and its implementation.
var newDecodeMetrics func() DecodeMetrics

// RegisterDecodeMetricsConstructor is called by pkg/metrics/prometheus to
// install the concrete constructor.
func RegisterDecodeMetricsConstructor(constructor func() DecodeMetrics) {
	newDecodeMetrics = constructor
}

// NewDecodeMetrics returns a Prometheus-backed DecodeMetrics, or nil if
// metrics are not enabled.
func NewDecodeMetrics() DecodeMetrics {
	if !IsEnabled() || newDecodeMetrics == nil {
		return nil
	}
	return newDecodeMetrics()
}
