package metrics

import "time"

// S3Metrics observes fetches of the attribute dictionary from object
// storage (pkg/radius/dictionary/dictsource). Implementations must accept a
// nil receiver as a no-op.
type S3Metrics interface {
	// ObserveOperation records one S3 operation's duration and outcome.
	ObserveOperation(operation string, duration time.Duration, err error)

	// RecordBytes records bytes transferred for a fetch.
	RecordBytes(operation string, bytes int64)
}

// newS3Metrics is supplied by pkg/metrics/prometheus's init(), avoiding an
// import cycle between the interface package and its implementation.
var newS3Metrics func() S3Metrics

// RegisterS3MetricsConstructor is called by pkg/metrics/prometheus to
// install the concrete constructor.
func RegisterS3MetricsConstructor(constructor func() S3Metrics) {
	newS3Metrics = constructor
}

// NewS3Metrics returns a Prometheus-backed S3Metrics, or nil if metrics are
// not enabled.
func NewS3Metrics() S3Metrics {
	if !IsEnabled() || newS3Metrics == nil {
		return nil
	}
	return newS3Metrics()
}

// ObserveOperation records m's operation if m is non-nil.
func ObserveOperation(m S3Metrics, operation string, duration time.Duration, err error) {
	if m != nil {
		m.ObserveOperation(operation, duration, err)
	}
}

// RecordBytes records m's byte count if m is non-nil.
func RecordBytes(m S3Metrics, operation string, bytes int64) {
	if m != nil {
		m.RecordBytes(operation, bytes)
	}
}
