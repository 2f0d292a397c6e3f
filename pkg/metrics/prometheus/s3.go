package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/openradius/raddecode/pkg/metrics"
)

func init() {
	metrics.RegisterS3MetricsConstructor(func() metrics.S3Metrics {
		return newS3Metrics()
	})
}

// s3Metrics is the Prometheus implementation of metrics.S3Metrics, covering
// dictionary fetches from object storage.
type s3Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	bytesTransferred  *prometheus.CounterVec
}

func newS3Metrics() metrics.S3Metrics {
	reg := metrics.GetRegistry()

	return &s3Metrics{
		operationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "raddecode_dictionary_s3_operations_total",
				Help: "Total number of S3 dictionary fetch operations by status",
			},
			[]string{"operation", "status"},
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "raddecode_dictionary_s3_operation_duration_seconds",
				Help:    "Duration of S3 dictionary fetch operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		bytesTransferred: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "raddecode_dictionary_s3_bytes_total",
				Help: "Total bytes transferred fetching the dictionary from S3",
			},
			[]string{"operation"},
		),
	}
}

func (m *s3Metrics) ObserveOperation(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *s3Metrics) RecordBytes(operation string, bytes int64) {
	if m == nil || bytes <= 0 {
		return
	}
	m.bytesTransferred.WithLabelValues(operation).Add(float64(bytes))
}
