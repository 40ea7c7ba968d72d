package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/taddeusb90/MemGPT/v1/metrics"
)

// MetricsObserver records storage operations as Prometheus metrics.
//
// It registers three collectors on the service registry:
//   - storage_operations_total{component, operation, status}
//   - storage_operation_duration_seconds{component, operation}
//   - storage_records_total{component, operation}
type MetricsObserver struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	records    *prometheus.CounterVec
}

// NewMetricsObserver creates an observer backed by the given metrics collector.
// The collectors are registered once at construction time.
func NewMetricsObserver(m metrics.MetricsCollector) *MetricsObserver {
	return &MetricsObserver{
		operations: m.CreateCounter(
			"storage_operations_total",
			"Total number of storage operations by backend, operation and status",
			[]string{"component", "operation", "status"},
		),
		duration: m.CreateHistogram(
			"storage_operation_duration_seconds",
			"Duration of storage operations in seconds",
			[]string{"component", "operation"},
			prometheus.DefBuckets,
		),
		records: m.CreateCounter(
			"storage_records_total",
			"Total number of records touched by storage operations",
			[]string{"component", "operation"},
		),
	}
}

// ObserveOperation implements Observer.
func (o *MetricsObserver) ObserveOperation(op OperationContext) {
	status := "success"
	if op.Error != nil {
		status = "error"
	}

	o.operations.WithLabelValues(op.Component, op.Operation, status).Inc()
	o.duration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())

	if op.Size > 0 {
		o.records.WithLabelValues(op.Component, op.Operation).Add(float64(op.Size))
	}
}
