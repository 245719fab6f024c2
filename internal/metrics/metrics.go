// Package metrics exposes Prometheus collectors for catalog operations.
// Collectors register on the default registry; embedders decide how (or
// whether) to expose them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for catalog operations.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Prometheus metrics.
var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_operations_total",
			Help: "Total number of catalog mutation operations",
		},
		[]string{"op", "outcome"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_operation_duration_seconds",
			Help:    "Catalog operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	persistFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_persist_failures_total",
			Help: "Total number of swallowed collection write failures",
		},
	)

	productCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_products",
			Help: "Current number of products in the collection",
		},
	)
)

// ObserveOperation records one finished operation with its outcome.
func ObserveOperation(op, outcome string, start time.Time) {
	operationsTotal.WithLabelValues(op, outcome).Inc()
	operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// PersistFailure counts a swallowed write failure.
func PersistFailure() {
	persistFailuresTotal.Inc()
}

// SetProductCount updates the collection size gauge.
func SetProductCount(n int) {
	productCount.Set(float64(n))
}
