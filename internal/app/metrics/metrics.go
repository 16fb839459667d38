// Package metrics exposes Prometheus collectors for operation outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	operationResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "ops",
			Name:      "results_total",
			Help:      "Total number of operation results by terminal status.",
		},
		[]string{"operation", "status"},
	)

	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "ops",
			Name:      "duration_seconds",
			Help:      "Duration from trigger to terminal envelope.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"operation"},
	)
)

func init() {
	Registry.MustRegister(operationResults, operationDuration)
}

// ObserveOperation records one finished operation.
func ObserveOperation(operation, status string, d time.Duration) {
	operationResults.WithLabelValues(operation, status).Inc()
	operationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// Handler returns an HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
