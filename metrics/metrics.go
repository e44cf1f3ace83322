// Package metrics provides Prometheus metrics collection for the formulary
// API. It exports HTTP request metrics plus gauges sized to the loaded
// catalog collections:
//   - http_request_total: Counter with method, path, and status labels
//   - http_request_duration_seconds: Histogram with method and path labels
//   - http_request_in_flight: Gauge for concurrent requests
//   - catalog_records_total: Gauge with a collection label
//
// All metrics are automatically registered with the Prometheus default
// registry during package initialization.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen recently)",
		},
	)

	CatalogRecordsTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_records_total",
			Help: "Records currently loaded per catalog collection",
		},
		[]string{"collection"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(CatalogRecordsTotal)
}

// SetCatalogSizes records the collection sizes after a snapshot swap.
func SetCatalogSizes(medicines, cosmetics, formulary int) {
	CatalogRecordsTotal.WithLabelValues("medicines").Set(float64(medicines))
	CatalogRecordsTotal.WithLabelValues("cosmetics").Set(float64(cosmetics))
	CatalogRecordsTotal.WithLabelValues("formulary").Set(float64(formulary))
}
