package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the guide service.
type Metrics struct {
	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,no-match,upstream-error,timeout}
	GeocodeDuration prometheus.Histogram

	// Provider fan-out metrics.
	ProviderRequests *prometheus.CounterVec   // labels: provider, outcome={success,not-configured,upstream-error,timeout,no-data}
	ProviderDuration *prometheus.HistogramVec // labels: provider

	// Tool gate metrics.
	ToolCalls    *prometheus.CounterVec // labels: tool, outcome={success,error}
	AuthFailures prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.GeocodeRequests,
		m.GeocodeDuration,
		m.ProviderRequests,
		m.ProviderDuration,
		m.ToolCalls,
		m.AuthFailures,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can construct the service repeatedly without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travel_guide",
			Name:      "geocode_requests_total",
			Help:      "Geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "travel_guide",
			Name:      "geocode_duration_seconds",
			Help:      "Geocoding request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travel_guide",
			Name:      "provider_requests_total",
			Help:      "Data provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "travel_guide",
			Name:      "provider_duration_seconds",
			Help:      "Data provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"provider"}),
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travel_guide",
			Name:      "tool_calls_total",
			Help:      "MCP tool invocations by tool and outcome.",
		}, []string{"tool", "outcome"}),
		AuthFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travel_guide",
			Name:      "auth_failures_total",
			Help:      "Requests rejected for a missing or invalid bearer token.",
		}),
	}
}
