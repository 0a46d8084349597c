package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vaultd",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"strategy", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vaultd",
			Name:      "search_duration_seconds",
			Help:      "Search execution duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	SearchResultsCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vaultd",
			Name:      "search_results_count",
			Help:      "Number of results in the fused set before pagination",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 200},
		},
	)

	SemanticDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vaultd",
			Name:      "search_semantic_degraded_total",
			Help:      "Searches where the semantic path degraded to empty",
		},
		[]string{"reason"},
	)

	TelemetryDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vaultd",
			Name:      "search_telemetry_dropped_total",
			Help:      "Usage events dropped because the telemetry queue was full",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultsCount)
	prometheus.MustRegister(SemanticDegradedTotal)
	prometheus.MustRegister(TelemetryDroppedTotal)
	searchMetricsRegistered = true
}
