package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters for one notifier run. The process
// is one-shot, so nothing scrapes these live; they are read back at exit
// for the run summary and asserted directly in tests.
type Metrics struct {
	ForecastRequests *prometheus.CounterVec // labels: outcome={success,error}
	DirectoryLoads   *prometheus.CounterVec // labels: outcome={success,error}
	Resolutions      *prometheus.CounterVec // labels: result={resolved,not_found,ambiguous,error}
	Deliveries       *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all notifier metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ForecastRequests,
		m.DirectoryLoads,
		m.Resolutions,
		m.Deliveries,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_notifier",
			Name:      "forecast_requests_total",
			Help:      "Forecast provider requests by outcome.",
		}, []string{"outcome"}),
		DirectoryLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_notifier",
			Name:      "directory_loads_total",
			Help:      "Workspace directory listing attempts by outcome.",
		}, []string{"outcome"}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_notifier",
			Name:      "resolutions_total",
			Help:      "Recipient token resolutions by result.",
		}, []string{"result"}),
		Deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_notifier",
			Name:      "deliveries_total",
			Help:      "Message posts by outcome.",
		}, []string{"outcome"}),
	}
}
