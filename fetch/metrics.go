package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the fetch loop.
type Metrics struct {
	ObjectsDiscovered prometheus.Counter
	ObjectsFetched    *prometheus.CounterVec // label: station
	FetchErrors       *prometheus.CounterVec // label: stage={list,get,decode,save}
	FetcherRunning    prometheus.Gauge
	CycleDuration     prometheus.Histogram
}

// NewMetrics creates and registers the fetch metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ObjectsDiscovered,
		m.ObjectsFetched,
		m.FetchErrors,
		m.FetcherRunning,
		m.CycleDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so parallel
// tests do not trip duplicate-registration panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ObjectsDiscovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rda_fetch",
			Name:      "objects_discovered_total",
			Help:      "Total new objects seen in bucket listings.",
		}),
		ObjectsFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rda_fetch",
			Name:      "objects_fetched_total",
			Help:      "Frames downloaded and stored, by station.",
		}, []string{"station"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rda_fetch",
			Name:      "errors_total",
			Help:      "Fetch pipeline failures by stage.",
		}, []string{"stage"}),
		FetcherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rda_fetch",
			Name:      "running",
			Help:      "1 while the polling loop is active.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rda_fetch",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete discovery cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 15, 60},
		}),
	}
}
