package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "skychart"

// Metrics holds the Prometheus counters, histograms, and gauges for the sky chart service.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration *prometheus.HistogramVec // labels: route

	// Chart assembly metrics.
	ChartBuilds        prometheus.Counter
	ChartBuildDuration prometheus.Histogram
	ChartCache         *prometheus.CounterVec // labels: result={hit,miss}

	// Catalog metrics.
	CatalogLoads     *prometheus.CounterVec // labels: source={file,remote,sample}, outcome={success,error,empty}
	CatalogObjects   prometheus.Gauge
	CoordinateErrors *prometheus.CounterVec // labels: axis={ra,dec}
	DatasetReloads   *prometheus.CounterVec // labels: outcome={success,error}
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),
		ChartBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_builds_total",
			Help:      "Chart figures assembled (cache misses included, hits excluded).",
		}),
		ChartBuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chart_build_duration_seconds",
			Help:      "Duration of a single chart assembly.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		ChartCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_cache_total",
			Help:      "Chart cache lookups by result.",
		}, []string{"result"}),
		CatalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog load attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		CatalogObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_objects",
			Help:      "Objects in the currently published dataset.",
		}),
		CoordinateErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coordinate_parse_errors_total",
			Help:      "Catalog rows whose coordinate text could not be parsed, by axis.",
		}, []string{"axis"}),
		DatasetReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_reloads_total",
			Help:      "File-watch triggered dataset reloads by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.HTTPRequests,
		m.HTTPDuration,
		m.ChartBuilds,
		m.ChartBuildDuration,
		m.ChartCache,
		m.CatalogLoads,
		m.CatalogObjects,
		m.CoordinateErrors,
		m.DatasetReloads,
	}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// NewUnregisteredMetrics creates Metrics for one-shot commands that never
// expose /metrics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

// Register adds the metrics to reg. Useful for tests that scrape a private registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
