package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "farm_sectors"

// Metrics holds the Prometheus counters and histograms for the sector pipeline.
type Metrics struct {
	Aggregations        *prometheus.CounterVec   // labels: category, outcome={success,malformed,fetch_error,aggregate_error}
	SectorsProduced     *prometheus.CounterVec   // labels: category
	PolygonsDropped     *prometheus.CounterVec   // labels: category
	SourceFetchDuration *prometheus.HistogramVec // labels: category

	SnapshotsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Aggregations,
		m.SectorsProduced,
		m.PolygonsDropped,
		m.SourceFetchDuration,
		m.SnapshotsPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Aggregations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregations_total",
			Help:      "Category aggregations by outcome.",
		}, []string{"category", "outcome"}),
		SectorsProduced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sectors_produced_total",
			Help:      "Sectors emitted by successful aggregations.",
		}, []string{"category"}),
		PolygonsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polygons_dropped_total",
			Help:      "Raw records discarded during normalization.",
		}, []string{"category"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Time to fetch a category document from the polygon source.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"category"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_published_total",
			Help:      "Category snapshots written to the sink.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Snapshot publish failures.",
		}),
	}
}
