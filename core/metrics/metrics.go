package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "geotree"

// Metrics holds the Prometheus collectors for country imports.
type Metrics struct {
	RecordsFetched    prometheus.Counter
	RecordsImported   prometheus.Counter
	RecordFailures    *prometheus.CounterVec // labels: kind={mapping,persistence}
	TermsReconciled   *prometheus.CounterVec // labels: outcome={created,updated}
	TranslationsSaved prometheus.Counter
	ImportRuns        *prometheus.CounterVec // labels: outcome={success,fetch_error,canceled}
	ImportDuration    prometheus.Histogram
	ImportRunning     prometheus.Gauge
	SnapshotsArchived prometheus.Counter
	SnapshotFailures  prometheus.Counter
}

// NewMetrics creates and registers all import metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RecordsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_fetched_total",
			Help:      "Country records returned by the remote source.",
		}),
		RecordsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_imported_total",
			Help:      "Country records reconciled successfully.",
		}),
		RecordFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_failures_total",
			Help:      "Country records skipped, by failure kind.",
		}, []string{"kind"}),
		TermsReconciled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terms_reconciled_total",
			Help:      "Terms written by the reconcile engine, by outcome.",
		}, []string{"outcome"}),
		TranslationsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translations_saved_total",
			Help:      "Non-default translations written during imports.",
		}),
		ImportRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_runs_total",
			Help:      "Import runs by outcome.",
		}, []string{"outcome"}),
		ImportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_duration_seconds",
			Help:      "Duration of a complete import run.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		ImportRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "import_running",
			Help:      "1 while an import is in progress.",
		}),
		SnapshotsArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_archived_total",
			Help:      "Fetched documents written to object storage.",
		}),
		SnapshotFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_failures_total",
			Help:      "Fetched documents that could not be archived.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.RecordsFetched,
		m.RecordsImported,
		m.RecordFailures,
		m.TermsReconciled,
		m.TranslationsSaved,
		m.ImportRuns,
		m.ImportDuration,
		m.ImportRunning,
		m.SnapshotsArchived,
		m.SnapshotFailures,
	}
}
