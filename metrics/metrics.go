// Package metrics defines the Prometheus collectors for citation processing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "reflinks"

// Document outcomes recorded by DocumentsProcessed.
const (
	OutcomeUnchanged = "unchanged"
	OutcomeRewritten = "rewritten"
	OutcomeDryRun    = "dry_run"
	OutcomeError     = "error"
)

// Metrics holds the processing collectors.
type Metrics struct {
	DocumentsProcessed *prometheus.CounterVec
	CitationsScanned   prometheus.Counter
	CitationsMerged    prometheus.Counter
	GroupsSkipped      prometheus.Counter
	ProcessDuration    prometheus.Histogram
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DocumentsProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_processed_total",
			Help:      "Documents processed, by outcome.",
		}, []string{"outcome"}),
		CitationsScanned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "citations_scanned_total",
			Help:      "Citation spans parsed from processed documents.",
		}),
		CitationsMerged: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "citations_merged_total",
			Help:      "Duplicate citation occurrences replaced by stubs.",
		}),
		GroupsSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_groups_skipped_total",
			Help:      "Duplicate citation groups left untouched because of conflicting or unparsable attributes.",
		}),
		ProcessDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_process_duration_seconds",
			Help:      "Time spent processing a single document.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
}

// ObserveDocument records the outcome of processing one document.
func (m *Metrics) ObserveDocument(outcome string, scanned, merged, skipped int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DocumentsProcessed.WithLabelValues(outcome).Inc()
	m.CitationsScanned.Add(float64(scanned))
	m.CitationsMerged.Add(float64(merged))
	m.GroupsSkipped.Add(float64(skipped))
	m.ProcessDuration.Observe(elapsed.Seconds())
}

// RegisterWatchDropped exposes the watcher's dropped event count as a
// counter read from dropped at collection time.
func RegisterWatchDropped(reg prometheus.Registerer, dropped func() int64) prometheus.CounterFunc {
	return promauto.With(reg).NewCounterFunc(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "watch_events_dropped_total",
		Help:      "File events dropped because the event channel was full.",
	}, func() float64 { return float64(dropped()) })
}
