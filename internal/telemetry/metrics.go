package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// FilesIdentified counts identifications by the chain layer that made
	// the claim ("signature", "filetype", "heuristic", or "default").
	FilesIdentified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filesig",
			Name:      "files_identified_total",
			Help:      "Total number of buffers and files identified, by detector layer",
		},
		[]string{"source"},
	)

	// IdentifyErrors counts per-entry failures by error kind
	IdentifyErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filesig",
			Name:      "identify_errors_total",
			Help:      "Total number of per-entry identification failures, by kind",
		},
		[]string{"kind"},
	)

	// BatchRuns counts batch processing runs
	BatchRuns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "filesig",
			Name:      "batch_runs_total",
			Help:      "Total number of batch identification runs",
		},
	)

	// BatchEntries observes how many entries each batch run discovered
	BatchEntries = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "filesig",
			Name:      "batch_entries",
			Help:      "Number of entries discovered per batch run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// This function is idempotent and can be called multiple times safely.
func InitMetrics() {
	once.Do(func() {
		// Register metrics, ignoring errors if already registered
		prometheus.DefaultRegisterer.Register(FilesIdentified)
		prometheus.DefaultRegisterer.Register(IdentifyErrors)
		prometheus.DefaultRegisterer.Register(BatchRuns)
		prometheus.DefaultRegisterer.Register(BatchEntries)
	})
}
