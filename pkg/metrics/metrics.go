package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Builder metrics
	ContainersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stitch_containers_created_total",
			Help: "Total number of containers created, including clones",
		},
	)

	LabelsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stitch_labels_created_total",
			Help: "Total number of labels created",
		},
	)

	EntitiesDeployed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stitch_entities_deployed_total",
			Help: "Total number of entities registered with a deployment by kind",
		},
		[]string{"kind"},
	)

	AssertionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stitch_assertions_total",
			Help: "Total number of invariant assertions by form",
		},
		[]string{"form"},
	)

	VetFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stitch_vet_failures_total",
			Help: "Total number of failed referential integrity checks by reason",
		},
		[]string{"reason"},
	)

	// Canonicalization metrics
	CanonicalizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stitch_canonicalize_duration_seconds",
			Help:    "Time taken to canonicalize a deployment in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Storage metrics
	RevisionsSaved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stitch_revisions_saved_total",
			Help: "Total number of revision saves by result (created, unchanged)",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(ContainersCreated)
	prometheus.MustRegister(LabelsCreated)
	prometheus.MustRegister(EntitiesDeployed)
	prometheus.MustRegister(AssertionsTotal)
	prometheus.MustRegister(VetFailures)
	prometheus.MustRegister(CanonicalizeDuration)
	prometheus.MustRegister(RevisionsSaved)
}

// WriteFile writes every registered metric to path in the Prometheus text
// format, suitable for the node_exporter textfile collector
func WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// Timer measures how long an operation takes
type Timer struct {
	start time.Time
}

// NewTimer starts a timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the time elapsed since the timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed time in seconds on a histogram
func (t *Timer) ObserveDuration(h prometheus.Observer) {
	h.Observe(t.Duration().Seconds())
}
