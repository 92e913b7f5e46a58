package terminator

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mintel/instance-terminator/internal/pkg/metrics"
)

// Instrumentation holds Prometheus metrics specific to
// instance-terminator.
type Instrumentation struct {
	// Duration of passes, labelled with "success" or "error".
	PassDuration *prometheus.HistogramVec

	// Count of report entries, by outcome.
	Results *prometheus.CounterVec

	// Unix timestamp of the last pass that didn't fail.
	LastSuccess prometheus.Gauge
}

// NewInstrumentation returns a new Instrumentation.
func NewInstrumentation(namespace string) *Instrumentation {
	return &Instrumentation{
		PassDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Duration of passes over the AutoScaling Groups.",
			Buckets:   prometheus.DefBuckets,
		}, []string{metrics.LabelStatus}),
		Results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_total",
			Help:      "Count of reported outcomes for AutoScaling Groups and termination groups.",
		}, []string{metrics.LabelResult}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix timestamp of the last successful pass.",
		}),
	}
}

// ObserveResults counts the outcomes in a pass report.
func (m *Instrumentation) ObserveResults(results []Result) {
	for _, r := range results {
		m.Results.With(prometheus.Labels{metrics.LabelResult: r.Result}).Inc()
	}
}

// Describe implements the prometheus.Collector interface.
func (m *Instrumentation) Describe(c chan<- *prometheus.Desc) {
	m.PassDuration.Describe(c)
	m.Results.Describe(c)
	m.LastSuccess.Describe(c)
}

// Collect implements the prometheus.Collector interface.
func (m *Instrumentation) Collect(c chan<- prometheus.Metric) {
	m.PassDuration.Collect(c)
	m.Results.Collect(c)
	m.LastSuccess.Collect(c)
}
