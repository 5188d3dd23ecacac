package resources

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "wfpreprocess"

// Metrics holds the batch counters, registered on a private registry so
// several batches in one process never collide
type Metrics struct {
	Registry      *prometheus.Registry
	Traces        *prometheus.CounterVec
	ExtractTime   prometheus.Histogram
	BatchDuration prometheus.Gauge
}

// Trace results recorded by Metrics.Traces
const (
	ResultWritten = "written"
	ResultSkipped = "skipped"
)

// NewMetrics creates and registers the batch metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Traces: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "traces_total",
				Help:      "Traces processed by result",
			},
			[]string{"result"},
		),
		ExtractTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "extract_seconds",
				Help:      "Time spent parsing, extracting and writing one trace",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
		),
		BatchDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "batch_duration_seconds",
				Help:      "Wall clock duration of the last batch",
			},
		),
	}
	m.Registry.MustRegister(m.Traces, m.ExtractTime, m.BatchDuration)
	return m
}

// WriteTextfile writes the current metric values in the text exposition
// format, for pickup by a node exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
