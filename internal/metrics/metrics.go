// Package metrics counts conversion runs and exports them in the Prometheus
// text format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/satyammistari/sql2migration/internal/schema"
)

// Metrics holds the collectors of one process on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	Operations    *prometheus.CounterVec
	Diagnostics   *prometheus.CounterVec
	Runs          prometheus.Counter
	LastRun       prometheus.Gauge
	ParseDuration prometheus.Histogram
}

// New creates and registers the collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		Operations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sql2migration_operations_total",
				Help: "Schema operations produced, by kind",
			},
			[]string{"kind"},
		),
		Diagnostics: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sql2migration_diagnostics_total",
				Help: "Diagnostics reported, by kind",
			},
			[]string{"kind"},
		),
		Runs: f.NewCounter(prometheus.CounterOpts{
			Name: "sql2migration_runs_total",
			Help: "Conversion runs",
		}),
		LastRun: f.NewGauge(prometheus.GaugeOpts{
			Name: "sql2migration_last_run_timestamp_seconds",
			Help: "Unix time of the last conversion run",
		}),
		ParseDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "sql2migration_parse_duration_seconds",
			Help:    "Time spent parsing a SQL dump",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Observe records one parse result and how long it took.
func (m *Metrics) Observe(res *schema.Result, elapsed time.Duration) {
	m.Runs.Inc()
	m.LastRun.SetToCurrentTime()
	m.ParseDuration.Observe(elapsed.Seconds())
	if res == nil {
		return
	}
	for _, op := range res.Set.Operations {
		m.Operations.WithLabelValues(op.Kind.String()).Inc()
	}
	for _, d := range res.Diagnostics {
		m.Diagnostics.WithLabelValues(d.Kind.String()).Inc()
	}
}

// WriteTextfile writes all metrics to path for the node exporter textfile
// collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
