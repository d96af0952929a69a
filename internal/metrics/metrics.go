// Package metrics exposes per-run Prometheus counters. Каждый прогон
// получает собственный Registry: процесс CLI короткоживущий, результат
// выгружается в textfile для node_exporter (--metrics FILE).
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"cairolint/internal/diag"
)

// Recorder collects run metrics. The nil *Recorder discards everything.
type Recorder struct {
	reg *prometheus.Registry

	files       *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	fixes       *prometheus.CounterVec
	phases      *prometheus.HistogramVec
	runDuration prometheus.Gauge
}

// New creates a Recorder with a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		reg: reg,
		files: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cairolint",
				Name:      "files_total",
				Help:      "Files processed, by outcome (ok, cached, error).",
			},
			[]string{"status"},
		),
		diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cairolint",
				Name:      "diagnostics_total",
				Help:      "Diagnostics reported, by code and severity.",
			},
			[]string{"code", "severity"},
		),
		fixes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cairolint",
				Name:      "fixes_total",
				Help:      "Fixes considered by the apply engine, by outcome and reason.",
			},
			[]string{"outcome", "reason"},
		),
		phases: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cairolint",
				Name:      "phase_duration_seconds",
				Help:      "Per-file pipeline phase duration in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"phase"},
		),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "cairolint",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the whole run.",
		}),
	}
}

// Registry exposes the underlying registry (tests, custom exporters).
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

func (r *Recorder) File(status string) {
	if r == nil {
		return
	}
	r.files.WithLabelValues(status).Inc()
}

func (r *Recorder) Diagnostics(items []diag.Diagnostic) {
	if r == nil {
		return
	}
	for _, d := range items {
		r.diagnostics.WithLabelValues(d.Code.ID(), d.Severity.Label()).Inc()
	}
}

func (r *Recorder) Phase(name string, d time.Duration) {
	if r == nil {
		return
	}
	r.phases.WithLabelValues(name).Observe(d.Seconds())
}

// FixApplied / FixSkipped count engine outcomes; reason is empty for applied.
func (r *Recorder) FixApplied(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.fixes.WithLabelValues("applied", "").Add(float64(n))
}

func (r *Recorder) FixSkipped(reason string) {
	if r == nil {
		return
	}
	r.fixes.WithLabelValues("skipped", reason).Inc()
}

func (r *Recorder) RunDuration(d time.Duration) {
	if r == nil {
		return
	}
	r.runDuration.Set(d.Seconds())
}

// WriteTextfile writes the registry in the Prometheus text format. Запись
// атомарная (temp + rename), как того ждёт textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
