// Package metrics provides Prometheus metrics for the verification pipeline.
package metrics

import (
	"github.com/fadilmartias/bgv-backend/internal/verification"
	"github.com/prometheus/client_golang/prometheus"
)

// PipelineMetrics records check outcomes and pipeline runs.
type PipelineMetrics struct {
	checkOutcomesTotal *prometheus.CounterVec
	checkCallDuration  *prometheus.HistogramVec
	pipelineRunsTotal  *prometheus.CounterVec
}

// NewPipelineMetrics creates the metrics and registers them with registry.
func NewPipelineMetrics(registry prometheus.Registerer) (*PipelineMetrics, error) {
	m := &PipelineMetrics{
		checkOutcomesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bgv_check_outcomes_total",
				Help: "Total number of verification check attempts by outcome",
			},
			[]string{"check", "outcome"}, // outcome: succeeded, skipped, failed
		),
		checkCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bgv_check_call_duration_seconds",
				Help:    "Time spent calling verification providers per check",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
			},
			[]string{"check"},
		),
		pipelineRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bgv_pipeline_runs_total",
				Help: "Total number of verification pipeline runs by result",
			},
			[]string{"mode", "result"}, // mode: full, single; result: completed, error
		),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *PipelineMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.checkOutcomesTotal.Describe(ch)
	m.checkCallDuration.Describe(ch)
	m.pipelineRunsTotal.Describe(ch)
}

func (m *PipelineMetrics) Collect(ch chan<- prometheus.Metric) {
	m.checkOutcomesTotal.Collect(ch)
	m.checkCallDuration.Collect(ch)
	m.pipelineRunsTotal.Collect(ch)
}

// RecordOutcome counts the outcome and, unless skipped, its call duration.
// Nil receivers are no-ops.
func (m *PipelineMetrics) RecordOutcome(o verification.Outcome) {
	if m == nil {
		return
	}
	m.checkOutcomesTotal.WithLabelValues(string(o.Kind), string(o.State)).Inc()
	if o.State != verification.OutcomeSkipped {
		m.checkCallDuration.WithLabelValues(string(o.Kind)).Observe(o.Duration.Seconds())
	}
}

func (m *PipelineMetrics) RecordRun(mode string, err error) {
	if m == nil {
		return
	}
	result := "completed"
	if err != nil {
		result = "error"
	}
	m.pipelineRunsTotal.WithLabelValues(mode, result).Inc()
}
