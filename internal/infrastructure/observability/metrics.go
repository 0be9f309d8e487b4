package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the transcript watcher and model calls.
type Metrics struct {
	// Change feed
	EventsReceivedTotal *prometheus.CounterVec
	DecisionsTotal      *prometheus.CounterVec
	StreamErrorsTotal   prometheus.Counter

	// Pipeline
	PipelineOutcomesTotal *prometheus.CounterVec
	PipelineSeconds       *prometheus.HistogramVec
	PipelinesInFlight     prometheus.Gauge
	ActionItemsCreated    prometheus.Counter

	// Language model
	ModelCallsTotal   *prometheus.CounterVec
	ModelLatency      *prometheus.HistogramVec
	ModelRetriesTotal *prometheus.CounterVec
}

// NewMetrics registers the metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsReceivedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_watcher_events_received_total",
				Help: "Change events received from the transcript feed",
			},
			[]string{"operation_type"},
		),
		DecisionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_watcher_decisions_total",
				Help: "Processing decisions taken for change events",
			},
			[]string{"decision", "reason"},
		),
		StreamErrorsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notes_watcher_stream_errors_total",
				Help: "Errors reported by the change feed",
			},
		),

		PipelineOutcomesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_pipeline_outcomes_total",
				Help: "Terminal outcomes of transcript processing runs",
			},
			[]string{"outcome"},
		),
		PipelineSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notes_pipeline_seconds",
				Help:    "Duration of transcript processing runs",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
			},
			[]string{"outcome"},
		),
		PipelinesInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "notes_pipelines_in_flight",
				Help: "Transcript processing runs currently executing",
			},
		),
		ActionItemsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notes_action_items_created_total",
				Help: "Action items created by extraction",
			},
		),

		ModelCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_model_calls_total",
				Help: "Calls to the completion endpoint",
			},
			[]string{"operation", "status"},
		),
		ModelLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notes_model_latency_seconds",
				Help:    "Completion endpoint latency",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15, 30, 60},
			},
			[]string{"operation"},
		),
		ModelRetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notes_model_retries_total",
				Help: "Retried completion calls",
			},
			[]string{"operation"},
		),
	}
}

// NewNopMetrics returns metrics registered on a private registry.
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// RecordEvent records a received change event.
func (m *Metrics) RecordEvent(operationType string) {
	m.EventsReceivedTotal.WithLabelValues(operationType).Inc()
}

// RecordDecision records a process/skip decision.
func (m *Metrics) RecordDecision(decision, reason string) {
	m.DecisionsTotal.WithLabelValues(decision, reason).Inc()
}

// RecordStreamError records an error from the change feed.
func (m *Metrics) RecordStreamError() {
	m.StreamErrorsTotal.Inc()
}

// RecordOutcome records the terminal outcome of a run and its duration.
func (m *Metrics) RecordOutcome(outcome string, seconds float64) {
	m.PipelineOutcomesTotal.WithLabelValues(outcome).Inc()
	m.PipelineSeconds.WithLabelValues(outcome).Observe(seconds)
}

// RecordModelCall records a completion call.
func (m *Metrics) RecordModelCall(operation, status string, seconds float64) {
	m.ModelCallsTotal.WithLabelValues(operation, status).Inc()
	m.ModelLatency.WithLabelValues(operation).Observe(seconds)
}

// RecordModelRetry records a retried completion call.
func (m *Metrics) RecordModelRetry(operation string) {
	m.ModelRetriesTotal.WithLabelValues(operation).Inc()
}
