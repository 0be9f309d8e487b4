package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordEvent("update")
	m.RecordEvent("update")
	m.RecordDecision("skip", "status_not_completed")
	m.RecordOutcome("done", 1.5)
	m.RecordModelCall("summarize", "ok", 0.4)
	m.RecordModelRetry("extract")
	m.RecordStreamError()

	if got := testutil.ToFloat64(m.EventsReceivedTotal.WithLabelValues("update")); got != 2 {
		t.Errorf("events = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.DecisionsTotal.WithLabelValues("skip", "status_not_completed")); got != 1 {
		t.Errorf("decisions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.PipelineOutcomesTotal.WithLabelValues("done")); got != 1 {
		t.Errorf("outcomes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ModelRetriesTotal.WithLabelValues("extract")); got != 1 {
		t.Errorf("retries = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.StreamErrorsTotal); got != 1 {
		t.Errorf("stream errors = %v, want 1", got)
	}
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// Registering twice on distinct registries must not panic.
	NewNopMetrics()
	NewNopMetrics()
}

func TestTracer_Spans(t *testing.T) {
	tr := NewTracer()
	ctx, span := tr.StartPipelineSpan(context.Background(), "t-1", "update")
	defer span.End()

	_, llm := tr.StartLLMSpan(ctx, "summarize", "gpt-test")
	SetError(llm, errors.New("boom"), true)
	llm.End()

	SetOutcome(span, "failed")
}
