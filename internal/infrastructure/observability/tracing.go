package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the name of the tracer for transcript processing.
	TracerName = "meeting-notes"
)

// Span attribute keys
const (
	AttrTranscriptID  = "transcript_id"
	AttrOperationType = "operation_type"
	AttrTrigger       = "trigger"
	AttrOutcome       = "outcome"
	AttrModel         = "model"
	AttrOperation     = "operation"
	AttrItemCount     = "item_count"
	AttrRetryable     = "retryable"
)

// Span names
const (
	SpanProcessTranscript = "notes.process_transcript"
	SpanSummarize         = "notes.stage.summarize"
	SpanExtract           = "notes.stage.extract"
	SpanPersistItems      = "notes.stage.persist_items"
	SpanLLMCall           = "notes.llm_call"
	SpanChatStream        = "notes.chat_stream"
)

// Tracer provides distributed tracing for transcript processing.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer on the global provider.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(TracerName),
	}
}

// StartPipelineSpan starts the root span for one transcript run.
func (t *Tracer) StartPipelineSpan(ctx context.Context, transcriptID, trigger string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanProcessTranscript,
		trace.WithAttributes(
			attribute.String(AttrTranscriptID, transcriptID),
			attribute.String(AttrTrigger, trigger),
		),
	)
}

// StartStageSpan starts a span for one pipeline stage.
func (t *Tracer) StartStageSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name)
}

// StartLLMSpan starts a span for a completion call.
func (t *Tracer) StartLLMSpan(ctx context.Context, operation, model string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, SpanLLMCall,
		trace.WithAttributes(
			attribute.String(AttrOperation, operation),
			attribute.String(AttrModel, model),
		),
	)
}

// SetError records an error on the span.
func SetError(span trace.Span, err error, retryable bool) {
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.Bool(AttrRetryable, retryable))
	span.RecordError(err)
}

// SetOutcome tags the span with the run outcome.
func SetOutcome(span trace.Span, outcome string) {
	span.SetAttributes(attribute.String(AttrOutcome, outcome))
}
