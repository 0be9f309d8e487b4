package watcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/observability"
	"github.com/johnquangdev/meeting-notes/pkg/ai"
	"github.com/johnquangdev/meeting-notes/pkg/jobcontext"
)

// Outcome is the terminal state of one processing run
type Outcome string

const (
	OutcomeDone              Outcome = "done"
	OutcomeNotFound          Outcome = "not_found"
	OutcomeEmptyInput        Outcome = "empty_input"
	OutcomeAlreadyProcessed  Outcome = "already_processed"
	OutcomeExtractionSkipped Outcome = "extraction_skipped"
	OutcomeUpstreamEmpty     Outcome = "upstream_empty"
	OutcomeExtractionFailed  Outcome = "extraction_failed"
	OutcomeExtractionEmpty   Outcome = "extraction_empty"
	OutcomeInFlight          Outcome = "in_flight"
	OutcomeFailed            Outcome = "failed"
)

// Completer sends chat messages to a completion endpoint
type Completer interface {
	Complete(ctx context.Context, messages []ai.Message, opts ...ai.Option) (string, error)
}

// ResponseArchive keeps model responses that could not be used
type ResponseArchive interface {
	ArchiveResponse(ctx context.Context, transcriptID uuid.UUID, kind, body string) (string, error)
}

// Result describes what a processing run did
type Result struct {
	TranscriptID   uuid.UUID   `json:"transcriptId"`
	Outcome        Outcome     `json:"outcome"`
	SummaryUpdated bool        `json:"summaryUpdated"`
	ActionItemIDs  []uuid.UUID `json:"actionItemIds,omitempty"`

	// SummaryEmpty is set when the summary call returned no content.
	// Extraction still runs, so Outcome reflects the later steps.
	SummaryEmpty bool `json:"summaryEmpty,omitempty"`
	// ArchivedAs is the object name of an archived unparseable response
	ArchivedAs string `json:"archivedAs,omitempty"`
}

// ProcessorConfig tunes the pipeline
type ProcessorConfig struct {
	Model                string
	ResummarizeProcessed bool
	Retry                jobcontext.RetryPolicy
}

// Deps are the collaborators of the pipeline. Archive, Metrics, Tracer and Logger may be nil.
type Deps struct {
	Transcripts repositories.TranscriptRepository
	LLM         Completer
	Archive     ResponseArchive
	Metrics     *observability.Metrics
	Tracer      *observability.Tracer
	Logger      *zap.Logger
}

// Processor runs summarization and action item extraction for one transcript
type Processor struct {
	transcripts repositories.TranscriptRepository
	llm         Completer
	archive     ResponseArchive
	metrics     *observability.Metrics
	tracer      *observability.Tracer
	logger      *zap.Logger
	cfg         ProcessorConfig
}

// NewProcessor creates a pipeline processor
func NewProcessor(deps Deps, cfg ProcessorConfig) *Processor {
	if deps.Metrics == nil {
		deps.Metrics = observability.NewNopMetrics()
	}
	if deps.Tracer == nil {
		deps.Tracer = observability.NewTracer()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.Retry == (jobcontext.RetryPolicy{}) {
		cfg.Retry = jobcontext.DefaultRetryPolicy
	}
	return &Processor{
		transcripts: deps.Transcripts,
		llm:         deps.LLM,
		archive:     deps.Archive,
		metrics:     deps.Metrics,
		tracer:      deps.Tracer,
		logger:      deps.Logger,
		cfg:         cfg,
	}
}

// Process runs the pipeline for transcript id.
// A non-nil error is returned only together with OutcomeFailed.
func (p *Processor) Process(ctx context.Context, id uuid.UUID) (*Result, error) {
	res := &Result{TranscriptID: id}
	log := p.logger.With(zap.String("transcript_id", id.String()))

	ctx, span := p.tracer.StartPipelineSpan(ctx, id.String(), jobcontext.GetTrigger(ctx))
	defer func() {
		observability.SetOutcome(span, string(res.Outcome))
		span.End()
	}()

	transcript, err := p.transcripts.FindByID(ctx, id)
	if err != nil {
		return p.fail(res, fmt.Errorf("failed to load transcript: %w", err))
	}
	if transcript == nil {
		log.Warn("⚠️ Transcript not found, skipping")
		res.Outcome = OutcomeNotFound
		return res, nil
	}
	if !transcript.HasText() {
		log.Warn("⚠️ Transcript has no text, skipping summarization")
		res.Outcome = OutcomeEmptyInput
		return res, nil
	}
	if !p.cfg.ResummarizeProcessed && transcript.IsFullyProcessed() {
		log.Info("⏭️ Transcript already summarized with action items, skipping")
		res.Outcome = OutcomeAlreadyProcessed
		return res, nil
	}

	// Summarize
	if err := p.summarize(ctx, transcript, res, log); err != nil {
		return p.fail(res, err)
	}

	if transcript.HasActionItems() {
		log.Info("⏭️ Action items already linked, skipping extraction",
			zap.Int("action_items", len(transcript.ActionItemIDs)))
		res.Outcome = OutcomeExtractionSkipped
		return res, nil
	}

	// Extract
	if err := p.extract(ctx, transcript, res, log); err != nil {
		return p.fail(res, err)
	}
	return res, nil
}

func (p *Processor) summarize(ctx context.Context, t *entities.Transcript, res *Result, log *zap.Logger) error {
	ctx, span := p.tracer.StartStageSpan(ctx, observability.SpanSummarize)
	defer span.End()

	log.Info("🤖 Summarizing transcript")
	summary, err := p.complete(ctx, "summarize", summaryMessages(t.TranscriptText))
	if err != nil {
		observability.SetError(span, err, jobcontext.IsRetryableError(err))
		return fmt.Errorf("summarization failed: %w", err)
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		log.Warn("⚠️ Model returned an empty summary, keeping previous summary")
		res.SummaryEmpty = true
		return nil
	}

	if err := p.transcripts.UpdateSummary(ctx, t.ID, summary); err != nil {
		observability.SetError(span, err, false)
		return fmt.Errorf("failed to save summary: %w", err)
	}
	t.SummaryText = summary
	res.SummaryUpdated = true
	log.Info("✅ Summary saved", zap.Int("summary_length", len(summary)))
	return nil
}

func (p *Processor) extract(ctx context.Context, t *entities.Transcript, res *Result, log *zap.Logger) error {
	ctx, span := p.tracer.StartStageSpan(ctx, observability.SpanExtract)
	defer span.End()

	log.Info("🤖 Extracting action items")
	content, err := p.complete(ctx, "extract", extractionMessages(t.TranscriptText), ai.WithJSONResponse())
	if err != nil {
		observability.SetError(span, err, jobcontext.IsRetryableError(err))
		return fmt.Errorf("extraction failed: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		log.Warn("⚠️ Model returned an empty extraction, keeping previous action items")
		res.Outcome = OutcomeUpstreamEmpty
		return nil
	}

	extraction, err := ParseExtraction(content)
	if err != nil {
		log.Error("❌ Failed to parse extraction response", zap.Error(err))
		observability.SetError(span, err, false)
		res.ArchivedAs = p.archiveResponse(ctx, t.ID, content, log)

		if err := p.transcripts.SetActionItemIDs(ctx, t.ID, []uuid.UUID{}); err != nil {
			return fmt.Errorf("failed to clear action items: %w", err)
		}
		res.Outcome = OutcomeExtractionFailed
		return nil
	}

	if extraction.Dropped > 0 || extraction.BadDueDates > 0 {
		log.Warn("⚠️ Extraction contained unusable fields",
			zap.Int("dropped_items", extraction.Dropped),
			zap.Int("bad_due_dates", extraction.BadDueDates))
	}
	if len(extraction.Items) == 0 {
		log.Info("📭 No action items found")
		res.Outcome = OutcomeExtractionEmpty
		return nil
	}

	return p.persistItems(ctx, t, extraction.Items, res, log)
}

func (p *Processor) persistItems(ctx context.Context, t *entities.Transcript, extracted []ExtractedItem, res *Result, log *zap.Logger) error {
	ctx, span := p.tracer.StartStageSpan(ctx, observability.SpanPersistItems)
	defer span.End()

	items := make([]*entities.ActionItem, 0, len(extracted))
	for _, e := range extracted {
		items = append(items, e.ToActionItem(t.ID))
	}

	if err := p.transcripts.LinkActionItems(ctx, t.ID, items); err != nil {
		observability.SetError(span, err, jobcontext.IsRetryableError(err))
		return fmt.Errorf("failed to save action items: %w", err)
	}

	res.ActionItemIDs = make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		res.ActionItemIDs = append(res.ActionItemIDs, item.ID)
	}
	p.metrics.ActionItemsCreated.Add(float64(len(items)))
	res.Outcome = OutcomeDone

	log.Info("✅ Action items linked", zap.Int("action_items", len(items)))
	return nil
}

// complete calls the model with retry, tracing and metrics
func (p *Processor) complete(ctx context.Context, operation string, messages []ai.Message, opts ...ai.Option) (string, error) {
	ctx, span := p.tracer.StartLLMSpan(ctx, operation, p.cfg.Model)
	defer span.End()

	start := time.Now()
	var content string
	err := jobcontext.Retry(ctx, p.cfg.Retry, func(ctx context.Context) error {
		out, err := p.llm.Complete(ctx, messages, opts...)
		if err != nil {
			return err
		}
		content = out
		return nil
	}, func(err error, wait time.Duration) {
		p.metrics.RecordModelRetry(operation)
		p.logger.Warn("🔁 Retrying model call",
			zap.String("operation", operation),
			zap.Duration("wait", wait),
			zap.Error(err))
	})

	status := "ok"
	switch {
	case err != nil:
		status = "error"
		observability.SetError(span, err, jobcontext.IsRetryableError(err))
	case strings.TrimSpace(content) == "":
		status = "empty"
	}
	p.metrics.RecordModelCall(operation, status, time.Since(start).Seconds())
	return content, err
}

func (p *Processor) archiveResponse(ctx context.Context, id uuid.UUID, content string, log *zap.Logger) string {
	if p.archive == nil {
		return ""
	}
	name, err := p.archive.ArchiveResponse(ctx, id, "extraction", content)
	if err != nil {
		log.Error("❌ Failed to archive extraction response", zap.Error(err))
		return ""
	}
	log.Info("🗄️ Archived extraction response", zap.String("object", name))
	return name
}

func (p *Processor) fail(res *Result, err error) (*Result, error) {
	res.Outcome = OutcomeFailed
	return res, err
}
