package chat

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/observability"
	"github.com/johnquangdev/meeting-notes/pkg/ai"
)

// Streamer streams a chat completion as content deltas
type Streamer interface {
	Stream(ctx context.Context, messages []ai.Message, onDelta func(string) error, opts ...ai.Option) error
}

// Service answers questions about a single meeting
type Service interface {
	// Prepare resolves the meeting and builds the message list sent to the model
	Prepare(ctx context.Context, input StreamInput) ([]ai.Message, error)

	// Stream sends prepared messages to the model and forwards deltas to onDelta
	Stream(ctx context.Context, messages []ai.Message, onDelta func(string) error) error
}

// StreamInput is the chat request: a meeting reference and the conversation so far
type StreamInput struct {
	// MeetingID is a meeting ID or a recording session ID
	MeetingID string
	Messages  []ai.Message
}

// ChatService implements Service on top of a streaming completion client
type ChatService struct {
	transcripts repositories.TranscriptRepository
	actionItems repositories.ActionItemRepository
	llm         Streamer
	model       string
	tracer      *observability.Tracer
	logger      *zap.Logger
}

var _ Service = (*ChatService)(nil)

// NewChatService creates a chat service. model overrides the client's default when set.
func NewChatService(
	transcripts repositories.TranscriptRepository,
	actionItems repositories.ActionItemRepository,
	llm Streamer,
	model string,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *ChatService {
	if tracer == nil {
		tracer = observability.NewTracer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		transcripts: transcripts,
		actionItems: actionItems,
		llm:         llm,
		model:       model,
		tracer:      tracer,
		logger:      logger,
	}
}

// Prepare validates input, loads meeting context and returns the full prompt
func (s *ChatService) Prepare(ctx context.Context, input StreamInput) ([]ai.Message, error) {
	meetingID := strings.TrimSpace(input.MeetingID)
	if meetingID == "" || len(input.Messages) == 0 {
		return nil, errors.ErrInvalidArgument("meetingId and messages array are required")
	}

	conversation := make([]ai.Message, 0, len(input.Messages))
	for _, m := range input.Messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		switch m.Role {
		case ai.RoleUser, ai.RoleAssistant:
			conversation = append(conversation, m)
		default:
			return nil, errors.ErrInvalidArgument("message role must be user or assistant")
		}
	}
	if len(conversation) == 0 {
		return nil, errors.ErrInvalidArgument("messages must contain content")
	}

	transcript, err := s.findMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	items, err := s.actionItems.ListByMeeting(ctx, transcript.ID)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list meeting action items", err)
	}

	content := transcript.SummaryText
	if strings.TrimSpace(content) == "" {
		content = transcript.TranscriptText
	}
	meetingContext := BuildMeetingContext(transcript.DisplayTitle(), transcript.CreatedAt, content, items)

	messages := make([]ai.Message, 0, len(conversation)+1)
	messages = append(messages, ai.Message{
		Role:    ai.RoleSystem,
		Content: systemPrompt + "\n\nMeeting context:\n" + meetingContext,
	})
	return append(messages, conversation...), nil
}

// Stream forwards model deltas to onDelta until the completion ends
func (s *ChatService) Stream(ctx context.Context, messages []ai.Message, onDelta func(string) error) error {
	ctx, span := s.tracer.StartStageSpan(ctx, observability.SpanChatStream)
	defer span.End()

	var opts []ai.Option
	if s.model != "" {
		opts = append(opts, ai.WithModel(s.model))
	}

	chunks := 0
	err := s.llm.Stream(ctx, messages, func(delta string) error {
		chunks++
		return onDelta(delta)
	}, opts...)
	if err != nil {
		setSpanError(span, err)
		s.logger.Error("❌ Chat stream failed", zap.Int("chunks", chunks), zap.Error(err))
		return errors.ErrLLMRequestFailed(err)
	}
	s.logger.Debug("Chat stream finished", zap.Int("chunks", chunks))
	return nil
}

// findMeeting looks the reference up as a meeting ID first, then as a session ID
func (s *ChatService) findMeeting(ctx context.Context, ref string) (*entities.Transcript, error) {
	if id, err := uuid.Parse(ref); err == nil {
		t, err := s.transcripts.FindByID(ctx, id)
		if err != nil {
			return nil, errors.ErrDBQueryFailed("find meeting", err)
		}
		if t != nil {
			return t, nil
		}
	}

	t, err := s.transcripts.FindBySessionID(ctx, ref)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("find meeting by session", err)
	}
	if t == nil {
		return nil, errors.ErrMeetingNotFound(ref)
	}
	return t, nil
}

func setSpanError(span trace.Span, err error) {
	var status *ai.StatusError
	observability.SetError(span, err, stdErrors.As(err, &status) && status.Temporary())
}
