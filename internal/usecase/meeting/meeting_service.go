package meeting

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/usecase/watcher"
)

const manualTrigger = "manual"

// MeetingService handles meeting business logic
type MeetingService struct {
	transcripts repositories.TranscriptRepository
	actionItems repositories.ActionItemRepository
	processor   Processor
	logger      *zap.Logger
}

// NewMeetingService creates a new meeting service. processor may be nil, in
// which case ProcessMeeting reports the pipeline as unavailable.
func NewMeetingService(
	transcripts repositories.TranscriptRepository,
	actionItems repositories.ActionItemRepository,
	processor Processor,
	logger *zap.Logger,
) *MeetingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{
		transcripts: transcripts,
		actionItems: actionItems,
		processor:   processor,
		logger:      logger,
	}
}

// ListMeetings retrieves meetings newest first
func (s *MeetingService) ListMeetings(ctx context.Context, filters repositories.TranscriptFilters) ([]*entities.Transcript, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid meeting status")
	}
	transcripts, err := s.transcripts.List(ctx, filters)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list meetings", err)
	}
	return transcripts, nil
}

// GetMeeting retrieves a meeting with its action items
func (s *MeetingService) GetMeeting(ctx context.Context, id uuid.UUID) (*Meeting, error) {
	transcript, err := s.findTranscript(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, transcript)
}

// GetStats counts meetings per status
func (s *MeetingService) GetStats(ctx context.Context) (*entities.MeetingStats, error) {
	stats, err := s.transcripts.Stats(ctx)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("meeting stats", err)
	}
	return stats, nil
}

// CreateMeeting stores a new meeting
func (s *MeetingService) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Transcript, error) {
	status := input.Status
	if status == "" {
		status = entities.TranscriptStatusPending
	}
	if !status.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid meeting status")
	}
	if input.Duration < 0 {
		return nil, errors.ErrInvalidArgument("duration cannot be negative")
	}

	transcript := entities.NewTranscript(input.SessionID)
	transcript.Title = input.Title
	transcript.TranscriptText = input.TranscriptText
	transcript.TranscriptURL = input.TranscriptURL
	transcript.Status = status
	transcript.Duration = input.Duration
	if input.Participants != nil {
		transcript.Participants = datatypes.JSONSlice[string](input.Participants)
	}

	if err := s.transcripts.Create(ctx, transcript); err != nil {
		return nil, errors.ErrDBQueryFailed("create meeting", err)
	}

	s.logger.Info("📝 Meeting created",
		zap.String("transcript_id", transcript.ID.String()),
		zap.String("status", string(transcript.Status)))
	return transcript, nil
}

// UpdateMeeting applies a partial update
func (s *MeetingService) UpdateMeeting(ctx context.Context, id uuid.UUID, input UpdateMeetingInput) (*entities.Transcript, error) {
	transcript, err := s.findTranscript(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SessionID != nil {
		transcript.SessionID = *input.SessionID
	}
	if input.Title != nil {
		transcript.Title = *input.Title
	}
	if input.TranscriptText != nil {
		transcript.TranscriptText = *input.TranscriptText
	}
	if input.TranscriptURL != nil {
		transcript.TranscriptURL = *input.TranscriptURL
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, errors.ErrInvalidArgument("invalid meeting status")
		}
		transcript.Status = *input.Status
	}
	if input.Participants != nil {
		transcript.Participants = datatypes.JSONSlice[string](input.Participants)
	}
	if input.Duration != nil {
		if *input.Duration < 0 {
			return nil, errors.ErrInvalidArgument("duration cannot be negative")
		}
		transcript.Duration = *input.Duration
	}

	if err := s.transcripts.Update(ctx, transcript); err != nil {
		if stdErrors.Is(err, entities.ErrTranscriptNotFound) {
			return nil, errors.ErrMeetingNotFound(id.String())
		}
		return nil, errors.ErrDBQueryFailed("update meeting", err)
	}
	return transcript, nil
}

// DeleteMeeting removes a meeting and its action items
func (s *MeetingService) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	if err := s.transcripts.Delete(ctx, id); err != nil {
		if stdErrors.Is(err, entities.ErrTranscriptNotFound) {
			return errors.ErrMeetingNotFound(id.String())
		}
		return errors.ErrDBQueryFailed("delete meeting", err)
	}
	s.logger.Info("🗑️ Meeting deleted", zap.String("transcript_id", id.String()))
	return nil
}

// ProcessMeeting runs the pipeline for one meeting and returns its new state
func (s *MeetingService) ProcessMeeting(ctx context.Context, id uuid.UUID) (*ProcessOutput, error) {
	if s.processor == nil {
		return nil, errors.ErrLLMServiceUnavailable("pipeline")
	}

	res, err := s.processor.ProcessNow(ctx, id, manualTrigger)
	if err != nil {
		return nil, errors.ErrMeetingProcessingFailed(id.String(), err)
	}

	switch res.Outcome {
	case watcher.OutcomeNotFound:
		return nil, errors.ErrMeetingNotFound(id.String())
	case watcher.OutcomeEmptyInput:
		return nil, errors.ErrMeetingEmptyTranscript(id.String())
	case watcher.OutcomeInFlight:
		return nil, errors.ErrMeetingInFlight(id.String())
	}

	meeting, err := s.GetMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProcessOutput{
		Outcome:        res.Outcome,
		SummaryUpdated: res.SummaryUpdated,
		ArchivedAs:     res.ArchivedAs,
		Meeting:        meeting,
	}, nil
}

func (s *MeetingService) findTranscript(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	transcript, err := s.transcripts.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("find meeting", err)
	}
	if transcript == nil {
		return nil, errors.ErrMeetingNotFound(id.String())
	}
	return transcript, nil
}

func (s *MeetingService) withItems(ctx context.Context, transcript *entities.Transcript) (*Meeting, error) {
	items, err := s.actionItems.ListByMeeting(ctx, transcript.ID)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list meeting action items", err)
	}
	return &Meeting{Transcript: transcript, ActionItems: items}, nil
}
