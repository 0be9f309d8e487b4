package actionitem

import (
	"context"
	stdErrors "errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
)

// ActionItemService handles action item business logic
type ActionItemService struct {
	items       repositories.ActionItemRepository
	transcripts repositories.TranscriptRepository
	logger      *zap.Logger
}

// NewActionItemService creates a new action item service
func NewActionItemService(
	items repositories.ActionItemRepository,
	transcripts repositories.TranscriptRepository,
	logger *zap.Logger,
) *ActionItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionItemService{items: items, transcripts: transcripts, logger: logger}
}

// ListActionItems retrieves action items matching filters
func (s *ActionItemService) ListActionItems(ctx context.Context, filters entities.ActionItemFilters) ([]*entities.ActionItem, error) {
	if filters.Priority != nil && !filters.Priority.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid priority")
	}
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid status")
	}
	items, err := s.items.List(ctx, filters)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list action items", err)
	}
	return items, nil
}

// ListMeetingActionItems retrieves the items of one meeting in creation order
func (s *ActionItemService) ListMeetingActionItems(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	if err := s.requireMeeting(ctx, meetingID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("list meeting action items", err)
	}
	return items, nil
}

// GetActionItem retrieves an action item by ID
func (s *ActionItemService) GetActionItem(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("find action item", err)
	}
	if item == nil {
		return nil, errors.ErrActionItemNotFound(id.String())
	}
	return item, nil
}

// CreateActionItem adds an item to a meeting and links it to the transcript
func (s *ActionItemService) CreateActionItem(ctx context.Context, input CreateInput) (*entities.ActionItem, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, errors.ErrInvalidArgument("text is required")
	}
	if err := s.requireMeeting(ctx, input.MeetingID); err != nil {
		return nil, err
	}

	item := entities.NewActionItem(input.MeetingID, text)
	if input.Priority != "" {
		if !input.Priority.IsValid() {
			return nil, errors.ErrInvalidArgument("invalid priority")
		}
		item.Priority = input.Priority
	}
	if input.Status != "" {
		if !input.Status.IsValid() {
			return nil, errors.ErrInvalidArgument("invalid status")
		}
		item.Status = input.Status
	}
	item.DueDate = input.DueDate
	item.Assignee = strings.TrimSpace(input.Assignee)

	if err := s.items.Create(ctx, item); err != nil {
		if stdErrors.Is(err, entities.ErrTranscriptNotFound) {
			return nil, errors.ErrMeetingNotFound(input.MeetingID.String())
		}
		return nil, errors.ErrDBQueryFailed("create action item", err)
	}

	s.logger.Info("📌 Action item created",
		zap.String("action_item_id", item.ID.String()),
		zap.String("transcript_id", item.MeetingID.String()))
	return item, nil
}

// UpdateActionItem applies a partial update
func (s *ActionItemService) UpdateActionItem(ctx context.Context, id uuid.UUID, input UpdateInput) (*entities.ActionItem, error) {
	item, err := s.GetActionItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		text := strings.TrimSpace(*input.Text)
		if text == "" {
			return nil, errors.ErrInvalidArgument("text cannot be empty")
		}
		item.Text = text
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, errors.ErrInvalidArgument("invalid priority")
		}
		item.Priority = *input.Priority
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, errors.ErrInvalidArgument("invalid status")
		}
		item.Status = *input.Status
	}
	switch {
	case input.ClearDueDate:
		item.DueDate = nil
	case input.DueDate != nil:
		item.DueDate = input.DueDate
	}
	if input.Assignee != nil {
		item.Assignee = strings.TrimSpace(*input.Assignee)
	}

	if err := s.items.Update(ctx, item); err != nil {
		if stdErrors.Is(err, entities.ErrActionItemNotFound) {
			return nil, errors.ErrActionItemNotFound(id.String())
		}
		return nil, errors.ErrDBQueryFailed("update action item", err)
	}
	return item, nil
}

// DeleteActionItem removes an item and unlinks it from its meeting
func (s *ActionItemService) DeleteActionItem(ctx context.Context, id uuid.UUID) error {
	if err := s.items.Delete(ctx, id); err != nil {
		if stdErrors.Is(err, entities.ErrActionItemNotFound) {
			return errors.ErrActionItemNotFound(id.String())
		}
		return errors.ErrDBQueryFailed("delete action item", err)
	}
	s.logger.Info("🗑️ Action item deleted", zap.String("action_item_id", id.String()))
	return nil
}

// GetStats aggregates items, optionally for one meeting
func (s *ActionItemService) GetStats(ctx context.Context, meetingID *uuid.UUID) (*entities.ActionItemStats, error) {
	stats, err := s.items.Stats(ctx, meetingID)
	if err != nil {
		return nil, errors.ErrDBQueryFailed("action item stats", err)
	}
	return stats, nil
}

func (s *ActionItemService) requireMeeting(ctx context.Context, meetingID uuid.UUID) error {
	t, err := s.transcripts.FindByID(ctx, meetingID)
	if err != nil {
		return errors.ErrDBQueryFailed("find meeting", err)
	}
	if t == nil {
		return errors.ErrMeetingNotFound(meetingID.String())
	}
	return nil
}
