package actionitem

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// Service defines the interface for the action item use case
type Service interface {
	ListActionItems(ctx context.Context, filters entities.ActionItemFilters) ([]*entities.ActionItem, error)
	ListMeetingActionItems(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)
	GetActionItem(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)
	CreateActionItem(ctx context.Context, input CreateInput) (*entities.ActionItem, error)
	UpdateActionItem(ctx context.Context, id uuid.UUID, input UpdateInput) (*entities.ActionItem, error)
	DeleteActionItem(ctx context.Context, id uuid.UUID) error
	GetStats(ctx context.Context, meetingID *uuid.UUID) (*entities.ActionItemStats, error)
}

// CreateInput represents input for creating an action item by hand
type CreateInput struct {
	MeetingID uuid.UUID
	Text      string
	Priority  entities.ActionItemPriority
	Status    entities.ActionItemStatus
	DueDate   *time.Time
	Assignee  string
}

// UpdateInput represents a partial update. Nil fields are left unchanged;
// ClearDueDate removes the due date.
type UpdateInput struct {
	Text         *string
	Priority     *entities.ActionItemPriority
	Status       *entities.ActionItemStatus
	DueDate      *time.Time
	ClearDueDate bool
	Assignee     *string
}

var _ Service = (*ActionItemService)(nil)
