package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ActionItemRepository defines the interface for action item data access
type ActionItemRepository interface {
	// Create inserts an action item and appends its ID to the owning transcript
	Create(ctx context.Context, item *entities.ActionItem) error

	// FindByID retrieves an action item, returning nil when absent
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error)

	// List retrieves action items matching filters, newest first
	List(ctx context.Context, filters entities.ActionItemFilters) ([]*entities.ActionItem, error)

	// ListByMeeting retrieves the items owned by one transcript in creation order
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error)

	// Update saves all mutable fields of an action item
	Update(ctx context.Context, item *entities.ActionItem) error

	// Delete removes an action item and unlinks it from its transcript
	Delete(ctx context.Context, id uuid.UUID) error

	// Stats aggregates items, optionally for a single meeting
	Stats(ctx context.Context, meetingID *uuid.UUID) (*entities.ActionItemStats, error)
}
