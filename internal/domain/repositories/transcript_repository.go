package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// TranscriptRepository defines the interface for transcript (meeting) data access
type TranscriptRepository interface {
	// Create inserts a new transcript
	Create(ctx context.Context, transcript *entities.Transcript) error

	// FindByID retrieves a transcript by its ID, returning nil when absent
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)

	// FindBySessionID retrieves the newest transcript recorded for a session
	FindBySessionID(ctx context.Context, sessionID string) (*entities.Transcript, error)

	// List retrieves transcripts newest first
	List(ctx context.Context, filters TranscriptFilters) ([]*entities.Transcript, error)

	// Update saves the user-editable fields of a transcript
	Update(ctx context.Context, transcript *entities.Transcript) error

	// Delete removes a transcript together with its action items
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateSummary overwrites only the summary column
	UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error

	// SetActionItemIDs overwrites the linked action item list
	SetActionItemIDs(ctx context.Context, id uuid.UUID, ids []uuid.UUID) error

	// LinkActionItems inserts items and replaces the transcript's list with their IDs in one transaction
	LinkActionItems(ctx context.Context, id uuid.UUID, items []*entities.ActionItem) error

	// Stats counts transcripts per status
	Stats(ctx context.Context) (*entities.MeetingStats, error)
}

// TranscriptFilters represents filter options for listing transcripts
type TranscriptFilters struct {
	Status    *entities.TranscriptStatus
	StartDate *time.Time
	EndDate   *time.Time
}
