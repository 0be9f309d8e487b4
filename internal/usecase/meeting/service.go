package meeting

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/usecase/watcher"
)

// Service defines the interface for the meeting use case
type Service interface {
	// ListMeetings retrieves meetings newest first
	ListMeetings(ctx context.Context, filters repositories.TranscriptFilters) ([]*entities.Transcript, error)

	// GetMeeting retrieves a meeting with its action items
	GetMeeting(ctx context.Context, id uuid.UUID) (*Meeting, error)

	// GetStats counts meetings per status
	GetStats(ctx context.Context) (*entities.MeetingStats, error)

	// CreateMeeting stores a new meeting. A completed meeting is picked up by the watcher.
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Transcript, error)

	// UpdateMeeting applies a partial update
	UpdateMeeting(ctx context.Context, id uuid.UUID, input UpdateMeetingInput) (*entities.Transcript, error)

	// DeleteMeeting removes a meeting and its action items
	DeleteMeeting(ctx context.Context, id uuid.UUID) error

	// ProcessMeeting runs summarization and extraction synchronously
	ProcessMeeting(ctx context.Context, id uuid.UUID) (*ProcessOutput, error)
}

// Processor runs the transcript pipeline under the per-transcript lock
type Processor interface {
	ProcessNow(ctx context.Context, id uuid.UUID, trigger string) (*watcher.Result, error)
}

// Meeting is a transcript together with the action items it owns
type Meeting struct {
	Transcript  *entities.Transcript
	ActionItems []*entities.ActionItem
}

// CreateMeetingInput represents input for creating a meeting
type CreateMeetingInput struct {
	SessionID      string
	Title          string
	TranscriptText string
	TranscriptURL  string
	Status         entities.TranscriptStatus
	Participants   []string
	Duration       int
}

// UpdateMeetingInput represents a partial update. Nil fields are left unchanged.
type UpdateMeetingInput struct {
	SessionID      *string
	Title          *string
	TranscriptText *string
	TranscriptURL  *string
	Status         *entities.TranscriptStatus
	Participants   []string
	Duration       *int
}

// ProcessOutput describes a manual processing run
type ProcessOutput struct {
	Outcome        watcher.Outcome
	SummaryUpdated bool
	ArchivedAs     string
	Meeting        *Meeting
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)
