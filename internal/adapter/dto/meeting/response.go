package meeting

import (
	"time"

	"github.com/johnquangdev/meeting-notes/internal/adapter/dto/actionitem"
)

// MeetingResponse is a transcript as shown to clients
type MeetingResponse struct {
	ID             string                           `json:"_id"`
	SessionID      string                           `json:"sessionId,omitempty"`
	Title          string                           `json:"title"`
	Summary        string                           `json:"summary"`
	SummaryText    string                           `json:"summaryText,omitempty"`
	TranscriptText string                           `json:"transcriptText,omitempty"`
	TranscriptURL  string                           `json:"transcriptUrl,omitempty"`
	Status         string                           `json:"status"`
	Participants   []string                         `json:"participants"`
	Duration       int                              `json:"duration"`
	Date           time.Time                        `json:"date"`
	ActionItems    []string                         `json:"actionItems"`
	Items          []*actionitem.ActionItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time                        `json:"createdAt"`
	UpdatedAt      time.Time                        `json:"updatedAt"`
}

// ProcessMeetingResponse describes a manual processing run
type ProcessMeetingResponse struct {
	Outcome        string           `json:"outcome"`
	SummaryUpdated bool             `json:"summaryUpdated"`
	ArchivedAs     string           `json:"archivedAs,omitempty"`
	Meeting        *MeetingResponse `json:"meeting"`
}
