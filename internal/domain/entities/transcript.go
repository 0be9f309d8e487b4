package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TranscriptStatus represents the processing state of a meeting transcript
type TranscriptStatus string

const (
	TranscriptStatusPending    TranscriptStatus = "pending"    // Recording still in progress
	TranscriptStatusProcessing TranscriptStatus = "processing" // Speech-to-text running upstream
	TranscriptStatusCompleted  TranscriptStatus = "completed"  // Text available, ready for enrichment
	TranscriptStatusFailed     TranscriptStatus = "failed"     // Upstream transcription failed
)

// IsValid reports whether s is one of the known statuses
func (s TranscriptStatus) IsValid() bool {
	switch s {
	case TranscriptStatusPending, TranscriptStatusProcessing, TranscriptStatusCompleted, TranscriptStatusFailed:
		return true
	}
	return false
}

// Transcript is the stored meeting record: raw text plus derived summary and linked action items
type Transcript struct {
	ID             uuid.UUID                      `json:"_id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SessionID      string                         `json:"sessionId,omitempty" gorm:"type:varchar(255);index"`
	Title          string                         `json:"title,omitempty" gorm:"type:varchar(255)"`
	TranscriptText string                         `json:"transcriptText,omitempty" gorm:"type:text"`
	TranscriptURL  string                         `json:"transcriptUrl,omitempty" gorm:"type:text"`
	SummaryText    string                         `json:"summaryText,omitempty" gorm:"type:text"`
	Status         TranscriptStatus               `json:"status" gorm:"type:varchar(20);not null;index;default:'pending'"`
	ActionItemIDs  datatypes.JSONSlice[uuid.UUID] `json:"actionItems" gorm:"type:jsonb;not null;default:'[]'"`
	Participants   datatypes.JSONSlice[string]    `json:"participants" gorm:"type:jsonb;not null;default:'[]'"`
	Duration       int                            `json:"duration"` // minutes
	CreatedAt      time.Time                      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time                      `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new pending transcript for a recording session
func NewTranscript(sessionID string) *Transcript {
	return &Transcript{
		ID:            uuid.New(),
		SessionID:     sessionID,
		Status:        TranscriptStatusPending,
		ActionItemIDs: datatypes.JSONSlice[uuid.UUID]{},
		Participants:  datatypes.JSONSlice[string]{},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// HasText reports whether there is any transcript text worth sending to the model
func (t *Transcript) HasText() bool {
	return strings.TrimSpace(t.TranscriptText) != ""
}

// HasActionItems reports whether extraction already linked items to this transcript
func (t *Transcript) HasActionItems() bool {
	return len(t.ActionItemIDs) > 0
}

// IsFullyProcessed reports whether both summary and action items are present
func (t *Transcript) IsFullyProcessed() bool {
	return strings.TrimSpace(t.SummaryText) != "" && t.HasActionItems()
}

// DisplayTitle returns the title shown to users
func (t *Transcript) DisplayTitle() string {
	if strings.TrimSpace(t.Title) != "" {
		return t.Title
	}
	return "Untitled Meeting"
}
