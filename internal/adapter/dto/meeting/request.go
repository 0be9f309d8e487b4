package meeting

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Status    string `query:"status" validate:"omitempty,meeting_status"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	SessionID      string   `json:"sessionId" validate:"max=255"`
	Title          string   `json:"title" validate:"max=255"`
	TranscriptText string   `json:"transcriptText"`
	TranscriptURL  string   `json:"transcriptUrl" validate:"omitempty,url"`
	Status         string   `json:"status" validate:"omitempty,meeting_status"`
	Participants   []string `json:"participants" validate:"omitempty,dive,min=1,max=255"`
	Duration       int      `json:"duration" validate:"min=0"`
}

// UpdateMeetingRequest represents a partial meeting update
type UpdateMeetingRequest struct {
	SessionID      *string  `json:"sessionId,omitempty" validate:"omitempty,max=255"`
	Title          *string  `json:"title,omitempty" validate:"omitempty,max=255"`
	TranscriptText *string  `json:"transcriptText,omitempty"`
	TranscriptURL  *string  `json:"transcriptUrl,omitempty" validate:"omitempty,url"`
	Status         *string  `json:"status,omitempty" validate:"omitempty,meeting_status"`
	Participants   []string `json:"participants,omitempty" validate:"omitempty,dive,min=1,max=255"`
	Duration       *int     `json:"duration,omitempty" validate:"omitempty,min=0"`
}
