package actionitem

import "time"

// ListActionItemsRequest represents query parameters for listing action items.
// Dates accept RFC 3339 or YYYY-MM-DD.
type ListActionItemsRequest struct {
	Priority      string `query:"priority" validate:"omitempty,priority"`
	Status        string `query:"status" validate:"omitempty,item_status"`
	MeetingID     string `query:"meetingId" validate:"omitempty,uuid"`
	DueDateBefore string `query:"dueDateBefore"`
	DueDateAfter  string `query:"dueDateAfter"`
}

// StatsRequest narrows statistics to one meeting
type StatsRequest struct {
	MeetingID string `query:"meetingId" validate:"omitempty,uuid"`
}

// CreateActionItemRequest represents the request to add an action item
type CreateActionItemRequest struct {
	MeetingID string     `json:"meetingId" validate:"required,uuid"`
	Text      string     `json:"text" validate:"required,max=2000"`
	Priority  string     `json:"priority" validate:"omitempty,priority"`
	Status    string     `json:"status" validate:"omitempty,item_status"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Assignee  string     `json:"assignee" validate:"max=255"`
}

// UpdateActionItemRequest represents a partial action item update
type UpdateActionItemRequest struct {
	Text         *string    `json:"text,omitempty" validate:"omitempty,min=1,max=2000"`
	Priority     *string    `json:"priority,omitempty" validate:"omitempty,priority"`
	Status       *string    `json:"status,omitempty" validate:"omitempty,item_status"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ClearDueDate bool       `json:"clearDueDate,omitempty"`
	Assignee     *string    `json:"assignee,omitempty" validate:"omitempty,max=255"`
}
