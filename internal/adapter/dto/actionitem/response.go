package actionitem

import "time"

// ActionItemResponse is an action item as shown to clients
type ActionItemResponse struct {
	ID        string     `json:"_id"`
	MeetingID string     `json:"meetingId"`
	Text      string     `json:"text"`
	Priority  string     `json:"priority"`
	Status    string     `json:"status"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Assignee  string     `json:"assignee,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
