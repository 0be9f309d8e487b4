package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItemPriority is the urgency assigned to an action item
type ActionItemPriority string

const (
	ActionItemPriorityHigh   ActionItemPriority = "High"
	ActionItemPriorityMedium ActionItemPriority = "Medium"
	ActionItemPriorityLow    ActionItemPriority = "Low"
)

// IsValid reports whether p is a known priority
func (p ActionItemPriority) IsValid() bool {
	switch p {
	case ActionItemPriorityHigh, ActionItemPriorityMedium, ActionItemPriorityLow:
		return true
	}
	return false
}

// ActionItemStatus is the progress state of an action item
type ActionItemStatus string

const (
	ActionItemStatusToDo      ActionItemStatus = "To Do"
	ActionItemStatusPending   ActionItemStatus = "Pending"
	ActionItemStatusCompleted ActionItemStatus = "Completed"
)

// IsValid reports whether s is a known status
func (s ActionItemStatus) IsValid() bool {
	switch s {
	case ActionItemStatusToDo, ActionItemStatusPending, ActionItemStatusCompleted:
		return true
	}
	return false
}

// ActionItem is a single task extracted from (or added to) a meeting
type ActionItem struct {
	ID        uuid.UUID          `json:"_id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID          `json:"meetingId" gorm:"type:uuid;not null;index"`
	Text      string             `json:"text" gorm:"type:text;not null"`
	Priority  ActionItemPriority `json:"priority" gorm:"type:varchar(10);not null;default:'Medium'"`
	Status    ActionItemStatus   `json:"status" gorm:"type:varchar(20);not null;default:'To Do'"`
	DueDate   *time.Time         `json:"dueDate,omitempty" gorm:"type:timestamptz"`
	Assignee  string             `json:"assignee,omitempty" gorm:"type:varchar(255)"`
	CreatedAt time.Time          `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time          `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates an action item owned by meetingID with default priority and status
func NewActionItem(meetingID uuid.UUID, text string) *ActionItem {
	now := time.Now()
	return &ActionItem{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Text:      text,
		Priority:  ActionItemPriorityMedium,
		Status:    ActionItemStatusToDo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ActionItemFilters narrows action item listings
type ActionItemFilters struct {
	Priority      *ActionItemPriority
	Status        *ActionItemStatus
	MeetingID     *uuid.UUID
	DueDateBefore *time.Time
	DueDateAfter  *time.Time
}

// ActionItemStats aggregates action items by status and priority
type ActionItemStats struct {
	Total     int64 `json:"total"`
	ToDo      int64 `json:"toDo"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	High      int64 `json:"high"`
	Medium    int64 `json:"medium"`
	Low       int64 `json:"low"`
}

// MeetingStats aggregates transcripts by status
type MeetingStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
}
