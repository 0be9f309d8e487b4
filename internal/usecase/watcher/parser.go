package watcher

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ExtractedItem is one normalized action item from the extraction response
type ExtractedItem struct {
	Text     string
	Priority entities.ActionItemPriority
	Status   entities.ActionItemStatus
	DueDate  *time.Time
	Assignee string
}

// Extraction is the parsed extraction response
type Extraction struct {
	Items []ExtractedItem
	// Dropped counts entries without text
	Dropped int
	// BadDueDates counts due dates that could not be parsed and were left empty
	BadDueDates int
}

type rawItem struct {
	Text     string      `json:"text"`
	Priority string      `json:"priority"`
	Status   string      `json:"status"`
	DueDate  interface{} `json:"dueDate"`
	Assignee string      `json:"assignee"`
}

type rawExtraction struct {
	Items *[]rawItem `json:"items"`
}

// dueDateLayouts are tried in order when parsing dueDate strings
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseExtraction parses the model's extraction response.
// Missing priority defaults to Medium and missing status to "To Do".
func ParseExtraction(content string) (*Extraction, error) {
	content = extractJSON(content)

	var raw rawExtraction
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrMalformedExtraction, err)
	}
	if raw.Items == nil {
		return nil, fmt.Errorf("%w: missing items", entities.ErrMalformedExtraction)
	}

	out := &Extraction{Items: make([]ExtractedItem, 0, len(*raw.Items))}
	for _, it := range *raw.Items {
		text := strings.TrimSpace(it.Text)
		if text == "" {
			out.Dropped++
			continue
		}

		item := ExtractedItem{
			Text:     text,
			Priority: normalizePriority(it.Priority),
			Status:   normalizeStatus(it.Status),
			Assignee: strings.TrimSpace(it.Assignee),
		}

		if s, ok := it.DueDate.(string); ok && strings.TrimSpace(s) != "" {
			due, err := parseDueDate(s)
			if err != nil {
				out.BadDueDates++
			} else {
				item.DueDate = &due
			}
		}

		out.Items = append(out.Items, item)
	}
	return out, nil
}

// ToActionItem builds the record for meetingID
func (e ExtractedItem) ToActionItem(meetingID uuid.UUID) *entities.ActionItem {
	item := entities.NewActionItem(meetingID, e.Text)
	item.Priority = e.Priority
	item.Status = e.Status
	item.DueDate = e.DueDate
	item.Assignee = e.Assignee
	return item
}

func normalizePriority(s string) entities.ActionItemPriority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "urgent", "critical":
		return entities.ActionItemPriorityHigh
	case "low":
		return entities.ActionItemPriorityLow
	}
	return entities.ActionItemPriorityMedium
}

func normalizeStatus(s string) entities.ActionItemStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "in progress", "in_progress":
		return entities.ActionItemStatusPending
	case "completed", "complete", "done":
		return entities.ActionItemStatusCompleted
	}
	return entities.ActionItemStatusToDo
}

func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", entities.ErrInvalidDueDate, s)
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
