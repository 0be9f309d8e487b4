package watcher

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

func TestParseExtraction_Defaults(t *testing.T) {
	ex, err := ParseExtraction(`{"items":[{"text":"Book the venue"},{"text":"Ship v2","priority":"high","status":"done","assignee":" Bob "}]}`)
	require.NoError(t, err)
	require.Len(t, ex.Items, 2)

	assert.Equal(t, "Book the venue", ex.Items[0].Text)
	assert.Equal(t, entities.ActionItemPriorityMedium, ex.Items[0].Priority)
	assert.Equal(t, entities.ActionItemStatusToDo, ex.Items[0].Status)
	assert.Nil(t, ex.Items[0].DueDate)

	assert.Equal(t, entities.ActionItemPriorityHigh, ex.Items[1].Priority)
	assert.Equal(t, entities.ActionItemStatusCompleted, ex.Items[1].Status)
	assert.Equal(t, "Bob", ex.Items[1].Assignee)
}

func TestParseExtraction_DueDates(t *testing.T) {
	ex, err := ParseExtraction(`{"items":[
		{"text":"a","dueDate":"2024-05-17"},
		{"text":"b","dueDate":"2024-05-17T09:30:00Z"},
		{"text":"c","dueDate":"next Friday"},
		{"text":"d","dueDate":null}
	]}`)
	require.NoError(t, err)
	require.Len(t, ex.Items, 4)

	require.NotNil(t, ex.Items[0].DueDate)
	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), *ex.Items[0].DueDate)
	require.NotNil(t, ex.Items[1].DueDate)
	assert.Equal(t, 9, ex.Items[1].DueDate.Hour())
	assert.Nil(t, ex.Items[2].DueDate)
	assert.Nil(t, ex.Items[3].DueDate)
	assert.Equal(t, 1, ex.BadDueDates)
}

func TestParseExtraction_CodeFenceAndBlankText(t *testing.T) {
	ex, err := ParseExtraction("```json\n{\"items\":[{\"text\":\"  \"},{\"text\":\"Write notes\"}]}\n```")
	require.NoError(t, err)
	require.Len(t, ex.Items, 1)
	assert.Equal(t, "Write notes", ex.Items[0].Text)
	assert.Equal(t, 1, ex.Dropped)
}

func TestParseExtraction_Empty(t *testing.T) {
	ex, err := ParseExtraction(`{"items":[]}`)
	require.NoError(t, err)
	assert.Empty(t, ex.Items)
}

func TestParseExtraction_Malformed(t *testing.T) {
	for _, in := range []string{
		`Sure! Here are the action items: - send report`,
		`{"items": [`,
		`{}`,
		`{"items": null}`,
		`[{"text":"x"}]`,
	} {
		_, err := ParseExtraction(in)
		assert.ErrorIs(t, err, entities.ErrMalformedExtraction, in)
	}
}

func TestExtractedItem_ToActionItem(t *testing.T) {
	meetingID := uuid.New()
	due := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	item := ExtractedItem{
		Text:     "Send report",
		Priority: entities.ActionItemPriorityHigh,
		Status:   entities.ActionItemStatusPending,
		DueDate:  &due,
		Assignee: "Alice",
	}.ToActionItem(meetingID)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, meetingID, item.MeetingID)
	assert.Equal(t, "Send report", item.Text)
	assert.Equal(t, entities.ActionItemPriorityHigh, item.Priority)
	assert.Equal(t, entities.ActionItemStatusPending, item.Status)
	assert.Equal(t, &due, item.DueDate)
	assert.Equal(t, "Alice", item.Assignee)
}
