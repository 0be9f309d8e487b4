package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

const systemPrompt = `You are a helpful meeting assistant. Answer questions about the meeting described below.
Use only the information in the meeting context. If the answer is not in the context, say you do not know.
Keep answers short and refer to action items by their text when relevant.`

// BuildMeetingContext renders the meeting facts the assistant may draw on
func BuildMeetingContext(title string, date time.Time, content string, items []*entities.ActionItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Meeting: %s\n", title)
	fmt.Fprintf(&b, "Date: %s\n\n", date.Format("Monday, January 2, 2006"))

	b.WriteString("Summary:\n")
	if strings.TrimSpace(content) == "" {
		b.WriteString("No summary or transcript available.\n")
	} else {
		b.WriteString(strings.TrimSpace(content))
		b.WriteString("\n")
	}

	b.WriteString("\nAction Items:\n")
	if len(items) == 0 {
		b.WriteString("None recorded.\n")
	}
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s (Priority: %s, Status: %s", i+1, item.Text, item.Priority, item.Status)
		if item.Assignee != "" {
			fmt.Fprintf(&b, ", Assignee: %s", item.Assignee)
		}
		if item.DueDate != nil {
			fmt.Fprintf(&b, ", Due: %s", item.DueDate.Format("2006-01-02"))
		}
		b.WriteString(")\n")
	}
	return b.String()
}
