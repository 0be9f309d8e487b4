package watcher

import "github.com/johnquangdev/meeting-notes/pkg/ai"

const summarySystemPrompt = "You are an assistant that summarizes meeting transcripts clearly and concisely. " +
	"Write a single paragraph that captures the overall sentiment of the meeting and its key points."

const extractionSystemPrompt = `You extract action items from meeting transcripts.
Respond with strict JSON only, no prose and no markdown, using exactly this shape:
{"items":[{"text":"...","priority":"High|Medium|Low","status":"To Do|Pending|Completed","dueDate":"YYYY-MM-DD","assignee":"..."}]}
"dueDate" and "assignee" are optional; omit them when the transcript does not mention them.
Use "Medium" when the priority is unclear and "To Do" unless the transcript says the task is pending or done.
Return {"items":[]} when there are no action items.`

func summaryMessages(text string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: summarySystemPrompt},
		{Role: ai.RoleUser, Content: text},
	}
}

func extractionMessages(text string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: extractionSystemPrompt},
		{Role: ai.RoleUser, Content: text},
	}
}
