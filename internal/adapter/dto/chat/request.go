package chat

// Message is one turn of the conversation
type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// StreamChatRequest asks a question about a meeting. MeetingID may also be a session ID.
type StreamChatRequest struct {
	MeetingID string    `json:"meetingId" validate:"required"`
	Messages  []Message `json:"messages" validate:"required,min=1,dive"`
}
