package entities

import "errors"

// Domain errors
var (
	// Transcript errors
	ErrTranscriptNotFound = errors.New("transcript not found")
	ErrEmptyTranscript    = errors.New("transcript text is empty")
	ErrInvalidStatus      = errors.New("invalid transcript status")

	// Action item errors
	ErrActionItemNotFound = errors.New("action item not found")
	ErrInvalidPriority    = errors.New("invalid action item priority")
	ErrInvalidItemStatus  = errors.New("invalid action item status")
	ErrInvalidDueDate     = errors.New("invalid due date")

	// Model errors
	ErrEmptyCompletion     = errors.New("model returned empty content")
	ErrMalformedExtraction = errors.New("malformed extraction response")

	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
)
