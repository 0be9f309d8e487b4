package entities

import (
	"github.com/google/uuid"
)

// OperationType identifies the kind of write reported by the change feed
type OperationType string

const (
	OperationInsert  OperationType = "insert"
	OperationUpdate  OperationType = "update"
	OperationReplace OperationType = "replace"
	OperationDelete  OperationType = "delete"
)

// DocumentKey carries the identifier of the changed row
type DocumentKey struct {
	ID uuid.UUID `json:"_id"`
}

// ChangeDocument is the subset of a transcript row included in insert events.
// pg_notify payloads are capped at 8000 bytes so the text columns are never embedded.
type ChangeDocument struct {
	ID     uuid.UUID        `json:"_id"`
	Status TranscriptStatus `json:"status"`
}

// UpdateDescription lists the fields an update touched
type UpdateDescription struct {
	UpdatedFields   map[string]interface{} `json:"updatedFields"`
	TruncatedFields []string               `json:"truncatedFields,omitempty"`
}

// ChangeEvent is a single insert/update notification on the transcripts table
type ChangeEvent struct {
	OperationType     OperationType      `json:"operationType"`
	DocumentKey       DocumentKey        `json:"documentKey"`
	FullDocument      *ChangeDocument    `json:"fullDocument,omitempty"`
	UpdateDescription *UpdateDescription `json:"updateDescription,omitempty"`
}

// UpdatedStatus returns the new status value when the update touched the status field
func (e ChangeEvent) UpdatedStatus() (TranscriptStatus, bool) {
	if e.UpdateDescription == nil || e.UpdateDescription.UpdatedFields == nil {
		return "", false
	}
	raw, ok := e.UpdateDescription.UpdatedFields["status"]
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return TranscriptStatus(s), true
}
