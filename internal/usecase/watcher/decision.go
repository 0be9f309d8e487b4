package watcher

import (
	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// SkipReason explains why a change event does not trigger processing
type SkipReason string

const (
	SkipUnsupportedOperation SkipReason = "unsupported_operation"
	SkipStatusNotChanged     SkipReason = "status_not_changed"
	SkipStatusNotCompleted   SkipReason = "status_not_completed"
	SkipMissingDocumentID    SkipReason = "missing_document_id"
)

// Decision is the result of Decide: either Process(TranscriptID) or Skip(Reason)
type Decision struct {
	Process      bool
	TranscriptID uuid.UUID
	Reason       SkipReason
}

// Skip builds a skip decision
func Skip(reason SkipReason) Decision {
	return Decision{Reason: reason}
}

// ProcessTranscript builds a process decision
func ProcessTranscript(id uuid.UUID) Decision {
	return Decision{Process: true, TranscriptID: id}
}

// Decide maps a change event to a decision.
// Updates are processed when the status field moved to completed, inserts when
// the document arrives already completed. Everything else is skipped.
func Decide(ev entities.ChangeEvent) Decision {
	switch ev.OperationType {
	case entities.OperationUpdate:
		status, ok := ev.UpdatedStatus()
		if !ok {
			return Skip(SkipStatusNotChanged)
		}
		if status != entities.TranscriptStatusCompleted {
			return Skip(SkipStatusNotCompleted)
		}
		if ev.DocumentKey.ID == uuid.Nil {
			return Skip(SkipMissingDocumentID)
		}
		return ProcessTranscript(ev.DocumentKey.ID)

	case entities.OperationInsert:
		if ev.FullDocument == nil {
			return Skip(SkipMissingDocumentID)
		}
		if ev.FullDocument.Status != entities.TranscriptStatusCompleted {
			return Skip(SkipStatusNotCompleted)
		}
		id := ev.FullDocument.ID
		if id == uuid.Nil {
			id = ev.DocumentKey.ID
		}
		if id == uuid.Nil {
			return Skip(SkipMissingDocumentID)
		}
		return ProcessTranscript(id)
	}

	return Skip(SkipUnsupportedOperation)
}
