package watcher

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

func updateEvent(id uuid.UUID, fields map[string]interface{}) entities.ChangeEvent {
	return entities.ChangeEvent{
		OperationType:     entities.OperationUpdate,
		DocumentKey:       entities.DocumentKey{ID: id},
		UpdateDescription: &entities.UpdateDescription{UpdatedFields: fields},
	}
}

func insertEvent(id uuid.UUID, status entities.TranscriptStatus) entities.ChangeEvent {
	return entities.ChangeEvent{
		OperationType: entities.OperationInsert,
		DocumentKey:   entities.DocumentKey{ID: id},
		FullDocument:  &entities.ChangeDocument{ID: id, Status: status},
	}
}

func TestDecide(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name string
		ev   entities.ChangeEvent
		want Decision
	}{
		{
			name: "update to completed",
			ev:   updateEvent(id, map[string]interface{}{"status": "completed"}),
			want: ProcessTranscript(id),
		},
		{
			name: "insert already completed",
			ev:   insertEvent(id, entities.TranscriptStatusCompleted),
			want: ProcessTranscript(id),
		},
		{
			name: "update of another field",
			ev:   updateEvent(id, map[string]interface{}{"title": "Weekly sync"}),
			want: Skip(SkipStatusNotChanged),
		},
		{
			name: "update without description",
			ev:   entities.ChangeEvent{OperationType: entities.OperationUpdate, DocumentKey: entities.DocumentKey{ID: id}},
			want: Skip(SkipStatusNotChanged),
		},
		{
			name: "update to processing",
			ev:   updateEvent(id, map[string]interface{}{"status": "processing"}),
			want: Skip(SkipStatusNotCompleted),
		},
		{
			name: "status of wrong type",
			ev:   updateEvent(id, map[string]interface{}{"status": 3}),
			want: Skip(SkipStatusNotChanged),
		},
		{
			name: "insert pending",
			ev:   insertEvent(id, entities.TranscriptStatusPending),
			want: Skip(SkipStatusNotCompleted),
		},
		{
			name: "insert without document",
			ev:   entities.ChangeEvent{OperationType: entities.OperationInsert},
			want: Skip(SkipMissingDocumentID),
		},
		{
			name: "update without key",
			ev:   updateEvent(uuid.Nil, map[string]interface{}{"status": "completed"}),
			want: Skip(SkipMissingDocumentID),
		},
		{
			name: "delete",
			ev:   entities.ChangeEvent{OperationType: entities.OperationDelete, DocumentKey: entities.DocumentKey{ID: id}},
			want: Skip(SkipUnsupportedOperation),
		},
		{
			name: "replace",
			ev:   entities.ChangeEvent{OperationType: entities.OperationReplace, DocumentKey: entities.DocumentKey{ID: id}},
			want: Skip(SkipUnsupportedOperation),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.ev))
		})
	}
}

func TestDecide_InsertFallsBackToDocumentKey(t *testing.T) {
	id := uuid.New()
	ev := entities.ChangeEvent{
		OperationType: entities.OperationInsert,
		DocumentKey:   entities.DocumentKey{ID: id},
		FullDocument:  &entities.ChangeDocument{Status: entities.TranscriptStatusCompleted},
	}
	assert.Equal(t, ProcessTranscript(id), Decide(ev))
}
