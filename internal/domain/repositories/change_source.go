package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// ChangeStream delivers transcript change events until closed.
// Errors are informational; the stream keeps delivering events after an error.
type ChangeStream interface {
	Events() <-chan entities.ChangeEvent
	Errors() <-chan error
	Close() error
}

// ChangeSource opens change streams on the transcripts table
type ChangeSource interface {
	Watch(ctx context.Context) (ChangeStream, error)
}
