package watcher

import (
	"context"
	"fmt"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
)

// Publisher pushes events into the ChangeSource a watcher consumes
type Publisher interface {
	Publish(ctx context.Context, ev entities.ChangeEvent) error
}

// BacklogEvents lists completed transcripts, oldest first, as insert events.
// NOTIFY payloads sent while no listener was connected are lost; replaying
// these events catches the watcher up. filters.Status is forced to completed.
func BacklogEvents(ctx context.Context, transcripts repositories.TranscriptRepository, filters repositories.TranscriptFilters) ([]entities.ChangeEvent, error) {
	status := entities.TranscriptStatusCompleted
	filters.Status = &status

	ts, err := transcripts.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed transcripts: %w", err)
	}

	events := make([]entities.ChangeEvent, 0, len(ts))
	for i := len(ts) - 1; i >= 0; i-- {
		t := ts[i]
		events = append(events, entities.ChangeEvent{
			OperationType: entities.OperationInsert,
			DocumentKey:   entities.DocumentKey{ID: t.ID},
			FullDocument:  &entities.ChangeDocument{ID: t.ID, Status: t.Status},
		})
	}
	return events, nil
}

// Replay starts w, publishes events and stops w once every accepted event has run.
// pub must hand events over without buffering so Stop cannot overtake them.
func Replay(ctx context.Context, w *Watcher, pub Publisher, events []entities.ChangeEvent) error {
	if err := w.Start(ctx); err != nil {
		return err
	}

	var publishErr error
	for _, ev := range events {
		if err := pub.Publish(ctx, ev); err != nil {
			publishErr = fmt.Errorf("failed to publish %s: %w", ev.DocumentKey.ID, err)
			break
		}
	}

	if err := w.Stop(); err != nil && publishErr == nil {
		return err
	}
	return publishErr
}
