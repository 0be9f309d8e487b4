// Package memory holds map-backed repositories used by unit tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
)

// Store keeps transcripts and action items in memory with the same linking
// rules as the SQL repositories.
type Store struct {
	mu          sync.Mutex
	transcripts map[uuid.UUID]*entities.Transcript
	items       map[uuid.UUID]*entities.ActionItem

	// Err, when set, is returned by every call
	Err error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		transcripts: map[uuid.UUID]*entities.Transcript{},
		items:       map[uuid.UUID]*entities.ActionItem{},
	}
}

// Transcripts returns the store as a TranscriptRepository
func (s *Store) Transcripts() repositories.TranscriptRepository { return transcriptRepo{s} }

// ActionItems returns the store as an ActionItemRepository
func (s *Store) ActionItems() repositories.ActionItemRepository { return actionItemRepo{s} }

// Seed inserts transcripts and items as-is
func (s *Store) Seed(ts []*entities.Transcript, items []*entities.ActionItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range ts {
		s.transcripts[t.ID] = copyTranscript(t)
	}
	for _, i := range items {
		s.items[i.ID] = copyItem(i)
	}
}

func copyTranscript(t *entities.Transcript) *entities.Transcript {
	cp := *t
	cp.ActionItemIDs = append(datatypes.JSONSlice[uuid.UUID]{}, t.ActionItemIDs...)
	cp.Participants = append(datatypes.JSONSlice[string]{}, t.Participants...)
	return &cp
}

func copyItem(i *entities.ActionItem) *entities.ActionItem {
	cp := *i
	return &cp
}

type transcriptRepo struct{ s *Store }

func (r transcriptRepo) Create(_ context.Context, t *entities.Transcript) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	r.s.transcripts[t.ID] = copyTranscript(t)
	return nil
}

func (r transcriptRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Transcript, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	t, ok := r.s.transcripts[id]
	if !ok {
		return nil, nil
	}
	return copyTranscript(t), nil
}

func (r transcriptRepo) FindBySessionID(_ context.Context, sessionID string) (*entities.Transcript, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var newest *entities.Transcript
	for _, t := range r.s.transcripts {
		if t.SessionID != sessionID {
			continue
		}
		if newest == nil || t.CreatedAt.After(newest.CreatedAt) {
			newest = t
		}
	}
	if newest == nil {
		return nil, nil
	}
	return copyTranscript(newest), nil
}

func (r transcriptRepo) List(_ context.Context, f repositories.TranscriptFilters) ([]*entities.Transcript, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []*entities.Transcript{}
	for _, t := range r.s.transcripts {
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.StartDate != nil && t.CreatedAt.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && t.CreatedAt.After(*f.EndDate) {
			continue
		}
		out = append(out, copyTranscript(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r transcriptRepo) Update(_ context.Context, t *entities.Transcript) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	cur, ok := r.s.transcripts[t.ID]
	if !ok {
		return entities.ErrTranscriptNotFound
	}
	next := copyTranscript(t)
	next.SummaryText = cur.SummaryText
	next.ActionItemIDs = cur.ActionItemIDs
	next.UpdatedAt = time.Now()
	r.s.transcripts[t.ID] = next
	return nil
}

func (r transcriptRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.transcripts[id]; !ok {
		return entities.ErrTranscriptNotFound
	}
	for itemID, item := range r.s.items {
		if item.MeetingID == id {
			delete(r.s.items, itemID)
		}
	}
	delete(r.s.transcripts, id)
	return nil
}

func (r transcriptRepo) UpdateSummary(_ context.Context, id uuid.UUID, summary string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	t, ok := r.s.transcripts[id]
	if !ok {
		return entities.ErrTranscriptNotFound
	}
	t.SummaryText = summary
	return nil
}

func (r transcriptRepo) SetActionItemIDs(_ context.Context, id uuid.UUID, ids []uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	t, ok := r.s.transcripts[id]
	if !ok {
		return entities.ErrTranscriptNotFound
	}
	t.ActionItemIDs = append(datatypes.JSONSlice[uuid.UUID]{}, ids...)
	return nil
}

func (r transcriptRepo) LinkActionItems(_ context.Context, id uuid.UUID, items []*entities.ActionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	t, ok := r.s.transcripts[id]
	if !ok {
		return entities.ErrTranscriptNotFound
	}
	ids := datatypes.JSONSlice[uuid.UUID]{}
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.MeetingID = id
		r.s.items[item.ID] = copyItem(item)
		ids = append(ids, item.ID)
	}
	t.ActionItemIDs = ids
	return nil
}

func (r transcriptRepo) Stats(context.Context) (*entities.MeetingStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	stats := &entities.MeetingStats{}
	for _, t := range r.s.transcripts {
		stats.Total++
		switch t.Status {
		case entities.TranscriptStatusPending:
			stats.Pending++
		case entities.TranscriptStatusProcessing:
			stats.Processing++
		case entities.TranscriptStatusCompleted:
			stats.Completed++
		case entities.TranscriptStatusFailed:
			stats.Failed++
		}
	}
	return stats, nil
}

type actionItemRepo struct{ s *Store }

func (r actionItemRepo) Create(_ context.Context, item *entities.ActionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	t, ok := r.s.transcripts[item.MeetingID]
	if !ok {
		return entities.ErrTranscriptNotFound
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	r.s.items[item.ID] = copyItem(item)
	t.ActionItemIDs = append(t.ActionItemIDs, item.ID)
	return nil
}

func (r actionItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return copyItem(item), nil
}

func (r actionItemRepo) List(_ context.Context, f entities.ActionItemFilters) ([]*entities.ActionItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []*entities.ActionItem{}
	for _, item := range r.s.items {
		if f.Priority != nil && item.Priority != *f.Priority {
			continue
		}
		if f.Status != nil && item.Status != *f.Status {
			continue
		}
		if f.MeetingID != nil && item.MeetingID != *f.MeetingID {
			continue
		}
		if f.DueDateBefore != nil && (item.DueDate == nil || !item.DueDate.Before(*f.DueDateBefore)) {
			continue
		}
		if f.DueDateAfter != nil && (item.DueDate == nil || !item.DueDate.After(*f.DueDateAfter)) {
			continue
		}
		out = append(out, copyItem(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r actionItemRepo) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []*entities.ActionItem{}
	t, ok := r.s.transcripts[meetingID]
	if !ok {
		return out, nil
	}
	for _, id := range t.ActionItemIDs {
		if item, ok := r.s.items[id]; ok {
			out = append(out, copyItem(item))
		}
	}
	return out, nil
}

func (r actionItemRepo) Update(_ context.Context, item *entities.ActionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.items[item.ID]; !ok {
		return entities.ErrActionItemNotFound
	}
	item.UpdatedAt = time.Now()
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r actionItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	item, ok := r.s.items[id]
	if !ok {
		return entities.ErrActionItemNotFound
	}
	delete(r.s.items, id)
	if t, ok := r.s.transcripts[item.MeetingID]; ok {
		kept := datatypes.JSONSlice[uuid.UUID]{}
		for _, linked := range t.ActionItemIDs {
			if linked != id {
				kept = append(kept, linked)
			}
		}
		t.ActionItemIDs = kept
	}
	return nil
}

func (r actionItemRepo) Stats(_ context.Context, meetingID *uuid.UUID) (*entities.ActionItemStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	stats := &entities.ActionItemStats{}
	for _, item := range r.s.items {
		if meetingID != nil && item.MeetingID != *meetingID {
			continue
		}
		stats.Total++
		switch item.Status {
		case entities.ActionItemStatusToDo:
			stats.ToDo++
		case entities.ActionItemStatusPending:
			stats.Pending++
		case entities.ActionItemStatusCompleted:
			stats.Completed++
		}
		switch item.Priority {
		case entities.ActionItemPriorityHigh:
			stats.High++
		case entities.ActionItemPriorityMedium:
			stats.Medium++
		case entities.ActionItemPriorityLow:
			stats.Low++
		}
	}
	return stats, nil
}
