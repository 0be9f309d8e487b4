package watcher

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-notes/internal/adapter/repository/memory"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/pkg/ai"
	"github.com/johnquangdev/meeting-notes/pkg/jobcontext"
)

var testRetry = jobcontext.RetryPolicy{
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
	MaxElapsedTime:  200 * time.Millisecond,
}

// testStore is the shared in-memory store with a switchable UpdateSummary failure
type testStore struct {
	repositories.TranscriptRepository
	store      *memory.Store
	summaryErr error
}

func newTestStore(ts ...*entities.Transcript) *testStore {
	store := memory.NewStore()
	store.Seed(ts, nil)
	return &testStore{TranscriptRepository: store.Transcripts(), store: store}
}

func (s *testStore) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	if s.summaryErr != nil {
		return s.summaryErr
	}
	return s.TranscriptRepository.UpdateSummary(ctx, id, summary)
}

func (s *testStore) get(id uuid.UUID) *entities.Transcript {
	t, _ := s.TranscriptRepository.FindByID(context.Background(), id)
	return t
}

func (s *testStore) itemCount() int {
	items, _ := s.store.ActionItems().List(context.Background(), entities.ActionItemFilters{})
	return len(items)
}

func (s *testStore) item(id uuid.UUID) *entities.ActionItem {
	item, _ := s.store.ActionItems().FindByID(context.Background(), id)
	return item
}

// scriptedLLM answers summary and extraction prompts with fixed content
type scriptedLLM struct {
	mu         sync.Mutex
	summary    string
	extraction string
	errs       []error // returned by the first calls, in order
	calls      []string
	block      chan struct{}
}

func (s *scriptedLLM) Complete(ctx context.Context, messages []ai.Message, _ ...ai.Option) (string, error) {
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	op := "extract"
	if strings.HasPrefix(messages[0].Content, "You are an assistant that summarizes") {
		op = "summarize"
	}
	s.calls = append(s.calls, op)

	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return "", err
	}
	if op == "summarize" {
		return s.summary, nil
	}
	return s.extraction, nil
}

func (s *scriptedLLM) callLog() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// memArchive records archived responses
type memArchive struct {
	mu     sync.Mutex
	bodies map[string]string
}

func (a *memArchive) ArchiveResponse(_ context.Context, id uuid.UUID, kind, body string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.bodies == nil {
		a.bodies = map[string]string{}
	}
	name := kind + "/" + id.String()
	a.bodies[name] = body
	return name, nil
}

func completedTranscript(text string) *entities.Transcript {
	t := entities.NewTranscript("session-1")
	t.TranscriptText = text
	t.Status = entities.TranscriptStatusCompleted
	return t
}
