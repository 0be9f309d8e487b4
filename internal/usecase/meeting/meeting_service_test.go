package meeting

import (
	"context"
	stdErrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/errors"
	"github.com/johnquangdev/meeting-notes/internal/adapter/repository/memory"
	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/usecase/watcher"
)

type fakeProcessor struct {
	result  *watcher.Result
	err     error
	trigger string
	onRun   func()
}

func (f *fakeProcessor) ProcessNow(_ context.Context, id uuid.UUID, trigger string) (*watcher.Result, error) {
	f.trigger = trigger
	if f.onRun != nil {
		f.onRun()
	}
	res := *f.result
	res.TranscriptID = id
	return &res, f.err
}

func requireAppError(t *testing.T, err error, status int, code errors.ErrorCode) {
	t.Helper()
	var appErr errors.AppError
	require.True(t, stdErrors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.HTTPCode)
	assert.Equal(t, code, appErr.Code)
}

func seeded(t *testing.T) (*memory.Store, *entities.Transcript) {
	t.Helper()
	store := memory.NewStore()
	tr := entities.NewTranscript("session-42")
	tr.Title = "Weekly sync"
	tr.TranscriptText = "Bob will fix the build."
	tr.Status = entities.TranscriptStatusCompleted
	item := entities.NewActionItem(tr.ID, "Fix the build")
	tr.ActionItemIDs = append(tr.ActionItemIDs, item.ID)
	store.Seed([]*entities.Transcript{tr}, []*entities.ActionItem{item})
	return store, tr
}

func TestGetMeeting(t *testing.T) {
	store, tr := seeded(t)
	svc := NewMeetingService(store.Transcripts(), store.ActionItems(), nil, nil)

	m, err := svc.GetMeeting(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Weekly sync", m.Transcript.Title)
	require.Len(t, m.ActionItems, 1)
	assert.Equal(t, "Fix the build", m.ActionItems[0].Text)

	_, err = svc.GetMeeting(context.Background(), uuid.New())
	requireAppError(t, err, http.StatusNotFound, errors.ErrorCode_MEETING_NOT_FOUND)
}

func TestListMeetings(t *testing.T) {
	store := memory.NewStore()
	older := entities.NewTranscript("a")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := entities.NewTranscript("b")
	newer.Status = entities.TranscriptStatusCompleted
	store.Seed([]*entities.Transcript{older, newer}, nil)
	svc := NewMeetingService(store.Transcripts(), store.ActionItems(), nil, nil)

	all, err := svc.ListMeetings(context.Background(), repositories.TranscriptFilters{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	completed := entities.TranscriptStatusCompleted
	only, err := svc.ListMeetings(context.Background(), repositories.TranscriptFilters{Status: &completed})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, newer.ID, only[0].ID)

	bogus := entities.TranscriptStatus("partial")
	_, err = svc.ListMeetings(context.Background(), repositories.TranscriptFilters{Status: &bogus})
	requireAppError(t, err, http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT)
}

func TestCreateAndUpdateMeeting(t *testing.T) {
	store := memory.NewStore()
	svc := NewMeetingService(store.Transcripts(), store.ActionItems(), nil, nil)
	ctx := context.Background()

	created, err := svc.CreateMeeting(ctx, CreateMeetingInput{SessionID: "s", Title: "Kickoff", Participants: []string{"Ana"}})
	require.NoError(t, err)
	assert.Equal(t, entities.TranscriptStatusPending, created.Status)
	assert.Empty(t, created.ActionItemIDs)

	// Summary written by the pipeline survives a user edit.
	require.NoError(t, store.Transcripts().UpdateSummary(ctx, created.ID, "pipeline summary"))

	title := "Kickoff v2"
	status := entities.TranscriptStatusCompleted
	updated, err := svc.UpdateMeeting(ctx, created.ID, UpdateMeetingInput{Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Kickoff v2", updated.Title)

	got, err := svc.GetMeeting(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.TranscriptStatusCompleted, got.Transcript.Status)
	assert.Equal(t, "pipeline summary", got.Transcript.SummaryText)

	_, err = svc.CreateMeeting(ctx, CreateMeetingInput{Status: "archived"})
	requireAppError(t, err, http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT)

	neg := -5
	_, err = svc.UpdateMeeting(ctx, created.ID, UpdateMeetingInput{Duration: &neg})
	requireAppError(t, err, http.StatusBadRequest, errors.ErrorCode_INVALID_ARGUMENT)
}

func TestDeleteMeeting(t *testing.T) {
	store, tr := seeded(t)
	svc := NewMeetingService(store.Transcripts(), store.ActionItems(), nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.DeleteMeeting(ctx, tr.ID))
	items, err := store.ActionItems().List(ctx, entities.ActionItemFilters{})
	require.NoError(t, err)
	assert.Empty(t, items)

	requireAppError(t, svc.DeleteMeeting(ctx, tr.ID), http.StatusNotFound, errors.ErrorCode_MEETING_NOT_FOUND)
}

func TestProcessMeeting(t *testing.T) {
	t.Run("done", func(t *testing.T) {
		store, tr := seeded(t)
		proc := &fakeProcessor{
			result: &watcher.Result{Outcome: watcher.OutcomeDone, SummaryUpdated: true},
			onRun: func() {
				_ = store.Transcripts().UpdateSummary(context.Background(), tr.ID, "fresh summary")
			},
		}
		svc := NewMeetingService(store.Transcripts(), store.ActionItems(), proc, nil)

		out, err := svc.ProcessMeeting(context.Background(), tr.ID)
		require.NoError(t, err)
		assert.Equal(t, "manual", proc.trigger)
		assert.Equal(t, watcher.OutcomeDone, out.Outcome)
		assert.True(t, out.SummaryUpdated)
		assert.Equal(t, "fresh summary", out.Meeting.Transcript.SummaryText)
	})

	cases := []struct {
		name    string
		outcome watcher.Outcome
		err     error
		status  int
		code    errors.ErrorCode
	}{
		{"not found", watcher.OutcomeNotFound, nil, http.StatusNotFound, errors.ErrorCode_MEETING_NOT_FOUND},
		{"empty", watcher.OutcomeEmptyInput, nil, http.StatusUnprocessableEntity, errors.ErrorCode_MEETING_EMPTY_TRANSCRIPT},
		{"in flight", watcher.OutcomeInFlight, nil, http.StatusConflict, errors.ErrorCode_MEETING_IN_FLIGHT},
		{"failed", watcher.OutcomeFailed, stdErrors.New("boom"), http.StatusBadGateway, errors.ErrorCode_MEETING_PROCESSING_FAILED},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, tr := seeded(t)
			proc := &fakeProcessor{result: &watcher.Result{Outcome: tc.outcome}, err: tc.err}
			svc := NewMeetingService(store.Transcripts(), store.ActionItems(), proc, nil)

			_, err := svc.ProcessMeeting(context.Background(), tr.ID)
			requireAppError(t, err, tc.status, tc.code)
		})
	}

	t.Run("no pipeline", func(t *testing.T) {
		store, tr := seeded(t)
		svc := NewMeetingService(store.Transcripts(), store.ActionItems(), nil, nil)
		_, err := svc.ProcessMeeting(context.Background(), tr.ID)
		requireAppError(t, err, http.StatusServiceUnavailable, errors.ErrorCode_LLM_SERVICE_UNAVAIL)
	})
}

func TestGetStats(t *testing.T) {
	store, _ := seeded(t)
	store.Err = stdErrors.New("db down")
	svc := NewMeetingService(store.Transcripts(), store.ActionItems(), nil, nil)

	_, err := svc.GetStats(context.Background())
	requireAppError(t, err, http.StatusInternalServerError, errors.ErrorCode_DB_QUERY_FAILED)

	store.Err = nil
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Completed)
}
