package watcher

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/changefeed"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/observability"
)

type harness struct {
	repo    *testStore
	llm     *scriptedLLM
	source  *changefeed.ChannelSource
	metrics *observability.Metrics
	watcher *Watcher
	locker  *cache.MemoryLocker
}

func newHarness(t *testing.T, llm *scriptedLLM, ts ...*entities.Transcript) *harness {
	t.Helper()
	h := &harness{
		repo:    newTestStore(ts...),
		llm:     llm,
		source:  changefeed.NewChannelSource(8),
		metrics: observability.NewNopMetrics(),
		locker:  cache.NewMemoryLocker(time.Minute),
	}
	proc := NewProcessor(Deps{Transcripts: h.repo, LLM: llm, Metrics: h.metrics}, ProcessorConfig{Retry: testRetry})
	h.watcher = New(h.source, proc, h.locker, h.metrics, nil, Config{MaxConcurrent: 2, JobTimeout: 5 * time.Second})
	t.Cleanup(func() { h.locker.Close() })
	return h
}

func (h *harness) outcomes(o Outcome) float64 {
	return testutil.ToFloat64(h.metrics.PipelineOutcomesTotal.WithLabelValues(string(o)))
}

func TestWatcher_InsertAndUpdateTriggerTheSamePipeline(t *testing.T) {
	inserted := completedTranscript("insert text")
	updated := completedTranscript("update text")
	llm := &scriptedLLM{summary: "s", extraction: `{"items":[{"text":"a"}]}`}
	h := newHarness(t, llm, inserted, updated)

	ctx := context.Background()
	require.NoError(t, h.watcher.Start(ctx))

	require.NoError(t, h.source.Publish(ctx, insertEvent(inserted.ID, entities.TranscriptStatusCompleted)))
	require.NoError(t, h.source.Publish(ctx, updateEvent(updated.ID, map[string]interface{}{"status": "completed"})))

	require.Eventually(t, func() bool { return h.outcomes(OutcomeDone) == 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, h.watcher.Stop())

	for _, id := range []uuid.UUID{inserted.ID, updated.ID} {
		stored := h.repo.get(id)
		assert.Equal(t, "s", stored.SummaryText)
		assert.Len(t, stored.ActionItemIDs, 1)
	}
	assert.Len(t, llm.callLog(), 4)
}

func TestWatcher_IgnoredEventsDoNotProcess(t *testing.T) {
	tr := completedTranscript("text")
	llm := &scriptedLLM{summary: "s", extraction: `{"items":[]}`}
	h := newHarness(t, llm, tr)

	ctx := context.Background()
	require.NoError(t, h.watcher.Start(ctx))

	require.NoError(t, h.source.Publish(ctx, updateEvent(tr.ID, map[string]interface{}{"title": "renamed"})))
	require.NoError(t, h.source.Publish(ctx, updateEvent(tr.ID, map[string]interface{}{"status": "processing"})))
	require.NoError(t, h.source.Publish(ctx, insertEvent(tr.ID, entities.TranscriptStatusPending)))

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(h.metrics.DecisionsTotal.WithLabelValues("skip", string(SkipStatusNotCompleted))) == 2 &&
			testutil.ToFloat64(h.metrics.DecisionsTotal.WithLabelValues("skip", string(SkipStatusNotChanged))) == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, h.watcher.Stop())

	assert.Empty(t, llm.callLog())
	assert.Empty(t, h.repo.get(tr.ID).SummaryText)
}

func TestWatcher_StreamErrorsDoNotStopTheFeed(t *testing.T) {
	tr := completedTranscript("text")
	llm := &scriptedLLM{summary: "s", extraction: `{"items":[]}`}
	h := newHarness(t, llm, tr)

	ctx := context.Background()
	require.NoError(t, h.watcher.Start(ctx))

	h.source.PublishError(assert.AnError)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(h.metrics.StreamErrorsTotal) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, h.source.Publish(ctx, updateEvent(tr.ID, map[string]interface{}{"status": "completed"})))
	require.Eventually(t, func() bool { return h.outcomes(OutcomeExtractionEmpty) == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, h.watcher.Stop())
}

func TestWatcher_FailedEventDoesNotStopTheFeed(t *testing.T) {
	good := completedTranscript("text")
	llm := &scriptedLLM{summary: "s", extraction: `{"items":[]}`}
	h := newHarness(t, llm, good)

	ctx := context.Background()
	require.NoError(t, h.watcher.Start(ctx))

	// Unknown transcript first, then a real one.
	require.NoError(t, h.source.Publish(ctx, updateEvent(uuid.New(), map[string]interface{}{"status": "completed"})))
	require.NoError(t, h.source.Publish(ctx, updateEvent(good.ID, map[string]interface{}{"status": "completed"})))

	require.Eventually(t, func() bool {
		return h.outcomes(OutcomeNotFound) == 1 && h.outcomes(OutcomeExtractionEmpty) == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, h.watcher.Stop())
}

func TestWatcher_DuplicateInFlightIsSkipped(t *testing.T) {
	tr := completedTranscript("text")
	llm := &scriptedLLM{summary: "s", extraction: `{"items":[{"text":"a"}]}`, block: make(chan struct{})}
	h := newHarness(t, llm, tr)

	ctx := context.Background()
	require.NoError(t, h.watcher.Start(ctx))

	ev := updateEvent(tr.ID, map[string]interface{}{"status": "completed"})
	require.NoError(t, h.source.Publish(ctx, ev))
	require.Eventually(t, func() bool { return h.locker.Held(tr.ID.String()) }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, h.source.Publish(ctx, ev))
	require.Eventually(t, func() bool { return h.outcomes(OutcomeInFlight) == 1 }, 2*time.Second, 10*time.Millisecond)

	close(llm.block)
	require.Eventually(t, func() bool { return h.outcomes(OutcomeDone) == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, h.watcher.Stop())

	assert.Equal(t, 1, h.repo.itemCount())
}

func TestWatcher_StopWaitsForInFlightRuns(t *testing.T) {
	tr := completedTranscript("text")
	llm := &scriptedLLM{summary: "s", extraction: `{"items":[{"text":"a"}]}`, block: make(chan struct{})}
	h := newHarness(t, llm, tr)

	ctx := context.Background()
	require.NoError(t, h.watcher.Start(ctx))
	require.NoError(t, h.source.Publish(ctx, updateEvent(tr.ID, map[string]interface{}{"status": "completed"})))
	require.Eventually(t, func() bool { return h.locker.Held(tr.ID.String()) }, 2*time.Second, 5*time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		_ = h.watcher.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a run was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(llm.block)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
	assert.Equal(t, 1, h.repo.itemCount())
}

func TestWatcher_Lifecycle(t *testing.T) {
	h := newHarness(t, &scriptedLLM{})

	assert.ErrorIs(t, h.watcher.Stop(), ErrNotRunning)
	require.NoError(t, h.watcher.Start(context.Background()))
	assert.ErrorIs(t, h.watcher.Start(context.Background()), ErrAlreadyRunning)
	require.NoError(t, h.watcher.Stop())

	// Restart after stop
	require.NoError(t, h.watcher.Start(context.Background()))
	require.NoError(t, h.watcher.Stop())
}

func TestWatcher_ProcessNowWithoutFeed(t *testing.T) {
	tr := completedTranscript("text")
	llm := &scriptedLLM{summary: "s", extraction: `{"items":[{"text":"a"},{"text":"b"}]}`}
	h := newHarness(t, llm, tr)

	res, err := h.watcher.ProcessNow(context.Background(), tr.ID, "manual")
	require.NoError(t, err)
	assert.Equal(t, OutcomeDone, res.Outcome)
	assert.Len(t, res.ActionItemIDs, 2)
	assert.False(t, h.locker.Held(tr.ID.String()), "lock released after the run")
}
