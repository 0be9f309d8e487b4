package watcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/observability"
	"github.com/johnquangdev/meeting-notes/pkg/jobcontext"
)

const jobType = "transcript"

var (
	ErrAlreadyRunning = errors.New("watcher already running")
	ErrNotRunning     = errors.New("watcher not running")
)

// Locker grants per-key mutual exclusion. release is nil when ok is false.
type Locker interface {
	TryLock(ctx context.Context, key string) (release func(), ok bool, err error)
}

// Config tunes the watcher
type Config struct {
	MaxConcurrent int
	JobTimeout    time.Duration
}

// Watcher consumes transcript change events and runs the processor for every
// transcript that became completed
type Watcher struct {
	source    repositories.ChangeSource
	processor *Processor
	locker    Locker
	metrics   *observability.Metrics
	logger    *zap.Logger
	cfg       Config
	sem       *semaphore

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	loopWg  sync.WaitGroup
	jobsWg  sync.WaitGroup
}

// New creates a watcher. metrics and logger may be nil.
func New(source repositories.ChangeSource, processor *Processor, locker Locker, metrics *observability.Metrics, logger *zap.Logger, cfg Config) *Watcher {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 4
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = jobcontext.DefaultTimeout
	}
	if metrics == nil {
		metrics = observability.NewNopMetrics()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		source:    source,
		processor: processor,
		locker:    locker,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		sem:       newSemaphore(cfg.MaxConcurrent),
	}
}

// Start opens the change stream and begins dispatching events in the background
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return ErrAlreadyRunning
	}

	stream, err := w.source.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to open change stream: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true

	w.logger.Info("🔍 Transcript watcher started",
		zap.Int("max_concurrent", w.cfg.MaxConcurrent),
		zap.Duration("job_timeout", w.cfg.JobTimeout))

	w.loopWg.Add(1)
	go w.loop(loopCtx, context.WithoutCancel(ctx), stream)
	return nil
}

// Stop stops receiving events and waits for in-flight runs to finish
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return ErrNotRunning
	}

	w.logger.Info("🛑 Stopping transcript watcher...")
	w.cancel()
	w.loopWg.Wait()
	w.jobsWg.Wait()
	w.running = false
	w.logger.Info("✅ Transcript watcher stopped")
	return nil
}

// Run starts the watcher and blocks until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

// loop dispatches events until ctx is cancelled. Jobs run on jobCtx so Stop lets them finish.
func (w *Watcher) loop(ctx, jobCtx context.Context, stream repositories.ChangeStream) {
	defer w.loopWg.Done()
	defer stream.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-stream.Events():
			w.metrics.RecordEvent(string(ev.OperationType))
			d := Decide(ev)
			if !d.Process {
				w.metrics.RecordDecision("skip", string(d.Reason))
				w.logger.Debug("Ignoring transcript change",
					zap.String("operation_type", string(ev.OperationType)),
					zap.String("reason", string(d.Reason)))
				continue
			}
			w.metrics.RecordDecision("process", "")
			w.logger.Info("📝 Transcript completed",
				zap.String("transcript_id", d.TranscriptID.String()),
				zap.String("operation_type", string(ev.OperationType)))

			// Acquire slot (blocks while MaxConcurrent runs are in flight).
			// An event taken off the stream is always dispatched, even during Stop.
			if err := w.sem.acquire(jobCtx); err != nil {
				return
			}
			w.jobsWg.Add(1)
			go func(id uuid.UUID, trigger string) {
				defer w.jobsWg.Done()
				defer w.sem.release()
				defer func() {
					if r := recover(); r != nil {
						w.logger.Error("❌ Panic while processing transcript",
							zap.String("transcript_id", id.String()),
							zap.Any("panic", r))
					}
				}()
				_, _ = w.ProcessNow(jobCtx, id, trigger)
			}(d.TranscriptID, string(ev.OperationType))

		case err := <-stream.Errors():
			w.metrics.RecordStreamError()
			w.logger.Error("❌ Transcript change stream error", zap.Error(err))
		}
	}
}

// ProcessNow runs the pipeline for id under the per-transcript lock and job timeout.
// A duplicate call for a transcript already in flight returns OutcomeInFlight.
func (w *Watcher) ProcessNow(ctx context.Context, id uuid.UUID, trigger string) (*Result, error) {
	ctx, cancel := jobcontext.JobBegin(ctx, id, jobType, trigger, w.cfg.JobTimeout)
	defer cancel()

	start := time.Now()
	log := w.logger.With(zap.String("transcript_id", id.String()), zap.String("trigger", trigger))

	if w.locker != nil {
		release, ok, err := w.locker.TryLock(ctx, id.String())
		if err != nil {
			log.Error("❌ Failed to acquire transcript lock", zap.Error(err))
			w.metrics.RecordOutcome(string(OutcomeFailed), time.Since(start).Seconds())
			return &Result{TranscriptID: id, Outcome: OutcomeFailed}, err
		}
		if !ok {
			log.Info("⏳ Transcript already in flight, skipping duplicate")
			w.metrics.RecordOutcome(string(OutcomeInFlight), time.Since(start).Seconds())
			return &Result{TranscriptID: id, Outcome: OutcomeInFlight}, nil
		}
		defer release()
	}

	w.metrics.PipelinesInFlight.Inc()
	defer w.metrics.PipelinesInFlight.Dec()

	res, err := w.processor.Process(ctx, id)
	w.metrics.RecordOutcome(string(res.Outcome), time.Since(start).Seconds())

	if err != nil {
		log.Error("❌ Transcript processing failed",
			zap.String("outcome", string(res.Outcome)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return res, err
	}

	log.Info("🏁 Transcript processing finished",
		zap.String("outcome", string(res.Outcome)),
		zap.Bool("summary_updated", res.SummaryUpdated),
		zap.Int("action_items", len(res.ActionItemIDs)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}
