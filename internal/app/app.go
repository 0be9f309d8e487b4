package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/adapter/handler"
	"github.com/johnquangdev/meeting-notes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/changefeed"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/observability"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-notes/internal/usecase/watcher"
	"github.com/johnquangdev/meeting-notes/pkg/ai"
	"github.com/johnquangdev/meeting-notes/pkg/config"
	"github.com/johnquangdev/meeting-notes/pkg/jobcontext"
)

// App holds the infrastructure and pipeline shared by the API server and the CLI
type App struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	Transcripts repositories.TranscriptRepository
	ActionItems repositories.ActionItemRepository
	LLM         *ai.Client
	Registry    *prometheus.Registry
	Metrics     *observability.Metrics
	Tracer      *observability.Tracer
	Archive     *storage.MinIOClient // nil when storage is disabled
	Processor   *watcher.Processor
	Locker      watcher.Locker
	Watcher     *watcher.Watcher

	closers []func() error
}

// NewLogger builds the zap logger for the configured environment
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Server.Environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// New connects every backing service and assembles the pipeline.
// Callers must Close the returned App.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		return nil, err
	}
	a.DB = db
	a.closers = append(a.closers, func() error { return database.CloseDB(db) })

	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			a.Close()
			return nil, fmt.Errorf("DB_AUTO_MIGRATE is enabled in production; run migrations with notesctl instead")
		}
		if err := database.AutoMigrate(db, cfg.Database.MigrationsDir, logger); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.Transcripts = repository.NewTranscriptRepository(db)
	a.ActionItems = repository.NewActionItemRepository(db)

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = observability.NewMetrics(a.Registry)
	a.Tracer = observability.NewTracer()

	logger.Info("🤖 Initializing LLM client...", zap.String("model", cfg.LLM.Model), zap.String("base_url", cfg.LLM.BaseURL))
	a.LLM = ai.NewClient(&cfg.LLM)

	deps := watcher.Deps{
		Transcripts: a.Transcripts,
		LLM:         a.LLM,
		Metrics:     a.Metrics,
		Tracer:      a.Tracer,
		Logger:      logger,
	}
	if cfg.Storage.Enabled {
		logger.Info("🗄️  Connecting to object storage...", zap.String("endpoint", cfg.Storage.Endpoint))
		archive, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Archive = archive
		deps.Archive = archive
	}

	retry := jobcontext.DefaultRetryPolicy
	if cfg.LLM.MaxRetryElapsed > 0 {
		retry.MaxElapsedTime = cfg.LLM.MaxRetryElapsed
	}
	a.Processor = watcher.NewProcessor(deps, watcher.ProcessorConfig{
		Model:                cfg.LLM.Model,
		ResummarizeProcessed: cfg.Watcher.ResummarizeProcessed,
		Retry:                retry,
	})

	a.Locker, err = a.newLocker(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Watcher = a.NewWatcher(changefeed.NewPostgresSource(
		cfg.GetDatabaseDSN(),
		cfg.Watcher.Channel,
		logger,
		changefeed.WithBuffer(cfg.Watcher.MaxConcurrent*4),
		changefeed.WithMaxReconnectInterval(cfg.Watcher.ReconnectMaxInterval),
	))

	return a, nil
}

// NewWatcher builds a watcher over source sharing the app's processor and locks
func (a *App) NewWatcher(source repositories.ChangeSource) *watcher.Watcher {
	return watcher.New(source, a.Processor, a.Locker, a.Metrics, a.Logger, watcher.Config{
		MaxConcurrent: a.Config.Watcher.MaxConcurrent,
		JobTimeout:    a.Config.Watcher.JobTimeout,
	})
}

func (a *App) newLocker(ctx context.Context) (watcher.Locker, error) {
	cfg := a.Config
	if cfg.Watcher.LockBackend == "redis" {
		a.Logger.Info("🔒 Using Redis transcript locks", zap.String("addr", cfg.GetRedisAddr()))
		client, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return cache.NewRedisLocker(client, cfg.Watcher.LockTTL), nil
	}
	a.Logger.Info("🔒 Using in-process transcript locks")
	locker := cache.NewMemoryLocker(cfg.Watcher.LockTTL)
	a.closers = append(a.closers, locker.Close)
	return locker, nil
}

// MetricsHandler exposes the app registry in the Prometheus text format
func (a *App) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{Registry: a.Registry})
}

// HealthChecks returns the dependency checks reported by /health
func (a *App) HealthChecks() map[string]handler.HealthCheck {
	checks := map[string]handler.HealthCheck{
		"database": func(ctx context.Context) error { return database.Ping(ctx, a.DB) },
	}
	if a.Archive != nil {
		checks["storage"] = a.Archive.Ping
	}
	return checks
}

// Close releases connections in reverse order of creation
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// ShutdownTimeout returns the grace period for in-flight requests
func (a *App) ShutdownTimeout() time.Duration {
	return time.Duration(a.Config.Server.ShutdownTimeout) * time.Second
}
