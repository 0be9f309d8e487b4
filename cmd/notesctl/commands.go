package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/internal/app"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/changefeed"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-notes/internal/usecase/watcher"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "notesctl",
		Short:         "Operate the meeting notes pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCommand(), newProcessCommand(), newWatchCommand(), newReplayCommand())
	return root
}

func newMigrateCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate [up|down]",
		Short: "Apply or roll back database migrations",
		Long: `Apply pending migrations, or roll back the most recent one.

Examples:
  # Apply every pending migration
  notesctl migrate up

  # Roll back the last migration using files on disk
  notesctl migrate down --dir migrations`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := "up"
			if len(args) == 1 {
				arg = args[0]
			}
			direction, err := parseDirection(arg)
			if err != nil {
				return err
			}

			cfg, err := config.LoadWithoutValidation()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Database.MigrationsDir
			}
			logger, err := app.NewLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.NewPostgresDB(cfg, logger)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			n, err := database.Migrate(db, dir, direction, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migration(s) applied (%s)\n", n, arg)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "read migrations from this directory instead of the embedded set")
	return cmd
}

func parseDirection(s string) (migrate.MigrationDirection, error) {
	switch strings.ToLower(s) {
	case "up":
		return migrate.Up, nil
	case "down":
		return migrate.Down, nil
	}
	return migrate.Up, fmt.Errorf("unknown direction %q, want up or down", s)
}

func newProcessCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "process <transcript-id>",
		Short: "Summarize a transcript and extract its action items now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid transcript id %q: %w", args[0], err)
			}

			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			defer a.Logger.Sync()

			res, err := a.Watcher.ProcessNow(cmd.Context(), id, "cli")
			if res != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(res); encErr != nil {
					return encErr
				}
			}
			return err
		},
	}
}

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the transcript watcher without the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			defer a.Logger.Sync()

			a.Logger.Info("👀 Watching transcript changes", zap.String("channel", a.Config.Watcher.Channel))
			return a.Watcher.Run(cmd.Context())
		},
	}
}

func newReplayCommand() *cobra.Command {
	var since string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Feed completed transcripts through the watcher",
		Long: `Replay completed transcripts as insert events, oldest first.

Notifications sent while no watcher was listening are lost. Replay catches up;
transcripts that already have a summary and action items are skipped.

Examples:
  # Replay everything completed since the 1st of March
  notesctl replay --since 2026-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filters repositories.TranscriptFilters
			if since != "" {
				t, err := parseSince(since)
				if err != nil {
					return err
				}
				filters.StartDate = &t
			}

			a, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			defer a.Logger.Sync()

			events, err := watcher.BacklogEvents(cmd.Context(), a.Transcripts, filters)
			if err != nil {
				return err
			}
			a.Logger.Info("⏪ Replaying completed transcripts", zap.Int("count", len(events)))

			source := changefeed.NewChannelSource(0)
			if err := watcher.Replay(cmd.Context(), a.NewWatcher(source), source, events); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d transcript(s) replayed\n", len(events))
			return nil
		},
	}
	cmd.Flags().StringVar(&since, "since", "", "only replay transcripts created at or after this date (2006-01-02 or RFC3339)")
	return cmd
}

func parseSince(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --since %q, want 2006-01-02 or RFC3339", s)
	}
	return t, nil
}

func bootstrap(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := app.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg, logger)
}
