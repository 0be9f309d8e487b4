//go:build integration

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/changefeed"
	"github.com/johnquangdev/meeting-notes/internal/infrastructure/database"
)

// openTestDB connects to TEST_DATABASE_DSN and applies the embedded migrations
func openTestDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	_, err = database.Migrate(db, "", migrate.Up, nil)
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDB(db) })
	return db, dsn
}

func createTranscript(t *testing.T, repo *TranscriptRepository) *entities.Transcript {
	t.Helper()
	tr := entities.NewTranscript("it-" + uuid.NewString())
	tr.TranscriptText = "Alice will send the deck."
	require.NoError(t, repo.Create(context.Background(), tr))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), tr.ID) })
	return tr
}

func TestIntegration_LinkActionItemsReplacesList(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	transcripts := NewTranscriptRepository(db)
	tr := createTranscript(t, transcripts)

	first := []*entities.ActionItem{entities.NewActionItem(tr.ID, "a"), entities.NewActionItem(tr.ID, "b")}
	require.NoError(t, transcripts.LinkActionItems(ctx, tr.ID, first))

	stored, err := transcripts.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first[0].ID, first[1].ID}, []uuid.UUID(stored.ActionItemIDs))

	second := []*entities.ActionItem{entities.NewActionItem(tr.ID, "c")}
	require.NoError(t, transcripts.LinkActionItems(ctx, tr.ID, second))
	stored, err = transcripts.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second[0].ID}, []uuid.UUID(stored.ActionItemIDs))

	err = transcripts.LinkActionItems(ctx, uuid.New(), []*entities.ActionItem{entities.NewActionItem(uuid.Nil, "x")})
	assert.ErrorIs(t, err, entities.ErrTranscriptNotFound)
}

func TestIntegration_ActionItemCreateAppendsAndDeleteUnlinks(t *testing.T) {
	db, _ := openTestDB(t)
	ctx := context.Background()
	transcripts := NewTranscriptRepository(db)
	items := NewActionItemRepository(db)
	tr := createTranscript(t, transcripts)

	linked := entities.NewActionItem(tr.ID, "linked")
	require.NoError(t, transcripts.LinkActionItems(ctx, tr.ID, []*entities.ActionItem{linked}))

	added := entities.NewActionItem(tr.ID, "added by hand")
	require.NoError(t, items.Create(ctx, added))

	stored, err := transcripts.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{linked.ID, added.ID}, []uuid.UUID(stored.ActionItemIDs))

	require.NoError(t, items.Delete(ctx, linked.ID))
	stored, err = transcripts.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{added.ID}, []uuid.UUID(stored.ActionItemIDs))

	gone, err := items.FindByID(ctx, linked.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, items.Delete(ctx, linked.ID), entities.ErrActionItemNotFound)
	assert.ErrorIs(t, items.Create(ctx, entities.NewActionItem(uuid.New(), "orphan")), entities.ErrTranscriptNotFound)
}

func TestIntegration_TriggerPublishesChangeEvents(t *testing.T) {
	db, dsn := openTestDB(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	source := changefeed.NewPostgresSource(dsn, "transcript_changes", zap.NewNop())
	stream, err := source.Watch(ctx)
	require.NoError(t, err)
	defer stream.Close()

	transcripts := NewTranscriptRepository(db)
	tr := createTranscript(t, transcripts)

	// Events from other writers on the same database are skipped.
	next := func() entities.ChangeEvent {
		t.Helper()
		for {
			select {
			case ev := <-stream.Events():
				if ev.DocumentKey.ID == tr.ID {
					return ev
				}
			case err := <-stream.Errors():
				t.Fatalf("stream error: %v", err)
			case <-ctx.Done():
				t.Fatal("no change event received")
			}
		}
	}

	ev := next()
	assert.Equal(t, entities.OperationInsert, ev.OperationType)
	require.NotNil(t, ev.FullDocument)
	assert.Equal(t, entities.TranscriptStatusPending, ev.FullDocument.Status)

	tr.Status = entities.TranscriptStatusCompleted
	require.NoError(t, transcripts.Update(ctx, tr))
	ev = next()
	assert.Equal(t, entities.OperationUpdate, ev.OperationType)
	status, ok := ev.UpdatedStatus()
	assert.True(t, ok)
	assert.Equal(t, entities.TranscriptStatusCompleted, status)
	require.NotNil(t, ev.UpdateDescription)
	assert.Empty(t, ev.UpdateDescription.TruncatedFields)

	require.NoError(t, transcripts.UpdateSummary(ctx, tr.ID, "summary"))
	ev = next()
	_, ok = ev.UpdatedStatus()
	assert.False(t, ok)
	assert.Equal(t, []string{"summaryText"}, ev.UpdateDescription.TruncatedFields)
}
