package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
)

// TranscriptRepository handles transcript data operations
type TranscriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

var _ repositories.TranscriptRepository = (*TranscriptRepository)(nil)

// Create creates a new transcript
func (r *TranscriptRepository) Create(ctx context.Context, transcript *entities.Transcript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}
	if transcript.ActionItemIDs == nil {
		transcript.ActionItemIDs = datatypes.JSONSlice[uuid.UUID]{}
	}
	if transcript.Participants == nil {
		transcript.Participants = datatypes.JSONSlice[string]{}
	}
	return r.db.WithContext(ctx).Create(transcript).Error
}

// FindByID retrieves a transcript by ID
func (r *TranscriptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	var transcript entities.Transcript
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&transcript).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcript, nil
}

// FindBySessionID retrieves the newest transcript for a recording session
func (r *TranscriptRepository) FindBySessionID(ctx context.Context, sessionID string) (*entities.Transcript, error) {
	var transcript entities.Transcript
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		First(&transcript).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transcript, nil
}

// List retrieves transcripts newest first
func (r *TranscriptRepository) List(ctx context.Context, filters repositories.TranscriptFilters) ([]*entities.Transcript, error) {
	query := r.db.WithContext(ctx).Model(&entities.Transcript{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at <= ?", *filters.EndDate)
	}

	var transcripts []*entities.Transcript
	if err := query.Order("created_at DESC").Find(&transcripts).Error; err != nil {
		return nil, err
	}
	return transcripts, nil
}

// Update saves the user-editable columns. Summary and action item ids are
// written only by UpdateSummary, SetActionItemIDs and LinkActionItems.
func (r *TranscriptRepository) Update(ctx context.Context, transcript *entities.Transcript) error {
	if transcript == nil {
		return errors.New("transcript cannot be nil")
	}
	transcript.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", transcript.ID).
		Select("session_id", "title", "transcript_text", "transcript_url", "status", "participants", "duration", "updated_at").
		Updates(transcript)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrTranscriptNotFound
	}
	return nil
}

// Delete deletes a transcript and its action items
func (r *TranscriptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&entities.ActionItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entities.Transcript{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entities.ErrTranscriptNotFound
		}
		return nil
	})
}

// UpdateSummary overwrites the summary text
func (r *TranscriptRepository) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"summary_text": summary,
		"updated_at":   time.Now(),
	})
}

// SetActionItemIDs overwrites the linked action item list
func (r *TranscriptRepository) SetActionItemIDs(ctx context.Context, id uuid.UUID, ids []uuid.UUID) error {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"action_item_ids": idList(ids),
		"updated_at":      time.Now(),
	})
}

// LinkActionItems inserts items in order and replaces the transcript's list with their IDs
func (r *TranscriptRepository) LinkActionItems(ctx context.Context, id uuid.UUID, items []*entities.ActionItem) error {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.MeetingID = id
		ids = append(ids, item.ID)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		res := tx.Model(&entities.Transcript{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"action_item_ids": idList(ids),
				"updated_at":      time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return entities.ErrTranscriptNotFound
		}
		return nil
	})
}

// Stats counts transcripts per status
func (r *TranscriptRepository) Stats(ctx context.Context) (*entities.MeetingStats, error) {
	var rows []struct {
		Status entities.TranscriptStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &entities.MeetingStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case entities.TranscriptStatusPending:
			stats.Pending = row.Count
		case entities.TranscriptStatusProcessing:
			stats.Processing = row.Count
		case entities.TranscriptStatusCompleted:
			stats.Completed = row.Count
		case entities.TranscriptStatusFailed:
			stats.Failed = row.Count
		}
	}
	return stats, nil
}

func (r *TranscriptRepository) updateColumns(ctx context.Context, id uuid.UUID, values map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Transcript{}).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entities.ErrTranscriptNotFound
	}
	return nil
}

// idList never returns nil so an empty list is stored as [] rather than null
func idList(ids []uuid.UUID) datatypes.JSONSlice[uuid.UUID] {
	if ids == nil {
		return datatypes.JSONSlice[uuid.UUID]{}
	}
	return datatypes.JSONSlice[uuid.UUID](ids)
}
