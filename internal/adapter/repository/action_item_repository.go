package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
	"github.com/johnquangdev/meeting-notes/internal/domain/repositories"
)

// ActionItemRepository handles action item data operations
type ActionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db *gorm.DB) *ActionItemRepository {
	return &ActionItemRepository{db: db}
}

var _ repositories.ActionItemRepository = (*ActionItemRepository)(nil)

// Create inserts an item and appends its ID to the owning transcript
func (r *ActionItemRepository) Create(ctx context.Context, item *entities.ActionItem) error {
	if item == nil {
		return errors.New("action item cannot be nil")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		res := tx.Model(&entities.Transcript{}).
			Where("id = ?", item.MeetingID).
			Updates(map[string]interface{}{
				"action_item_ids": gorm.Expr("action_item_ids || jsonb_build_array(?::text)", item.ID.String()),
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

// FindByID retrieves an action item by ID
func (r *ActionItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	var item entities.ActionItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List retrieves action items matching filters, newest first
func (r *ActionItemRepository) List(ctx context.Context, filters entities.ActionItemFilters) ([]*entities.ActionItem, error) {
	query := r.db.WithContext(ctx).Model(&entities.ActionItem{})

	if filters.Priority != nil {
		query = query.Where("priority = ?", *filters.Priority)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.MeetingID != nil {
		query = query.Where("meeting_id = ?", *filters.MeetingID)
	}
	if filters.DueDateBefore != nil {
		query = query.Where("due_date <= ?", *filters.DueDateBefore)
	}
	if filters.DueDateAfter != nil {
		query = query.Where("due_date >= ?", *filters.DueDateAfter)
	}

	var items []*entities.ActionItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByMeeting retrieves the items owned by a transcript in creation order
func (r *ActionItemRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update saves an action item
func (r *ActionItemRepository) Update(ctx context.Context, item *entities.ActionItem) error {
	if item == nil {
		return errors.New("action item cannot be nil")
	}
	item.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an item and unlinks it from its transcript
func (r *ActionItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item entities.ActionItem
		if err := tx.Where("id = ?", id).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entities.ErrActionItemNotFound
			}
			return err
		}
		if err := tx.Delete(&entities.ActionItem{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&entities.Transcript{}).
			Where("id = ?", item.MeetingID).
			Updates(map[string]interface{}{
				"action_item_ids": gorm.Expr("action_item_ids - ?::text", id.String()),
				"updated_at":      time.Now(),
			}).Error
	})
}

// Stats aggregates items by status and priority, optionally for one meeting
func (r *ActionItemRepository) Stats(ctx context.Context, meetingID *uuid.UUID) (*entities.ActionItemStats, error) {
	query := r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS to_do,
			COUNT(*) FILTER (WHERE status = ?) AS pending,
			COUNT(*) FILTER (WHERE status = ?) AS completed,
			COUNT(*) FILTER (WHERE priority = ?) AS high,
			COUNT(*) FILTER (WHERE priority = ?) AS medium,
			COUNT(*) FILTER (WHERE priority = ?) AS low`,
			entities.ActionItemStatusToDo,
			entities.ActionItemStatusPending,
			entities.ActionItemStatusCompleted,
			entities.ActionItemPriorityHigh,
			entities.ActionItemPriorityMedium,
			entities.ActionItemPriorityLow,
		)
	if meetingID != nil {
		query = query.Where("meeting_id = ?", *meetingID)
	}

	var stats entities.ActionItemStats
	if err := query.Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
