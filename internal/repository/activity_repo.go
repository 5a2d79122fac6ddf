package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// ActivityFilter narrows owner-scoped activity queries.
type ActivityFilter struct {
	Kind  string
	Since *time.Time
	Limit int
}

// ActivityRepository persists the user interaction log. Every query is
// scoped to a single owner; cross-user reads are not expressible here.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.UserActivity) error
	ListRecent(ctx context.Context, userID uint, limit int) ([]models.UserActivity, error)
	ListFiltered(ctx context.Context, userID uint, filter ActivityFilter) ([]models.UserActivity, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs the activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.UserActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) ListRecent(ctx context.Context, userID uint, limit int) ([]models.UserActivity, error) {
	if limit <= 0 {
		limit = 5
	}

	var activities []models.UserActivity
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *activityRepository) ListFiltered(ctx context.Context, userID uint, filter ActivityFilter) ([]models.UserActivity, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}

	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var activities []models.UserActivity
	if err := query.Order("created_at DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, err
	}

	return activities, nil
}

// MarkRead flips is_read on a single record owned by userID. Returns
// gorm.ErrRecordNotFound when the record does not exist or belongs to
// another owner; the two cases are indistinguishable to callers.
func (r *activityRepository) MarkRead(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserActivity{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.UserActivity{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *activityRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.UserActivity{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *activityRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserActivity{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
