package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/domain/social"
	"github.com/zona2/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormNotificationRepository implements social.NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRunnerID lists a runner's notifications, newest first
func (r *GormNotificationRepository) FindByRunnerID(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]social.Notification, int64, error) {
	var notifModels []models.NotificationModel
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("runner_id = ?", runnerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("runner_id = ?", runnerID).
		Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&notifModels).Error; err != nil {
		return nil, 0, err
	}

	notifications := make([]social.Notification, len(notifModels))
	for i, model := range notifModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, total, nil
}

// CountUnread counts a runner's unread notifications
func (r *GormNotificationRepository) CountUnread(ctx context.Context, runnerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.NotificationModel{}).
		Where("runner_id = ? AND read_at IS NULL", runnerID).
		Count(&count).Error
	return count, err
}

// Save inserts or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *social.Notification) error {
	model := models.NotificationModelFromDomain(n)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a notification
func (r *GormNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.NotificationModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
