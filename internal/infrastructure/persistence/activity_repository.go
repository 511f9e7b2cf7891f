package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/activity"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityRepository implements activity.Repository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// FindByID finds an activity by ID
func (r *GormActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	var model models.ActivityModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByRunnerID lists a runner's activities, newest first
func (r *GormActivityRepository) FindByRunnerID(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]activity.Activity, int64, error) {
	var activityModels []models.ActivityModel
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("runner_id = ?", runnerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("runner_id = ?", runnerID).
		Order("started_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&activityModels).Error; err != nil {
		return nil, 0, err
	}

	activities := make([]activity.Activity, len(activityModels))
	for i, model := range activityModels {
		activities[i] = *model.ToDomain()
	}
	return activities, total, nil
}

// Save inserts or updates an activity
func (r *GormActivityRepository) Save(ctx context.Context, act *activity.Activity) error {
	model := models.ActivityModelFromDomain(act)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an activity
func (r *GormActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.ActivityModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
