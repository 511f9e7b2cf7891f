package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/points"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityGrantRepository implements points.ActivityGrantRepository using GORM
type GormActivityGrantRepository struct {
	db *gorm.DB
}

// NewGormActivityGrantRepository creates a new GormActivityGrantRepository
func NewGormActivityGrantRepository(db *gorm.DB) *GormActivityGrantRepository {
	return &GormActivityGrantRepository{db: db}
}

// FindByID finds an activity grant by ID
func (r *GormActivityGrantRepository) FindByID(ctx context.Context, id uuid.UUID) (*points.ActivityGrant, error) {
	var model models.ActivityGrantModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByGranterAndActivity finds the grant for a (granter, activity) pair
func (r *GormActivityGrantRepository) FindByGranterAndActivity(ctx context.Context, granterID, activityID uuid.UUID) (*points.ActivityGrant, error) {
	var model models.ActivityGrantModel
	if err := r.db.WithContext(ctx).
		Where("granter_id = ? AND activity_id = ?", granterID, activityID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByActivityID lists grants for an activity, newest first
func (r *GormActivityGrantRepository) FindByActivityID(ctx context.Context, activityID uuid.UUID, filter shared.Filter) ([]points.ActivityGrant, int64, error) {
	var grantModels []models.ActivityGrantModel
	var total int64

	base := r.db.WithContext(ctx).Model(&models.ActivityGrantModel{}).
		Where("activity_id = ?", activityID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&models.ActivityGrantModel{}).
		Where("activity_id = ?", activityID).
		Order("granted_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&grantModels).Error; err != nil {
		return nil, 0, err
	}

	grants := make([]points.ActivityGrant, len(grantModels))
	for i, model := range grantModels {
		grants[i] = *model.ToDomain()
	}
	return grants, total, nil
}

// ExistsByGranterAndActivity reports whether the pair already has a grant
func (r *GormActivityGrantRepository) ExistsByGranterAndActivity(ctx context.Context, granterID, activityID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ActivityGrantModel{}).
		Where("granter_id = ? AND activity_id = ?", granterID, activityID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
