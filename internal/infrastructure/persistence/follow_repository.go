package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/domain/social"
	"github.com/zona2/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormFollowRepository implements social.FollowRepository using GORM
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GormFollowRepository
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Save inserts a follow relation. A duplicate (follower, followee) pair fails
// with shared.ErrAlreadyExists.
func (r *GormFollowRepository) Save(ctx context.Context, follow *social.Follow) error {
	model := &models.FollowModel{}
	model.FromDomain(follow)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a follow relation
func (r *GormFollowRepository) Delete(ctx context.Context, followerID, followeeID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.FollowModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists reports whether a follow relation exists
func (r *GormFollowRepository) Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FollowModel{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// FindFollowers lists the relations where runnerID is being followed
func (r *GormFollowRepository) FindFollowers(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]social.Follow, int64, error) {
	return r.findPage(ctx, "followee_id = ?", runnerID, filter)
}

// FindFollowing lists the relations where runnerID is the follower
func (r *GormFollowRepository) FindFollowing(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]social.Follow, int64, error) {
	return r.findPage(ctx, "follower_id = ?", runnerID, filter)
}

func (r *GormFollowRepository) findPage(ctx context.Context, cond string, arg uuid.UUID, filter shared.Filter) ([]social.Follow, int64, error) {
	var followModels []models.FollowModel
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.FollowModel{}).
		Where(cond, arg).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&models.FollowModel{}).
		Where(cond, arg).
		Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&followModels).Error; err != nil {
		return nil, 0, err
	}

	follows := make([]social.Follow, len(followModels))
	for i, model := range followModels {
		follows[i] = *model.ToDomain()
	}
	return follows, total, nil
}

// CountFollowers counts how many runners follow runnerID
func (r *GormFollowRepository) CountFollowers(ctx context.Context, runnerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FollowModel{}).
		Where("followee_id = ?", runnerID).Count(&count).Error
	return count, err
}

// CountFollowing counts how many runners runnerID follows
func (r *GormFollowRepository) CountFollowing(ctx context.Context, runnerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FollowModel{}).
		Where("follower_id = ?", runnerID).Count(&count).Error
	return count, err
}
