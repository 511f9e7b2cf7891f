package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRunnerRepository implements identity.RunnerRepository using GORM
type GormRunnerRepository struct {
	db *gorm.DB
}

// NewGormRunnerRepository creates a new GormRunnerRepository
func NewGormRunnerRepository(db *gorm.DB) *GormRunnerRepository {
	return &GormRunnerRepository{db: db}
}

// FindByID finds a runner by ID
func (r *GormRunnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Runner, error) {
	var model models.RunnerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds a runner by phone number
func (r *GormRunnerRepository) FindByPhone(ctx context.Context, phone string) (*identity.Runner, error) {
	var model models.RunnerModel
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists runners with pagination
func (r *GormRunnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Runner, int64, error) {
	var runnerModels []models.RunnerModel
	var total int64

	base := r.db.WithContext(ctx).Model(&models.RunnerModel{})
	if filter.Search != "" {
		base = base.Where("nickname ILIKE ?", "%"+filter.Search+"%")
	}
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&models.RunnerModel{})
	if filter.Search != "" {
		query = query.Where("nickname ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, RunnerSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if err := query.Find(&runnerModels).Error; err != nil {
		return nil, 0, err
	}

	runners := make([]identity.Runner, len(runnerModels))
	for i, model := range runnerModels {
		runners[i] = *model.ToDomain()
	}
	return runners, total, nil
}

// Save inserts or updates a runner. Inserting a second runner with the same
// phone fails with shared.ErrAlreadyExists.
func (r *GormRunnerRepository) Save(ctx context.Context, runner *identity.Runner) error {
	model := models.RunnerModelFromDomain(runner)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ExistsByPhone reports whether a runner with the phone already exists
func (r *GormRunnerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RunnerModel{}).
		Where("phone = ?", phone).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindIDsByReferredBy returns IDs of runners referred by the given reference
func (r *GormRunnerRepository) FindIDsByReferredBy(ctx context.Context, referredBy string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&models.RunnerModel{}).
		Where("referred_by = ?", referredBy).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CountByReferredBy counts runners referred by the given reference
func (r *GormRunnerRepository) CountByReferredBy(ctx context.Context, referredBy string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.RunnerModel{}).
		Where("referred_by = ?", referredBy).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
