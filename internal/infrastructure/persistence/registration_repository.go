package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/event"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRegistrationRepository implements event.RegistrationRepository using GORM
type GormRegistrationRepository struct {
	db *gorm.DB
}

// NewGormRegistrationRepository creates a new GormRegistrationRepository
func NewGormRegistrationRepository(db *gorm.DB) *GormRegistrationRepository {
	return &GormRegistrationRepository{db: db}
}

// FindByID finds a registration by ID
func (r *GormRegistrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Registration, error) {
	var model models.RegistrationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEventAndRunner finds a runner's registration for an event
func (r *GormRegistrationRepository) FindByEventAndRunner(ctx context.Context, eventID, runnerID uuid.UUID) (*event.Registration, error) {
	var model models.RegistrationModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND runner_id = ?", eventID, runnerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEventID lists registrations for an event
func (r *GormRegistrationRepository) FindByEventID(ctx context.Context, eventID uuid.UUID, filter shared.Filter) ([]event.Registration, int64, error) {
	return r.findPage(ctx, "event_id = ?", eventID, filter)
}

// FindByRunnerID lists a runner's registrations
func (r *GormRegistrationRepository) FindByRunnerID(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]event.Registration, int64, error) {
	return r.findPage(ctx, "runner_id = ?", runnerID, filter)
}

func (r *GormRegistrationRepository) findPage(ctx context.Context, cond string, arg uuid.UUID, filter shared.Filter) ([]event.Registration, int64, error) {
	var regModels []models.RegistrationModel
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.RegistrationModel{}).
		Where(cond, arg).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(&models.RegistrationModel{}).
		Where(cond, arg).
		Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&regModels).Error; err != nil {
		return nil, 0, err
	}

	registrations := make([]event.Registration, len(regModels))
	for i, model := range regModels {
		registrations[i] = *model.ToDomain()
	}
	return registrations, total, nil
}

// FindByPaymentIntentID finds the registration a payment intent belongs to
func (r *GormRegistrationRepository) FindByPaymentIntentID(ctx context.Context, intentID string) (*event.Registration, error) {
	var model models.RegistrationModel
	if err := r.db.WithContext(ctx).
		Where("payment_intent_id = ?", intentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountConfirmedByEventID counts confirmed registrations for an event
func (r *GormRegistrationRepository) CountConfirmedByEventID(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RegistrationModel{}).
		Where("event_id = ? AND status = ?", eventID, event.RegistrationConfirmed).
		Count(&count).Error
	return count, err
}

// Save inserts or updates a registration. A second registration for the same
// (event, runner) pair fails with shared.ErrAlreadyExists.
func (r *GormRegistrationRepository) Save(ctx context.Context, reg *event.Registration) error {
	model := models.RegistrationModelFromDomain(reg)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}
