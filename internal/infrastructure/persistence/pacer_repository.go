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

// GormPacerRepository implements event.PacerRepository using GORM
type GormPacerRepository struct {
	db *gorm.DB
}

// NewGormPacerRepository creates a new GormPacerRepository
func NewGormPacerRepository(db *gorm.DB) *GormPacerRepository {
	return &GormPacerRepository{db: db}
}

// FindByID finds a pacer assignment by ID
func (r *GormPacerRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Pacer, error) {
	var model models.PacerModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEventID lists pacers for an event, fastest pace first
func (r *GormPacerRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]event.Pacer, error) {
	var pacerModels []models.PacerModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("pace_secs_per_km ASC").
		Find(&pacerModels).Error; err != nil {
		return nil, err
	}
	pacers := make([]event.Pacer, len(pacerModels))
	for i, model := range pacerModels {
		pacers[i] = *model.ToDomain()
	}
	return pacers, nil
}

// Save inserts or updates a pacer assignment. A second assignment for the
// same (event, runner) pair fails with shared.ErrAlreadyExists.
func (r *GormPacerRepository) Save(ctx context.Context, pacer *event.Pacer) error {
	model := models.PacerModelFromDomain(pacer)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a pacer assignment
func (r *GormPacerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.PacerModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
