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

// GormEventRepository implements event.Repository using GORM
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GormEventRepository
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// FindByID finds an event by ID
func (r *GormEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	var model models.EventModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists events, soonest first
func (r *GormEventRepository) FindAll(ctx context.Context, filter shared.Filter) ([]event.Event, int64, error) {
	var eventModels []models.EventModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.EventModel{})
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("starts_at ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, 0, err
	}

	events := make([]event.Event, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, total, nil
}

// Save inserts or updates an event
func (r *GormEventRepository) Save(ctx context.Context, ev *event.Event) error {
	model := models.EventModelFromDomain(ev)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an event
func (r *GormEventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.EventModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
