package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/event"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPromotionRepository implements event.PromotionRepository using GORM
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository creates a new GormPromotionRepository
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// FindByID finds a promotion by ID
func (r *GormPromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*event.Promotion, error) {
	var model models.PromotionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a promotion by its code. Codes are stored upper-cased.
func (r *GormPromotionRepository) FindByCode(ctx context.Context, code string) (*event.Promotion, error) {
	var model models.PromotionModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEventID lists promotions for an event
func (r *GormPromotionRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]event.Promotion, error) {
	var promoModels []models.PromotionModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&promoModels).Error; err != nil {
		return nil, err
	}
	promotions := make([]event.Promotion, len(promoModels))
	for i, model := range promoModels {
		promotions[i] = *model.ToDomain()
	}
	return promotions, nil
}

// Save inserts or updates a promotion. A duplicate code fails with
// shared.ErrAlreadyExists.
func (r *GormPromotionRepository) Save(ctx context.Context, promo *event.Promotion) error {
	model := models.PromotionModelFromDomain(promo)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a promotion
func (r *GormPromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.PromotionModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
