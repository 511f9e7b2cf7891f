package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/points"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormLedgerRepository implements points.LedgerRepository using GORM.
// It is the only writer of runner point counters: counter updates and ledger
// appends always commit in the same database transaction.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// FindByID finds a ledger entry by ID
func (r *GormLedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*points.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByFilter lists ledger entries matching the filter, newest first
func (r *GormLedgerRepository) FindByFilter(ctx context.Context, filter points.LedgerEntryFilter) ([]points.LedgerEntry, int64, error) {
	var entryModels []models.LedgerEntryModel
	var total int64

	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.LedgerEntryModel{}), filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("occurred_at DESC")

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]points.LedgerEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, total, nil
}

// ApplyTransactions applies point transactions atomically. For each
// transaction the receiver's denormalized counters are incremented and the
// ledger entry is appended; either every write commits or none does.
func (r *GormLedgerRepository) ApplyTransactions(ctx context.Context, txs ...*points.PointTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ptx := range txs {
			if err := applyOne(tx, ptx); err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyReferral sets the new runner's referred_by and applies the bonus
// transactions in one database transaction, so a failed ledger write never
// leaves a referral link without its bonuses.
func (r *GormLedgerRepository) ApplyReferral(ctx context.Context, newRunnerID uuid.UUID, referredBy string, txs ...*points.PointTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.RunnerModel{}).
			Where("id = ?", newRunnerID).
			Update("referred_by", referredBy)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		for _, ptx := range txs {
			if err := applyOne(tx, ptx); err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyActivityGrant inserts the grant row and the owner's ledger entry in one
// transaction. The composite unique index on (granter, activity) turns a
// concurrent duplicate into exactly one success and one conflict.
func (r *GormLedgerRepository) ApplyActivityGrant(ctx context.Context, grant *points.ActivityGrant, ptx *points.PointTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		grantModel := models.ActivityGrantModelFromDomain(grant)
		if err := tx.Create(grantModel).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.ErrDuplicateGrant
			}
			return err
		}
		return applyOne(tx, ptx)
	})
}

// applyOne performs the counter update and entry append for one transaction
// inside an open database transaction.
func applyOne(tx *gorm.DB, ptx *points.PointTransaction) error {
	if ptx.MutatesCounters() {
		res := tx.Model(&models.RunnerModel{}).
			Where("id = ?", ptx.ReceiverID()).
			Updates(map[string]interface{}{
				"lifetime_points": gorm.Expr("lifetime_points + ?", ptx.LifetimeDelta),
				"month_points":    gorm.Expr("month_points + ?", ptx.MonthDelta),
				"balance":         gorm.Expr("balance + ?", ptx.BalanceDelta),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
	} else {
		// Ledger-only transactions still require the receiver to exist
		var count int64
		if err := tx.Model(&models.RunnerModel{}).Where("id = ?", ptx.ReceiverID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
	}

	entryModel := models.LedgerEntryModelFromDomain(ptx.Entry)
	if err := tx.Create(entryModel).Error; err != nil {
		if isUniqueViolation(err) {
			// Idempotency key replay
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SumPointsByReceiver aggregates entry points for a receiver
func (r *GormLedgerRepository) SumPointsByReceiver(ctx context.Context, receiverID uuid.UUID, reason *points.Reason, origin *points.Origin) (int64, error) {
	var result struct {
		Total int64
	}

	query := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(points), 0) as total").
		Where("receiver_id = ?", receiverID)
	if reason != nil {
		query = query.Where("reason = ?", *reason)
	}
	if origin != nil {
		query = query.Where("origin = ?", *origin)
	}

	if err := query.Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// SumPointsByReceiverAndCounterparties aggregates entry points for a receiver
// restricted to a set of counterparties
func (r *GormLedgerRepository) SumPointsByReceiverAndCounterparties(ctx context.Context, receiverID uuid.UUID, counterpartyIDs []uuid.UUID, reason points.Reason, origin points.Origin) (int64, error) {
	if len(counterpartyIDs) == 0 {
		return 0, nil
	}

	var result struct {
		Total int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(points), 0) as total").
		Where("receiver_id = ? AND counterparty_id IN ? AND reason = ? AND origin = ?",
			receiverID, counterpartyIDs, reason, origin).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// SumPointsByActivity aggregates entry points linked to an activity
func (r *GormLedgerRepository) SumPointsByActivity(ctx context.Context, activityID uuid.UUID) (int64, error) {
	var result struct {
		Total int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(points), 0) as total").
		Where("activity_id = ?", activityID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.Total, nil
}

// applyFilter applies filter options to the query
func (r *GormLedgerRepository) applyFilter(query *gorm.DB, filter points.LedgerEntryFilter) *gorm.DB {
	if filter.ReceiverID != nil {
		query = query.Where("receiver_id = ?", *filter.ReceiverID)
	}
	if filter.CounterpartyID != nil {
		query = query.Where("counterparty_id = ?", *filter.CounterpartyID)
	}
	if filter.Reason != nil {
		query = query.Where("reason = ?", *filter.Reason)
	}
	if filter.Origin != nil {
		query = query.Where("origin = ?", *filter.Origin)
	}
	if filter.ActivityID != nil {
		query = query.Where("activity_id = ?", *filter.ActivityID)
	}
	if filter.OccurredAfter != nil {
		query = query.Where("occurred_at >= ?", *filter.OccurredAfter)
	}
	if filter.OccurredBefore != nil {
		query = query.Where("occurred_at <= ?", *filter.OccurredBefore)
	}
	return query
}

// isUniqueViolation reports whether the error came from a unique constraint.
// Checks the GORM translated error plus driver messages for Postgres and the
// SQLite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
