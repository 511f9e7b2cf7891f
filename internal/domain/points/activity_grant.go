package points

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// ActivityGrant records that a runner granted points to a specific activity.
// At most one grant may exist per (granter, activity) pair, enforced by a
// uniqueness constraint in the store.
type ActivityGrant struct {
	shared.BaseEntity
	GranterID  uuid.UUID
	ActivityID uuid.UUID
	Points     int64
	GrantedAt  time.Time
}

// NewActivityGrant creates a new activity grant
func NewActivityGrant(granterID, activityID uuid.UUID, amount int64) (*ActivityGrant, error) {
	if granterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_GRANTER", "Granter ID cannot be empty")
	}
	if activityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTIVITY", "Activity ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Point amount must be positive")
	}

	return &ActivityGrant{
		BaseEntity: shared.NewBaseEntity(),
		GranterID:  granterID,
		ActivityID: activityID,
		Points:     amount,
		GrantedAt:  time.Now(),
	}, nil
}
