package points

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// LedgerEntryFilter represents query filter options for ledger entries
type LedgerEntryFilter struct {
	ReceiverID     *uuid.UUID
	CounterpartyID *uuid.UUID
	Reason         *Reason
	Origin         *Origin
	ActivityID     *uuid.UUID
	OccurredAfter  *time.Time
	OccurredBefore *time.Time
	Page           int
	PageSize       int
}

// DefaultLedgerEntryFilter returns a filter with default pagination
func DefaultLedgerEntryFilter() LedgerEntryFilter {
	return LedgerEntryFilter{
		Page:     1,
		PageSize: 20,
	}
}

// LedgerRepository persists ledger entries and is the only writer of runner
// point counters. Every mutation goes through ApplyTransactions or
// ApplyActivityGrant so counter updates and ledger appends commit atomically.
type LedgerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)
	FindByFilter(ctx context.Context, filter LedgerEntryFilter) ([]LedgerEntry, int64, error)

	// ApplyTransactions applies point transactions as one atomic write: for
	// each transaction the receiver's counters are incremented by the deltas
	// and the entry is appended, all in a single store transaction. A missing
	// receiver aborts the whole batch with shared.ErrNotFound. A duplicate
	// idempotency key aborts with shared.ErrAlreadyExists.
	ApplyTransactions(ctx context.Context, txs ...*PointTransaction) error

	// ApplyReferral records the referral link and pays the bonuses as one
	// atomic write: the new runner's referred_by is set and each transaction
	// is applied in the same store transaction. A failed bonus write rolls
	// the link back with it.
	ApplyReferral(ctx context.Context, newRunnerID uuid.UUID, referredBy string, txs ...*PointTransaction) error

	// ApplyActivityGrant inserts the grant and its ledger entry atomically.
	// A prior grant for the same (granter, activity) pair aborts with
	// shared.ErrDuplicateGrant and writes nothing.
	ApplyActivityGrant(ctx context.Context, grant *ActivityGrant, tx *PointTransaction) error

	// SumPointsByReceiver aggregates entry points for a receiver, optionally
	// narrowed by reason and origin.
	SumPointsByReceiver(ctx context.Context, receiverID uuid.UUID, reason *Reason, origin *Origin) (int64, error)

	// SumPointsByReceiverAndCounterparties aggregates entry points for a
	// receiver restricted to a set of counterparties. Used for referral
	// earnings, which are derived from ledger rows rather than stored.
	SumPointsByReceiverAndCounterparties(ctx context.Context, receiverID uuid.UUID, counterpartyIDs []uuid.UUID, reason Reason, origin Origin) (int64, error)

	// SumPointsByActivity aggregates entry points linked to an activity.
	SumPointsByActivity(ctx context.Context, activityID uuid.UUID) (int64, error)
}

// ActivityGrantRepository provides read access to activity grants. Writes go
// through LedgerRepository.ApplyActivityGrant.
type ActivityGrantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ActivityGrant, error)
	FindByGranterAndActivity(ctx context.Context, granterID, activityID uuid.UUID) (*ActivityGrant, error)
	FindByActivityID(ctx context.Context, activityID uuid.UUID, filter shared.Filter) ([]ActivityGrant, int64, error)
	ExistsByGranterAndActivity(ctx context.Context, granterID, activityID uuid.UUID) (bool, error)
}
