package points

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// Fixed award amounts for the built-in flows
const (
	// PeerGranterAward is credited to the runner who gives points away
	PeerGranterAward int64 = 50
	// PeerReceiverAward is credited to the runner who receives them
	PeerReceiverAward int64 = 100
	// ReferralBonus is credited to a referrer when a referred runner registers
	ReferralBonus int64 = 500
	// SignupBonus is credited to a newly registered runner
	SignupBonus int64 = 1000
)

// PointTransaction is the single value object every balance mutation is derived
// from. It couples a ledger entry with the counter deltas it implies, so that
// the denormalized runner counters and the append-only ledger cannot diverge:
// the repository applies both from this one object in one database transaction.
type PointTransaction struct {
	Entry         *LedgerEntry
	LifetimeDelta int64
	MonthDelta    int64
	BalanceDelta  int64
}

// NewPointTransaction creates a point transaction from an entry and its deltas
func NewPointTransaction(entry *LedgerEntry, lifetimeDelta, monthDelta, balanceDelta int64) (*PointTransaction, error) {
	if entry == nil {
		return nil, shared.NewDomainError("INVALID_ENTRY", "Ledger entry cannot be nil")
	}
	if lifetimeDelta < 0 || monthDelta < 0 || balanceDelta < 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Counter deltas cannot be negative")
	}
	return &PointTransaction{
		Entry:         entry,
		LifetimeDelta: lifetimeDelta,
		MonthDelta:    monthDelta,
		BalanceDelta:  balanceDelta,
	}, nil
}

// ReceiverID returns the runner whose counters this transaction mutates
func (t *PointTransaction) ReceiverID() uuid.UUID {
	return t.Entry.ReceiverID
}

// MutatesCounters returns true if applying this transaction changes any runner counter
func (t *PointTransaction) MutatesCounters() bool {
	return t.LifetimeDelta != 0 || t.MonthDelta != 0 || t.BalanceDelta != 0
}

// CreatePeerAwardTransactions creates the pair of transactions a peer award
// produces: the granter is credited for giving, the receiver for receiving.
// Both entries share the same timestamp.
func CreatePeerAwardTransactions(granterID, receiverID uuid.UUID) (*PointTransaction, *PointTransaction, error) {
	if granterID == receiverID {
		return nil, nil, shared.NewDomainError("INVALID_RECEIVER", "Runner cannot award points to themselves")
	}

	now := time.Now()

	granterEntry, err := NewLedgerEntry(granterID, receiverID, PeerGranterAward, ReasonGranted, OriginPeer)
	if err != nil {
		return nil, nil, err
	}
	granterEntry.WithOccurredAt(now)

	receiverEntry, err := NewLedgerEntry(receiverID, granterID, PeerReceiverAward, ReasonReceived, OriginPeer)
	if err != nil {
		return nil, nil, err
	}
	receiverEntry.WithOccurredAt(now)

	granterTx, err := NewPointTransaction(granterEntry, PeerGranterAward, PeerGranterAward, PeerGranterAward)
	if err != nil {
		return nil, nil, err
	}
	receiverTx, err := NewPointTransaction(receiverEntry, PeerReceiverAward, PeerReceiverAward, PeerReceiverAward)
	if err != nil {
		return nil, nil, err
	}

	return granterTx, receiverTx, nil
}

// CreateReferralBonusTransaction creates the referrer's transaction for a
// successful referral. The counterparty is the newly registered runner, which
// is what referral earnings queries aggregate on.
func CreateReferralBonusTransaction(referrerID, newRunnerID uuid.UUID) (*PointTransaction, error) {
	entry, err := NewLedgerEntry(referrerID, newRunnerID, ReferralBonus, ReasonReceived, OriginReferral)
	if err != nil {
		return nil, err
	}
	return NewPointTransaction(entry, 0, 0, ReferralBonus)
}

// CreateSignupBonusTransaction creates the new runner's signup credit. The
// bonus is recorded in the ledger as well as the balance so the two cannot
// drift apart.
func CreateSignupBonusTransaction(newRunnerID, referrerID uuid.UUID) (*PointTransaction, error) {
	entry, err := NewLedgerEntry(newRunnerID, referrerID, SignupBonus, ReasonReceived, OriginReferral)
	if err != nil {
		return nil, err
	}
	return NewPointTransaction(entry, SignupBonus, SignupBonus, SignupBonus)
}

// CreateActivityGrantTransaction creates the activity owner's transaction for
// an activity grant. The grant credits the owner in the ledger only: the
// owner's running counters are not touched, their activity total is computed
// by aggregating ledger rows.
func CreateActivityGrantTransaction(ownerID, granterID, activityID uuid.UUID, amount int64) (*PointTransaction, error) {
	entry, err := NewLedgerEntry(ownerID, granterID, amount, ReasonReceived, OriginReferral)
	if err != nil {
		return nil, err
	}
	entry.WithActivityID(activityID)
	return NewPointTransaction(entry, 0, 0, 0)
}
