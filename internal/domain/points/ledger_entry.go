package points

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// Reason represents why a ledger entry was written
type Reason string

const (
	// ReasonGranted represents points a runner gave away to a peer
	ReasonGranted Reason = "D"
	// ReasonReceived represents points credited to a runner (peer grant, referral or signup bonus)
	ReasonReceived Reason = "R"
)

// String returns the string representation of Reason
func (r Reason) String() string {
	return string(r)
}

// IsValid returns true if the reason code is valid
func (r Reason) IsValid() bool {
	switch r {
	case ReasonGranted, ReasonReceived:
		return true
	}
	return false
}

// Origin represents the flow a ledger entry came from
type Origin string

const (
	// OriginPeer represents a GPS peer-to-peer point exchange
	OriginPeer Origin = "0"
	// OriginReferral represents referral and activity-linked awards
	OriginReferral Origin = "3"
)

// String returns the string representation of Origin
func (o Origin) String() string {
	return string(o)
}

// IsValid returns true if the origin code is valid
func (o Origin) IsValid() bool {
	switch o {
	case OriginPeer, OriginReferral:
		return true
	}
	return false
}

// LedgerEntry represents an immutable record of a point award ("zona").
// Once created, entries cannot be modified - corrections must be made with new entries.
type LedgerEntry struct {
	shared.BaseEntity
	ReceiverID     uuid.UUID
	CounterpartyID uuid.UUID
	Points         int64 // Always positive
	Reason         Reason
	Origin         Origin
	ActivityID     *uuid.UUID // Set for activity-linked awards
	IdempotencyKey *string    // Client-generated token, unique when present
	OccurredAt     time.Time
}

// NewLedgerEntry creates a new ledger entry
func NewLedgerEntry(
	receiverID uuid.UUID,
	counterpartyID uuid.UUID,
	amount int64,
	reason Reason,
	origin Origin,
) (*LedgerEntry, error) {
	if receiverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECEIVER", "Receiver ID cannot be empty")
	}
	if counterpartyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Point amount must be positive")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Invalid ledger reason code")
	}
	if !origin.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORIGIN", "Invalid ledger origin code")
	}

	return &LedgerEntry{
		BaseEntity:     shared.NewBaseEntity(),
		ReceiverID:     receiverID,
		CounterpartyID: counterpartyID,
		Points:         amount,
		Reason:         reason,
		Origin:         origin,
		OccurredAt:     time.Now(),
	}, nil
}

// WithActivityID links the entry to the activity that triggered it
func (e *LedgerEntry) WithActivityID(activityID uuid.UUID) *LedgerEntry {
	e.ActivityID = &activityID
	return e
}

// WithIdempotencyKey sets the client-supplied replay token
func (e *LedgerEntry) WithIdempotencyKey(key string) *LedgerEntry {
	e.IdempotencyKey = &key
	return e
}

// WithOccurredAt sets the award timestamp
func (e *LedgerEntry) WithOccurredAt(ts time.Time) *LedgerEntry {
	e.OccurredAt = ts
	return e
}

// IsActivityLinked returns true if the entry was triggered by an activity grant
func (e *LedgerEntry) IsActivityLinked() bool {
	return e.ActivityID != nil
}
