package points

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/points"
)

// PeerAwardInput contains data for a peer-to-peer point award
type PeerAwardInput struct {
	GranterID      uuid.UUID
	ReceiverID     uuid.UUID
	IdempotencyKey string // Optional client-generated replay token
}

// PeerAwardResult is returned after a successful peer award
type PeerAwardResult struct {
	GranterEntry  LedgerEntryDTO `json:"granter_entry"`
	ReceiverEntry LedgerEntryDTO `json:"receiver_entry"`
}

// GrantToActivityInput contains data for granting points to an activity
type GrantToActivityInput struct {
	GranterID  uuid.UUID
	ActivityID uuid.UUID
	Points     int64
}

// GrantToActivityResult is returned after a successful activity grant
type GrantToActivityResult struct {
	Entry   LedgerEntryDTO `json:"entry"`
	OwnerID uuid.UUID      `json:"owner_id"`
}

// ReferralBonusResult is returned after the registration-time referral flow
type ReferralBonusResult struct {
	ReferrerID     *uuid.UUID `json:"referrer_id,omitempty"`
	ReferralBonus  int64      `json:"referral_bonus"`
	SignupBonus    int64      `json:"signup_bonus"`
	SyntheticCode  string     `json:"synthetic_code,omitempty"`
	ReferrerFound  bool       `json:"referrer_found"`
}

// BalanceDTO carries a runner's denormalized point counters
type BalanceDTO struct {
	RunnerID       uuid.UUID `json:"runner_id"`
	LifetimePoints int64     `json:"lifetime_points"`
	MonthPoints    int64     `json:"month_points"`
	Balance        int64     `json:"balance"`
}

// ReferralEarningsDTO carries derived referral statistics
type ReferralEarningsDTO struct {
	RunnerID      uuid.UUID `json:"runner_id"`
	TotalReferred int64     `json:"total_referred"`
	TotalPoints   int64     `json:"total_points"`
}

// LedgerEntryDTO is the transport representation of a ledger entry
type LedgerEntryDTO struct {
	ID             uuid.UUID  `json:"id"`
	ReceiverID     uuid.UUID  `json:"receiver_id"`
	CounterpartyID uuid.UUID  `json:"counterparty_id"`
	Points         int64      `json:"points"`
	Reason         string     `json:"reason"`
	Origin         string     `json:"origin"`
	ActivityID     *uuid.UUID `json:"activity_id,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

// ListEntriesInput contains filter options for ledger queries
type ListEntriesInput struct {
	ReceiverID     *uuid.UUID
	CounterpartyID *uuid.UUID
	Reason         string
	Origin         string
	ActivityID     *uuid.UUID
	Page           int
	PageSize       int
}

// ListEntriesResult carries a page of ledger entries
type ListEntriesResult struct {
	Entries  []LedgerEntryDTO `json:"entries"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// ActivityGrantDTO is the transport representation of an activity grant
type ActivityGrantDTO struct {
	ID         uuid.UUID `json:"id"`
	GranterID  uuid.UUID `json:"granter_id"`
	ActivityID uuid.UUID `json:"activity_id"`
	Points     int64     `json:"points"`
	GrantedAt  time.Time `json:"granted_at"`
}

// ListActivityGrantsResult carries a page of activity grants
type ListActivityGrantsResult struct {
	Grants   []ActivityGrantDTO `json:"grants"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// ToActivityGrantDTO converts a domain activity grant to its DTO
func ToActivityGrantDTO(g *points.ActivityGrant) ActivityGrantDTO {
	return ActivityGrantDTO{
		ID:         g.ID,
		GranterID:  g.GranterID,
		ActivityID: g.ActivityID,
		Points:     g.Points,
		GrantedAt:  g.GrantedAt,
	}
}

// ToLedgerEntryDTO converts a domain ledger entry to its DTO
func ToLedgerEntryDTO(e *points.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:             e.ID,
		ReceiverID:     e.ReceiverID,
		CounterpartyID: e.CounterpartyID,
		Points:         e.Points,
		Reason:         e.Reason.String(),
		Origin:         e.Origin.String(),
		ActivityID:     e.ActivityID,
		OccurredAt:     e.OccurredAt,
	}
}
