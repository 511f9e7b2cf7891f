package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/points"
)

// LedgerEntryModel is the persistence model for the LedgerEntry domain entity.
// Rows are append-only: no update or delete path exists.
type LedgerEntryModel struct {
	BaseModel
	ReceiverID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_ledger_receiver"`
	CounterpartyID uuid.UUID     `gorm:"type:uuid;not null;index:idx_ledger_counterparty"`
	Points         int64         `gorm:"not null"`
	Reason         points.Reason `gorm:"type:varchar(1);not null"`
	Origin         points.Origin `gorm:"type:varchar(1);not null"`
	ActivityID     *uuid.UUID    `gorm:"type:uuid;index:idx_ledger_activity"`
	IdempotencyKey *string       `gorm:"type:varchar(100);uniqueIndex:idx_ledger_idem_key"`
	OccurredAt     time.Time     `gorm:"not null;index:idx_ledger_occurred_at"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry entity.
func (m *LedgerEntryModel) ToDomain() *points.LedgerEntry {
	return &points.LedgerEntry{
		BaseEntity:     m.BaseModel.ToDomain(),
		ReceiverID:     m.ReceiverID,
		CounterpartyID: m.CounterpartyID,
		Points:         m.Points,
		Reason:         m.Reason,
		Origin:         m.Origin,
		ActivityID:     m.ActivityID,
		IdempotencyKey: m.IdempotencyKey,
		OccurredAt:     m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain LedgerEntry entity.
func (m *LedgerEntryModel) FromDomain(e *points.LedgerEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.ReceiverID = e.ReceiverID
	m.CounterpartyID = e.CounterpartyID
	m.Points = e.Points
	m.Reason = e.Reason
	m.Origin = e.Origin
	m.ActivityID = e.ActivityID
	m.IdempotencyKey = e.IdempotencyKey
	m.OccurredAt = e.OccurredAt
}

// LedgerEntryModelFromDomain creates a new persistence model from a domain LedgerEntry entity.
func LedgerEntryModelFromDomain(e *points.LedgerEntry) *LedgerEntryModel {
	m := &LedgerEntryModel{}
	m.FromDomain(e)
	return m
}

// ActivityGrantModel is the persistence model for the ActivityGrant domain entity.
// The composite unique index is the store-level guarantee that a runner grants
// any given activity at most once, even under concurrent requests.
type ActivityGrantModel struct {
	BaseModel
	GranterID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grants_granter_activity,priority:1"`
	ActivityID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grants_granter_activity,priority:2;index:idx_grants_activity"`
	Points     int64     `gorm:"not null"`
	GrantedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ActivityGrantModel) TableName() string {
	return "activity_grants"
}

// ToDomain converts the persistence model to a domain ActivityGrant entity.
func (m *ActivityGrantModel) ToDomain() *points.ActivityGrant {
	return &points.ActivityGrant{
		BaseEntity: m.BaseModel.ToDomain(),
		GranterID:  m.GranterID,
		ActivityID: m.ActivityID,
		Points:     m.Points,
		GrantedAt:  m.GrantedAt,
	}
}

// FromDomain populates the persistence model from a domain ActivityGrant entity.
func (m *ActivityGrantModel) FromDomain(g *points.ActivityGrant) {
	m.FromDomainBaseEntity(g.BaseEntity)
	m.GranterID = g.GranterID
	m.ActivityID = g.ActivityID
	m.Points = g.Points
	m.GrantedAt = g.GrantedAt
}

// ActivityGrantModelFromDomain creates a new persistence model from a domain ActivityGrant entity.
func ActivityGrantModelFromDomain(g *points.ActivityGrant) *ActivityGrantModel {
	m := &ActivityGrantModel{}
	m.FromDomain(g)
	return m
}
