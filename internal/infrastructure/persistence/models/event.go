package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zona2/backend/internal/domain/event"
)

// EventModel is the persistence model for the Event domain entity.
type EventModel struct {
	BaseModel
	Title       string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Location    string          `gorm:"type:varchar(300)"`
	StartsAt    time.Time       `gorm:"not null;index:idx_events_starts_at"`
	Capacity    int             `gorm:"not null"`
	Fee         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency    string          `gorm:"type:varchar(3)"`
	Status      event.Status    `gorm:"type:varchar(20);not null;default:'DRAFT'"`
}

// TableName returns the table name for GORM
func (EventModel) TableName() string {
	return "events"
}

// ToDomain converts the persistence model to a domain Event entity.
func (m *EventModel) ToDomain() *event.Event {
	return &event.Event{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Description: m.Description,
		Location:    m.Location,
		StartsAt:    m.StartsAt,
		Capacity:    m.Capacity,
		Fee:         m.Fee,
		Currency:    m.Currency,
		Status:      m.Status,
	}
}

// FromDomain populates the persistence model from a domain Event entity.
func (m *EventModel) FromDomain(e *event.Event) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Title = e.Title
	m.Description = e.Description
	m.Location = e.Location
	m.StartsAt = e.StartsAt
	m.Capacity = e.Capacity
	m.Fee = e.Fee
	m.Currency = e.Currency
	m.Status = e.Status
}

// EventModelFromDomain creates a new persistence model from a domain Event entity.
func EventModelFromDomain(e *event.Event) *EventModel {
	m := &EventModel{}
	m.FromDomain(e)
	return m
}

// RegistrationModel is the persistence model for the Registration domain entity.
type RegistrationModel struct {
	BaseModel
	EventID         uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_runner,priority:1"`
	RunnerID        uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_runner,priority:2;index:idx_registrations_runner"`
	Status          event.RegistrationStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentIntentID *string                  `gorm:"type:varchar(100);index:idx_registrations_payment_intent"`
	AmountPaid      decimal.Decimal          `gorm:"type:decimal(18,2);not null;default:0"`
	PromotionID     *uuid.UUID               `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (RegistrationModel) TableName() string {
	return "registrations"
}

// ToDomain converts the persistence model to a domain Registration entity.
func (m *RegistrationModel) ToDomain() *event.Registration {
	return &event.Registration{
		BaseEntity:      m.BaseModel.ToDomain(),
		EventID:         m.EventID,
		RunnerID:        m.RunnerID,
		Status:          m.Status,
		PaymentIntentID: m.PaymentIntentID,
		AmountPaid:      m.AmountPaid,
		PromotionID:     m.PromotionID,
	}
}

// FromDomain populates the persistence model from a domain Registration entity.
func (m *RegistrationModel) FromDomain(r *event.Registration) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.EventID = r.EventID
	m.RunnerID = r.RunnerID
	m.Status = r.Status
	m.PaymentIntentID = r.PaymentIntentID
	m.AmountPaid = r.AmountPaid
	m.PromotionID = r.PromotionID
}

// RegistrationModelFromDomain creates a new persistence model from a domain Registration entity.
func RegistrationModelFromDomain(r *event.Registration) *RegistrationModel {
	m := &RegistrationModel{}
	m.FromDomain(r)
	return m
}

// PromotionModel is the persistence model for the Promotion domain entity.
type PromotionModel struct {
	BaseModel
	EventID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_promotions_event"`
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_promotions_code"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	ExpiresAt       time.Time       `gorm:"not null"`
	MaxUses         int             `gorm:"not null;default:0"`
	Uses            int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PromotionModel) TableName() string {
	return "promotions"
}

// ToDomain converts the persistence model to a domain Promotion entity.
func (m *PromotionModel) ToDomain() *event.Promotion {
	return &event.Promotion{
		BaseEntity:      m.BaseModel.ToDomain(),
		EventID:         m.EventID,
		Code:            m.Code,
		DiscountPercent: m.DiscountPercent,
		ExpiresAt:       m.ExpiresAt,
		MaxUses:         m.MaxUses,
		Uses:            m.Uses,
	}
}

// FromDomain populates the persistence model from a domain Promotion entity.
func (m *PromotionModel) FromDomain(p *event.Promotion) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.EventID = p.EventID
	m.Code = p.Code
	m.DiscountPercent = p.DiscountPercent
	m.ExpiresAt = p.ExpiresAt
	m.MaxUses = p.MaxUses
	m.Uses = p.Uses
}

// PromotionModelFromDomain creates a new persistence model from a domain Promotion entity.
func PromotionModelFromDomain(p *event.Promotion) *PromotionModel {
	m := &PromotionModel{}
	m.FromDomain(p)
	return m
}

// TeamModel is the persistence model for the Team domain entity.
type TeamModel struct {
	BaseModel
	EventID   uuid.UUID `gorm:"type:uuid;not null;index:idx_teams_event"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CaptainID uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (TeamModel) TableName() string {
	return "teams"
}

// ToDomain converts the persistence model to a domain Team entity.
func (m *TeamModel) ToDomain() *event.Team {
	return &event.Team{
		BaseEntity: m.BaseModel.ToDomain(),
		EventID:    m.EventID,
		Name:       m.Name,
		CaptainID:  m.CaptainID,
	}
}

// FromDomain populates the persistence model from a domain Team entity.
func (m *TeamModel) FromDomain(t *event.Team) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.EventID = t.EventID
	m.Name = t.Name
	m.CaptainID = t.CaptainID
}

// TeamModelFromDomain creates a new persistence model from a domain Team entity.
func TeamModelFromDomain(t *event.Team) *TeamModel {
	m := &TeamModel{}
	m.FromDomain(t)
	return m
}

// TeamMemberModel is the persistence model for team membership. Membership is
// a proper join table with a composite unique index, not a serialized list on
// the team row.
type TeamMemberModel struct {
	BaseModel
	TeamID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_runner,priority:1"`
	RunnerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_runner,priority:2;index:idx_team_members_runner"`
}

// TableName returns the table name for GORM
func (TeamMemberModel) TableName() string {
	return "team_members"
}

// ToDomain converts the persistence model to a domain TeamMember entity.
func (m *TeamMemberModel) ToDomain() *event.TeamMember {
	return &event.TeamMember{
		BaseEntity: m.BaseModel.ToDomain(),
		TeamID:     m.TeamID,
		RunnerID:   m.RunnerID,
	}
}

// FromDomain populates the persistence model from a domain TeamMember entity.
func (m *TeamMemberModel) FromDomain(tm *event.TeamMember) {
	m.FromDomainBaseEntity(tm.BaseEntity)
	m.TeamID = tm.TeamID
	m.RunnerID = tm.RunnerID
}

// PacerModel is the persistence model for the Pacer domain entity.
type PacerModel struct {
	BaseModel
	EventID        uuid.UUID `gorm:"type:uuid;not null;index:idx_pacers_event"`
	RunnerID       uuid.UUID `gorm:"type:uuid;not null"`
	PaceSecsPerKm  int       `gorm:"not null"`
	TargetDistance float64   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PacerModel) TableName() string {
	return "pacers"
}

// ToDomain converts the persistence model to a domain Pacer entity.
func (m *PacerModel) ToDomain() *event.Pacer {
	return &event.Pacer{
		BaseEntity:     m.BaseModel.ToDomain(),
		EventID:        m.EventID,
		RunnerID:       m.RunnerID,
		PaceSecsPerKm:  m.PaceSecsPerKm,
		TargetDistance: m.TargetDistance,
	}
}

// FromDomain populates the persistence model from a domain Pacer entity.
func (m *PacerModel) FromDomain(p *event.Pacer) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.EventID = p.EventID
	m.RunnerID = p.RunnerID
	m.PaceSecsPerKm = p.PaceSecsPerKm
	m.TargetDistance = p.TargetDistance
}

// PacerModelFromDomain creates a new persistence model from a domain Pacer entity.
func PacerModelFromDomain(p *event.Pacer) *PacerModel {
	m := &PacerModel{}
	m.FromDomain(p)
	return m
}
