package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zona2/backend/internal/domain/event"
)

// CreateEventInput contains data for creating an event
type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	Capacity    int
	Fee         decimal.Decimal
	Currency    string
}

// UpdateEventInput contains data for editing an event
type UpdateEventInput struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	Capacity    int
}

// EventDTO is the transport representation of an event
type EventDTO struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	StartsAt    time.Time       `json:"starts_at"`
	Capacity    int             `json:"capacity"`
	Registered  int64           `json:"registered"`
	Fee         decimal.Decimal `json:"fee"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ListEventsResult carries a page of events
type ListEventsResult struct {
	Events   []EventDTO `json:"events"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// RegisterInput contains data for registering a runner for an event
type RegisterInput struct {
	EventID       uuid.UUID
	RunnerID      uuid.UUID
	PromotionCode string // Optional discount code
}

// RegistrationDTO is the transport representation of a registration
type RegistrationDTO struct {
	ID              uuid.UUID       `json:"id"`
	EventID         uuid.UUID       `json:"event_id"`
	RunnerID        uuid.UUID       `json:"runner_id"`
	Status          string          `json:"status"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	PaymentIntentID *string         `json:"payment_intent_id,omitempty"`
	PromotionID     *uuid.UUID      `json:"promotion_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// RegisterResult is returned after creating a registration. ClientSecret is
// set only for paid registrations awaiting payment confirmation.
type RegisterResult struct {
	Registration RegistrationDTO `json:"registration"`
	AmountDue    decimal.Decimal `json:"amount_due"`
	ClientSecret string          `json:"client_secret,omitempty"`
}

// ListRegistrationsResult carries a page of registrations
type ListRegistrationsResult struct {
	Registrations []RegistrationDTO `json:"registrations"`
	Total         int64             `json:"total"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
}

// CreatePromotionInput contains data for creating a promotion
type CreatePromotionInput struct {
	EventID         uuid.UUID
	Code            string
	DiscountPercent decimal.Decimal
	ExpiresAt       time.Time
	MaxUses         int
}

// PromotionDTO is the transport representation of a promotion
type PromotionDTO struct {
	ID              uuid.UUID       `json:"id"`
	EventID         uuid.UUID       `json:"event_id"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	ExpiresAt       time.Time       `json:"expires_at"`
	MaxUses         int             `json:"max_uses"`
	Uses            int             `json:"uses"`
}

// CreateTeamInput contains data for creating a team
type CreateTeamInput struct {
	EventID   uuid.UUID
	CaptainID uuid.UUID
	Name      string
}

// TeamDTO is the transport representation of a team
type TeamDTO struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	Name      string    `json:"name"`
	CaptainID uuid.UUID `json:"captain_id"`
	Members   int       `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamMemberDTO is the transport representation of a team membership
type TeamMemberDTO struct {
	TeamID   uuid.UUID `json:"team_id"`
	RunnerID uuid.UUID `json:"runner_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// AssignPacerInput contains data for assigning a pacer
type AssignPacerInput struct {
	EventID        uuid.UUID
	RunnerID       uuid.UUID
	PaceSecsPerKm  int
	TargetDistance float64
}

// PacerDTO is the transport representation of a pacer assignment
type PacerDTO struct {
	ID             uuid.UUID `json:"id"`
	EventID        uuid.UUID `json:"event_id"`
	RunnerID       uuid.UUID `json:"runner_id"`
	PaceSecsPerKm  int       `json:"pace_secs_per_km"`
	TargetDistance float64   `json:"target_distance"`
}

// ToEventDTO converts a domain event to its DTO
func ToEventDTO(e *event.Event, registered int64) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		Capacity:    e.Capacity,
		Registered:  registered,
		Fee:         e.Fee,
		Currency:    e.Currency,
		Status:      e.Status.String(),
		CreatedAt:   e.CreatedAt,
	}
}

// ToRegistrationDTO converts a domain registration to its DTO
func ToRegistrationDTO(r *event.Registration) RegistrationDTO {
	return RegistrationDTO{
		ID:              r.ID,
		EventID:         r.EventID,
		RunnerID:        r.RunnerID,
		Status:          r.Status.String(),
		AmountPaid:      r.AmountPaid,
		PaymentIntentID: r.PaymentIntentID,
		PromotionID:     r.PromotionID,
		CreatedAt:       r.CreatedAt,
	}
}

// ToPromotionDTO converts a domain promotion to its DTO
func ToPromotionDTO(p *event.Promotion) PromotionDTO {
	return PromotionDTO{
		ID:              p.ID,
		EventID:         p.EventID,
		Code:            p.Code,
		DiscountPercent: p.DiscountPercent,
		ExpiresAt:       p.ExpiresAt,
		MaxUses:         p.MaxUses,
		Uses:            p.Uses,
	}
}

// ToTeamDTO converts a domain team to its DTO
func ToTeamDTO(t *event.Team, members int) TeamDTO {
	return TeamDTO{
		ID:        t.ID,
		EventID:   t.EventID,
		Name:      t.Name,
		CaptainID: t.CaptainID,
		Members:   members,
		CreatedAt: t.CreatedAt,
	}
}

// ToPacerDTO converts a domain pacer to its DTO
func ToPacerDTO(p *event.Pacer) PacerDTO {
	return PacerDTO{
		ID:             p.ID,
		EventID:        p.EventID,
		RunnerID:       p.RunnerID,
		PaceSecsPerKm:  p.PaceSecsPerKm,
		TargetDistance: p.TargetDistance,
	}
}
