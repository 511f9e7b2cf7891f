package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// Repository provides access to event records
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Event, int64, error)
	Save(ctx context.Context, ev *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RegistrationRepository provides access to event registrations
type RegistrationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Registration, error)
	FindByEventAndRunner(ctx context.Context, eventID, runnerID uuid.UUID) (*Registration, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID, filter shared.Filter) ([]Registration, int64, error)
	FindByRunnerID(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]Registration, int64, error)
	FindByPaymentIntentID(ctx context.Context, intentID string) (*Registration, error)
	CountConfirmedByEventID(ctx context.Context, eventID uuid.UUID) (int64, error)
	// Save inserts or updates. Inserting a second registration for the same
	// (event, runner) pair fails with shared.ErrAlreadyExists.
	Save(ctx context.Context, reg *Registration) error
}

// PromotionRepository provides access to promotions
type PromotionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	FindByCode(ctx context.Context, code string) (*Promotion, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]Promotion, error)
	Save(ctx context.Context, promo *Promotion) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TeamRepository provides access to teams and their memberships
type TeamRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Team, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]Team, error)
	Save(ctx context.Context, team *Team) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AddMember inserts a membership row. Adding a runner who is already a
	// member of the team fails with shared.ErrAlreadyExists.
	AddMember(ctx context.Context, member *TeamMember) error
	RemoveMember(ctx context.Context, teamID, runnerID uuid.UUID) error
	FindMembers(ctx context.Context, teamID uuid.UUID) ([]TeamMember, error)
	IsMember(ctx context.Context, teamID, runnerID uuid.UUID) (bool, error)

	// IsMemberOfEvent reports whether the runner already belongs to any team
	// of the event. A runner may join at most one team per event.
	IsMemberOfEvent(ctx context.Context, eventID, runnerID uuid.UUID) (bool, error)
}

// PacerRepository provides access to pacer assignments
type PacerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Pacer, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]Pacer, error)
	Save(ctx context.Context, pacer *Pacer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
