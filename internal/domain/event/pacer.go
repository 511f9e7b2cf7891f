package event

import (
	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// Pacer represents a runner who paces a given target time at an event
type Pacer struct {
	shared.BaseEntity
	EventID        uuid.UUID
	RunnerID       uuid.UUID
	PaceSecsPerKm  int
	TargetDistance float64 // Meters
}

// NewPacer creates a new pacer assignment
func NewPacer(eventID, runnerID uuid.UUID, paceSecsPerKm int, targetDistance float64) (*Pacer, error) {
	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event ID cannot be empty")
	}
	if runnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RUNNER", "Runner ID cannot be empty")
	}
	if paceSecsPerKm <= 0 {
		return nil, shared.NewDomainError("INVALID_PACE", "Pace must be positive")
	}
	if targetDistance <= 0 {
		return nil, shared.NewDomainError("INVALID_DISTANCE", "Target distance must be positive")
	}

	return &Pacer{
		BaseEntity:     shared.NewBaseEntity(),
		EventID:        eventID,
		RunnerID:       runnerID,
		PaceSecsPerKm:  paceSecsPerKm,
		TargetDistance: targetDistance,
	}, nil
}
