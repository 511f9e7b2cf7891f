package event

import (
	"strings"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// Team represents a group of runners competing together at an event
type Team struct {
	shared.BaseEntity
	EventID   uuid.UUID
	Name      string
	CaptainID uuid.UUID
}

// NewTeam creates a new team led by the given captain
func NewTeam(eventID, captainID uuid.UUID, name string) (*Team, error) {
	name = strings.TrimSpace(name)

	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event ID cannot be empty")
	}
	if captainID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CAPTAIN", "Captain ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Team name cannot be empty")
	}

	return &Team{
		BaseEntity: shared.NewBaseEntity(),
		EventID:    eventID,
		Name:       name,
		CaptainID:  captainID,
	}, nil
}

// TeamMember links a runner to a team. Membership lives in its own table with
// a uniqueness constraint on (team, runner) rather than a serialized list on
// the team row, so joins and integrity checks stay in the store.
type TeamMember struct {
	shared.BaseEntity
	TeamID   uuid.UUID
	RunnerID uuid.UUID
}

// NewTeamMember creates a team membership
func NewTeamMember(teamID, runnerID uuid.UUID) (*TeamMember, error) {
	if teamID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TEAM", "Team ID cannot be empty")
	}
	if runnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RUNNER", "Runner ID cannot be empty")
	}

	return &TeamMember{
		BaseEntity: shared.NewBaseEntity(),
		TeamID:     teamID,
		RunnerID:   runnerID,
	}, nil
}
