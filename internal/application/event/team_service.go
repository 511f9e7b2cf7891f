package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/event"
	"github.com/zona2/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TeamService handles team creation and membership for events
type TeamService struct {
	eventRepo event.Repository
	teamRepo  event.TeamRepository
	logger    *zap.Logger
}

// NewTeamService creates a new team service
func NewTeamService(eventRepo event.Repository, teamRepo event.TeamRepository, logger *zap.Logger) *TeamService {
	return &TeamService{
		eventRepo: eventRepo,
		teamRepo:  teamRepo,
		logger:    logger,
	}
}

// CreateTeam creates a team and enrolls the captain as its first member
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*TeamDTO, error) {
	ev, err := s.eventRepo.FindByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	already, err := s.teamRepo.IsMemberOfEvent(ctx, ev.ID, input.CaptainID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, shared.NewDomainError("ALREADY_IN_TEAM", "Runner already belongs to a team for this event")
	}

	team, err := event.NewTeam(ev.ID, input.CaptainID, input.Name)
	if err != nil {
		return nil, err
	}

	if err := s.teamRepo.Save(ctx, team); err != nil {
		return nil, err
	}

	member, err := event.NewTeamMember(team.ID, input.CaptainID)
	if err != nil {
		return nil, err
	}
	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("Team created",
		zap.String("team_id", team.ID.String()),
		zap.String("event_id", ev.ID.String()),
		zap.String("name", team.Name))

	dto := ToTeamDTO(team, 1)
	return &dto, nil
}

// GetTeam returns a team with its member count
func (s *TeamService) GetTeam(ctx context.Context, teamID uuid.UUID) (*TeamDTO, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	members, err := s.teamRepo.FindMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	dto := ToTeamDTO(team, len(members))
	return &dto, nil
}

// ListTeams returns all teams of an event
func (s *TeamService) ListTeams(ctx context.Context, eventID uuid.UUID) ([]TeamDTO, error) {
	teams, err := s.teamRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	dtos := make([]TeamDTO, 0, len(teams))
	for i := range teams {
		members, err := s.teamRepo.FindMembers(ctx, teams[i].ID)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, ToTeamDTO(&teams[i], len(members)))
	}
	return dtos, nil
}

// ListMembers returns the members of a team
func (s *TeamService) ListMembers(ctx context.Context, teamID uuid.UUID) ([]TeamMemberDTO, error) {
	if _, err := s.teamRepo.FindByID(ctx, teamID); err != nil {
		return nil, err
	}

	members, err := s.teamRepo.FindMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	dtos := make([]TeamMemberDTO, 0, len(members))
	for i := range members {
		dtos = append(dtos, TeamMemberDTO{
			TeamID:   members[i].TeamID,
			RunnerID: members[i].RunnerID,
			JoinedAt: members[i].CreatedAt,
		})
	}
	return dtos, nil
}

// JoinTeam adds a runner to a team. A runner may belong to at most one team
// per event.
func (s *TeamService) JoinTeam(ctx context.Context, teamID, runnerID uuid.UUID) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}

	already, err := s.teamRepo.IsMemberOfEvent(ctx, team.EventID, runnerID)
	if err != nil {
		return err
	}
	if already {
		return shared.NewDomainError("ALREADY_IN_TEAM", "Runner already belongs to a team for this event")
	}

	member, err := event.NewTeamMember(team.ID, runnerID)
	if err != nil {
		return err
	}

	if err := s.teamRepo.AddMember(ctx, member); err != nil {
		return err
	}

	s.logger.Info("Runner joined team",
		zap.String("team_id", team.ID.String()),
		zap.String("runner_id", runnerID.String()))
	return nil
}

// LeaveTeam removes a runner from a team. The captain cannot leave, they must
// delete the team instead.
func (s *TeamService) LeaveTeam(ctx context.Context, teamID, runnerID uuid.UUID) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.CaptainID == runnerID {
		return shared.NewDomainError("CAPTAIN_CANNOT_LEAVE", "Captain must delete the team instead of leaving it")
	}

	member, err := s.teamRepo.IsMember(ctx, teamID, runnerID)
	if err != nil {
		return err
	}
	if !member {
		return shared.ErrNotFound
	}

	return s.teamRepo.RemoveMember(ctx, teamID, runnerID)
}

// DeleteTeam removes a team and its memberships. Only the captain may delete.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID, runnerID uuid.UUID) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.CaptainID != runnerID {
		return shared.ErrForbidden
	}

	return s.teamRepo.Delete(ctx, teamID)
}
