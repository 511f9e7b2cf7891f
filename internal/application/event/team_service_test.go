package event

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zona2/backend/internal/domain/event"
	"github.com/zona2/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type teamServiceMocks struct {
	eventRepo *MockEventRepository
	teamRepo  *MockTeamRepository
}

func newTeamService(t *testing.T) (*TeamService, *teamServiceMocks) {
	t.Helper()
	m := &teamServiceMocks{
		eventRepo: new(MockEventRepository),
		teamRepo:  new(MockTeamRepository),
	}
	svc := NewTeamService(m.eventRepo, m.teamRepo, zap.NewNop())
	return svc, m
}

func testTeam(t *testing.T, eventID, captainID uuid.UUID) *event.Team {
	t.Helper()
	team, err := event.NewTeam(eventID, captainID, "Los Correcaminos")
	require.NoError(t, err)
	return team
}

func TestTeamService_CreateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("creates team with captain as first member", func(t *testing.T) {
		svc, m := newTeamService(t)
		ev := testPaidEvent(t)
		captainID := uuid.New()

		m.eventRepo.On("FindByID", ctx, ev.ID).Return(ev, nil)
		m.teamRepo.On("IsMemberOfEvent", ctx, ev.ID, captainID).Return(false, nil)
		m.teamRepo.On("Save", ctx, mock.AnythingOfType("*event.Team")).Return(nil)
		m.teamRepo.On("AddMember", ctx, mock.MatchedBy(func(member *event.TeamMember) bool {
			return member.RunnerID == captainID
		})).Return(nil)

		dto, err := svc.CreateTeam(ctx, CreateTeamInput{
			EventID:   ev.ID,
			CaptainID: captainID,
			Name:      "Los Correcaminos",
		})

		require.NoError(t, err)
		assert.Equal(t, captainID, dto.CaptainID)
		assert.Equal(t, 1, dto.Members)
		m.teamRepo.AssertExpectations(t)
	})

	t.Run("captain already on a team for the event", func(t *testing.T) {
		svc, m := newTeamService(t)
		ev := testPaidEvent(t)
		captainID := uuid.New()

		m.eventRepo.On("FindByID", ctx, ev.ID).Return(ev, nil)
		m.teamRepo.On("IsMemberOfEvent", ctx, ev.ID, captainID).Return(true, nil)

		_, err := svc.CreateTeam(ctx, CreateTeamInput{
			EventID:   ev.ID,
			CaptainID: captainID,
			Name:      "Duplicados",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_IN_TEAM", domainErr.Code)
		m.teamRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, m := newTeamService(t)
		ghost := uuid.New()

		m.eventRepo.On("FindByID", ctx, ghost).Return(nil, shared.ErrNotFound)

		_, err := svc.CreateTeam(ctx, CreateTeamInput{
			EventID:   ghost,
			CaptainID: uuid.New(),
			Name:      "Fantasmas",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTeamService_JoinTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("joins open team", func(t *testing.T) {
		svc, m := newTeamService(t)
		team := testTeam(t, uuid.New(), uuid.New())
		runnerID := uuid.New()

		m.teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)
		m.teamRepo.On("IsMemberOfEvent", ctx, team.EventID, runnerID).Return(false, nil)
		m.teamRepo.On("AddMember", ctx, mock.MatchedBy(func(member *event.TeamMember) bool {
			return member.TeamID == team.ID && member.RunnerID == runnerID
		})).Return(nil)

		require.NoError(t, svc.JoinTeam(ctx, team.ID, runnerID))
		m.teamRepo.AssertExpectations(t)
	})

	t.Run("one team per event", func(t *testing.T) {
		svc, m := newTeamService(t)
		team := testTeam(t, uuid.New(), uuid.New())
		runnerID := uuid.New()

		m.teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)
		m.teamRepo.On("IsMemberOfEvent", ctx, team.EventID, runnerID).Return(true, nil)

		err := svc.JoinTeam(ctx, team.ID, runnerID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_IN_TEAM", domainErr.Code)
		m.teamRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything)
	})
}

func TestTeamService_LeaveTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("member leaves", func(t *testing.T) {
		svc, m := newTeamService(t)
		team := testTeam(t, uuid.New(), uuid.New())
		runnerID := uuid.New()

		m.teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)
		m.teamRepo.On("IsMember", ctx, team.ID, runnerID).Return(true, nil)
		m.teamRepo.On("RemoveMember", ctx, team.ID, runnerID).Return(nil)

		require.NoError(t, svc.LeaveTeam(ctx, team.ID, runnerID))
	})

	t.Run("captain cannot leave", func(t *testing.T) {
		svc, m := newTeamService(t)
		captainID := uuid.New()
		team := testTeam(t, uuid.New(), captainID)

		m.teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)

		err := svc.LeaveTeam(ctx, team.ID, captainID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CAPTAIN_CANNOT_LEAVE", domainErr.Code)
	})

	t.Run("non member", func(t *testing.T) {
		svc, m := newTeamService(t)
		team := testTeam(t, uuid.New(), uuid.New())
		stranger := uuid.New()

		m.teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)
		m.teamRepo.On("IsMember", ctx, team.ID, stranger).Return(false, nil)

		err := svc.LeaveTeam(ctx, team.ID, stranger)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTeamService_DeleteTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("captain deletes", func(t *testing.T) {
		svc, m := newTeamService(t)
		captainID := uuid.New()
		team := testTeam(t, uuid.New(), captainID)

		m.teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)
		m.teamRepo.On("Delete", ctx, team.ID).Return(nil)

		require.NoError(t, svc.DeleteTeam(ctx, team.ID, captainID))
	})

	t.Run("non captain is forbidden", func(t *testing.T) {
		svc, m := newTeamService(t)
		team := testTeam(t, uuid.New(), uuid.New())

		m.teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)

		err := svc.DeleteTeam(ctx, team.ID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrForbidden)
		m.teamRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestTeamService_Lists(t *testing.T) {
	ctx := context.Background()

	t.Run("lists teams with member counts", func(t *testing.T) {
		svc, m := newTeamService(t)
		eventID := uuid.New()
		team := testTeam(t, eventID, uuid.New())
		member, err := event.NewTeamMember(team.ID, team.CaptainID)
		require.NoError(t, err)

		m.teamRepo.On("FindByEventID", ctx, eventID).Return([]event.Team{*team}, nil)
		m.teamRepo.On("FindMembers", ctx, team.ID).Return([]event.TeamMember{*member}, nil)

		dtos, err := svc.ListTeams(ctx, eventID)

		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, 1, dtos[0].Members)
	})

	t.Run("lists members", func(t *testing.T) {
		svc, m := newTeamService(t)
		team := testTeam(t, uuid.New(), uuid.New())
		member, err := event.NewTeamMember(team.ID, uuid.New())
		require.NoError(t, err)

		m.teamRepo.On("FindByID", ctx, team.ID).Return(team, nil)
		m.teamRepo.On("FindMembers", ctx, team.ID).Return([]event.TeamMember{*member}, nil)

		dtos, err := svc.ListMembers(ctx, team.ID)

		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, member.RunnerID, dtos[0].RunnerID)
	})
}
