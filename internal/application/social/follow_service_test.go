package social

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/domain/social"
	"go.uber.org/zap"
)

// MockFollowRepository is a mock implementation of social.FollowRepository
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Save(ctx context.Context, follow *social.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followeeID uuid.UUID) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) FindFollowers(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]social.Follow, int64, error) {
	args := m.Called(ctx, runnerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]social.Follow), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowRepository) FindFollowing(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]social.Follow, int64, error) {
	args := m.Called(ctx, runnerID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]social.Follow), args.Get(1).(int64), args.Error(2)
}

func (m *MockFollowRepository) CountFollowers(ctx context.Context, runnerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, runnerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) CountFollowing(ctx context.Context, runnerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, runnerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockRunnerRepository mocks the runner lookup this package depends on
type MockRunnerRepository struct {
	mock.Mock
}

func (m *MockRunnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Runner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Runner), args.Error(1)
}

type followServiceMocks struct {
	followRepo       *MockFollowRepository
	runnerRepo       *MockRunnerRepository
	notificationRepo *MockNotificationRepository
	pusher           *recordingPusher
}

func newFollowService(t *testing.T) (*FollowService, *followServiceMocks) {
	t.Helper()
	m := &followServiceMocks{
		followRepo:       new(MockFollowRepository),
		runnerRepo:       new(MockRunnerRepository),
		notificationRepo: new(MockNotificationRepository),
		pusher:           newRecordingPusher(),
	}
	notifier := NewNotificationService(m.notificationRepo, m.pusher, zap.NewNop())
	svc := NewFollowService(m.followRepo, m.runnerRepo, notifier, zap.NewNop())
	return svc, m
}

func testRunner(t *testing.T, phone, nickname string) *identity.Runner {
	t.Helper()
	runner, err := identity.NewRunner(phone, nickname, "$2a$12$hash")
	require.NoError(t, err)
	return runner
}

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("follow notifies followee", func(t *testing.T) {
		svc, m := newFollowService(t)
		follower := testRunner(t, "+5215511112222", "ana")
		followee := testRunner(t, "+5215533334444", "luis")

		m.runnerRepo.On("FindByID", ctx, follower.ID).Return(follower, nil)
		m.runnerRepo.On("FindByID", ctx, followee.ID).Return(followee, nil)
		m.followRepo.On("Save", ctx, mock.MatchedBy(func(f *social.Follow) bool {
			return f.FollowerID == follower.ID && f.FolloweeID == followee.ID
		})).Return(nil)
		m.notificationRepo.On("Save", ctx, mock.MatchedBy(func(n *social.Notification) bool {
			return n.RunnerID == followee.ID && n.Kind == social.NotificationNewFollower
		})).Return(nil)

		require.NoError(t, svc.Follow(ctx, follower.ID, followee.ID))

		msgs := m.pusher.sent(followee.ID)
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0].Body, "ana")
	})

	t.Run("self follow is rejected", func(t *testing.T) {
		svc, m := newFollowService(t)
		runner := testRunner(t, "+5215511112222", "ana")

		m.runnerRepo.On("FindByID", ctx, runner.ID).Return(runner, nil)

		err := svc.Follow(ctx, runner.ID, runner.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_FOLLOW", domainErr.Code)
	})

	t.Run("duplicate follow surfaces conflict without notification", func(t *testing.T) {
		svc, m := newFollowService(t)
		follower := testRunner(t, "+5215511112222", "ana")
		followee := testRunner(t, "+5215533334444", "luis")

		m.runnerRepo.On("FindByID", ctx, follower.ID).Return(follower, nil)
		m.runnerRepo.On("FindByID", ctx, followee.ID).Return(followee, nil)
		m.followRepo.On("Save", ctx, mock.AnythingOfType("*social.Follow")).Return(shared.ErrAlreadyExists)

		err := svc.Follow(ctx, follower.ID, followee.ID)

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		assert.Empty(t, m.pusher.sent(followee.ID))
	})

	t.Run("unknown followee", func(t *testing.T) {
		svc, m := newFollowService(t)
		follower := testRunner(t, "+5215511112222", "ana")
		ghost := uuid.New()

		m.runnerRepo.On("FindByID", ctx, follower.ID).Return(follower, nil)
		m.runnerRepo.On("FindByID", ctx, ghost).Return(nil, shared.ErrNotFound)

		err := svc.Follow(ctx, follower.ID, ghost)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestFollowService_Unfollow(t *testing.T) {
	ctx := context.Background()

	t.Run("removes existing relation", func(t *testing.T) {
		svc, m := newFollowService(t)
		followerID := uuid.New()
		followeeID := uuid.New()

		m.followRepo.On("Exists", ctx, followerID, followeeID).Return(true, nil)
		m.followRepo.On("Delete", ctx, followerID, followeeID).Return(nil)

		require.NoError(t, svc.Unfollow(ctx, followerID, followeeID))
		m.followRepo.AssertExpectations(t)
	})

	t.Run("unfollow without relation", func(t *testing.T) {
		svc, m := newFollowService(t)
		followerID := uuid.New()
		followeeID := uuid.New()

		m.followRepo.On("Exists", ctx, followerID, followeeID).Return(false, nil)

		err := svc.Unfollow(ctx, followerID, followeeID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		m.followRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFollowService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("returns counts", func(t *testing.T) {
		svc, m := newFollowService(t)
		runner := testRunner(t, "+5215511112222", "ana")

		m.runnerRepo.On("FindByID", ctx, runner.ID).Return(runner, nil)
		m.followRepo.On("CountFollowers", ctx, runner.ID).Return(int64(12), nil)
		m.followRepo.On("CountFollowing", ctx, runner.ID).Return(int64(7), nil)

		stats, err := svc.GetStats(ctx, runner.ID)

		require.NoError(t, err)
		assert.Equal(t, int64(12), stats.Followers)
		assert.Equal(t, int64(7), stats.Following)
	})

	t.Run("lists followers", func(t *testing.T) {
		svc, m := newFollowService(t)
		runnerID := uuid.New()
		filter := shared.Filter{Page: 1, PageSize: 20}

		follow, err := social.NewFollow(uuid.New(), runnerID)
		require.NoError(t, err)

		m.followRepo.On("FindFollowers", ctx, runnerID, filter).
			Return([]social.Follow{*follow}, int64(1), nil)

		result, err := svc.ListFollowers(ctx, runnerID, filter)

		require.NoError(t, err)
		require.Len(t, result.Follows, 1)
		assert.Equal(t, runnerID, result.Follows[0].FolloweeID)
	})
}
