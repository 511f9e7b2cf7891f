package activity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zona2/backend/internal/domain/activity"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// MockActivityRepository is a mock implementation of activity.Repository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*activity.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*activity.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindByRunnerID(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]activity.Activity, int64, error) {
	args := m.Called(ctx, runnerID, filter)
	return args.Get(0).([]activity.Activity), args.Get(1).(int64), args.Error(2)
}

func (m *MockActivityRepository) Save(ctx context.Context, act *activity.Activity) error {
	args := m.Called(ctx, act)
	return args.Error(0)
}

func (m *MockActivityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRunnerRepository is a mock implementation of identity.RunnerRepository
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

func (m *MockRunnerRepository) FindByPhone(ctx context.Context, phone string) (*identity.Runner, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Runner), args.Error(1)
}

func (m *MockRunnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Runner, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Runner), args.Get(1).(int64), args.Error(2)
}

func (m *MockRunnerRepository) Save(ctx context.Context, runner *identity.Runner) error {
	args := m.Called(ctx, runner)
	return args.Error(0)
}

func (m *MockRunnerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockRunnerRepository) FindIDsByReferredBy(ctx context.Context, referredBy string) ([]uuid.UUID, error) {
	args := m.Called(ctx, referredBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRunnerRepository) CountByReferredBy(ctx context.Context, referredBy string) (int64, error) {
	args := m.Called(ctx, referredBy)
	return args.Get(0).(int64), args.Error(1)
}

type serviceMocks struct {
	activityRepo *MockActivityRepository
	runnerRepo   *MockRunnerRepository
}

func newService(t *testing.T) (*Service, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		activityRepo: new(MockActivityRepository),
		runnerRepo:   new(MockRunnerRepository),
	}
	svc := NewService(m.activityRepo, m.runnerRepo, storage.NewStubObjectStorage(), zap.NewNop())
	return svc, m
}

func testRunner(t *testing.T) *identity.Runner {
	t.Helper()
	runner, err := identity.NewRunner("+5215511112222", "ana", "$2a$12$hash")
	require.NoError(t, err)
	return runner
}

func testActivity(t *testing.T, ownerID uuid.UUID) *activity.Activity {
	t.Helper()
	act, err := activity.NewActivity(ownerID, "Morning run", activity.SportRun, 10000, 3000, time.Now())
	require.NoError(t, err)
	return act
}

func TestService_CreateActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("records activity for existing runner", func(t *testing.T) {
		svc, m := newService(t)
		runner := testRunner(t)
		m.runnerRepo.On("FindByID", ctx, runner.ID).Return(runner, nil)
		m.activityRepo.On("Save", ctx, mock.AnythingOfType("*activity.Activity")).Return(nil)

		dto, err := svc.CreateActivity(ctx, CreateActivityInput{
			RunnerID:       runner.ID,
			Title:          "Morning run",
			Sport:          "RUN",
			DistanceMeters: 10000,
			DurationSecs:   3000,
			StartedAt:      time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, "Morning run", dto.Title)
		assert.Equal(t, "RUN", dto.Sport)
		assert.InDelta(t, 300.0, dto.PaceSecsPerKm, 0.01)
	})

	t.Run("unknown runner fails with not found", func(t *testing.T) {
		svc, m := newService(t)
		runnerID := uuid.New()
		m.runnerRepo.On("FindByID", ctx, runnerID).Return(nil, shared.ErrNotFound)

		_, err := svc.CreateActivity(ctx, CreateActivityInput{RunnerID: runnerID, Title: "x", Sport: "RUN", DurationSecs: 60, StartedAt: time.Now()})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("invalid sport is rejected", func(t *testing.T) {
		svc, m := newService(t)
		runner := testRunner(t)
		m.runnerRepo.On("FindByID", ctx, runner.ID).Return(runner, nil)

		_, err := svc.CreateActivity(ctx, CreateActivityInput{
			RunnerID:     runner.ID,
			Title:        "x",
			Sport:        "SWIM",
			DurationSecs: 60,
			StartedAt:    time.Now(),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SPORT", domainErr.Code)
	})
}

func TestService_GetActivity(t *testing.T) {
	ctx := context.Background()
	svc, m := newService(t)
	act := testActivity(t, uuid.New())
	act.SetTrackKey("tracks/" + act.RunnerID.String() + "/" + act.ID.String() + ".gpx")

	m.activityRepo.On("FindByID", ctx, act.ID).Return(act, nil)

	dto, err := svc.GetActivity(ctx, act.ID)
	require.NoError(t, err)
	assert.Equal(t, act.ID, dto.ID)
	assert.NotEmpty(t, dto.TrackURL)
}

func TestService_UpdateActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can edit", func(t *testing.T) {
		svc, m := newService(t)
		act := testActivity(t, uuid.New())
		m.activityRepo.On("FindByID", ctx, act.ID).Return(act, nil)
		m.activityRepo.On("Save", ctx, act).Return(nil)

		dto, err := svc.UpdateActivity(ctx, act.ID, act.RunnerID, UpdateActivityInput{
			Title:          "Evening ride",
			Sport:          "RIDE",
			DistanceMeters: 20000,
			DurationSecs:   3600,
			StartedAt:      time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, "Evening ride", dto.Title)
		assert.Equal(t, "RIDE", dto.Sport)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc, m := newService(t)
		act := testActivity(t, uuid.New())
		m.activityRepo.On("FindByID", ctx, act.ID).Return(act, nil)

		_, err := svc.UpdateActivity(ctx, act.ID, uuid.New(), UpdateActivityInput{Title: "x", Sport: "RUN", DurationSecs: 60, StartedAt: time.Now()})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		m.activityRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_DeleteActivity(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can delete", func(t *testing.T) {
		svc, m := newService(t)
		act := testActivity(t, uuid.New())
		m.activityRepo.On("FindByID", ctx, act.ID).Return(act, nil)
		m.activityRepo.On("Delete", ctx, act.ID).Return(nil)

		require.NoError(t, svc.DeleteActivity(ctx, act.ID, act.RunnerID))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc, m := newService(t)
		act := testActivity(t, uuid.New())
		m.activityRepo.On("FindByID", ctx, act.ID).Return(act, nil)

		err := svc.DeleteActivity(ctx, act.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrForbidden)
		m.activityRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestService_TrackUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("request and confirm records the track key", func(t *testing.T) {
		svc, m := newService(t)
		act := testActivity(t, uuid.New())
		m.activityRepo.On("FindByID", ctx, act.ID).Return(act, nil)
		m.activityRepo.On("Save", ctx, act).Return(nil)

		upload, err := svc.RequestTrackUpload(ctx, act.ID, act.RunnerID, "")
		require.NoError(t, err)
		assert.Contains(t, upload.Key, act.ID.String())
		assert.NotEmpty(t, upload.UploadURL)

		dto, err := svc.ConfirmTrackUpload(ctx, act.ID, act.RunnerID)
		require.NoError(t, err)
		require.NotNil(t, act.TrackKey)
		assert.Equal(t, upload.Key, *act.TrackKey)
		assert.Equal(t, act.ID, dto.ID)
	})

	t.Run("non-owner cannot upload", func(t *testing.T) {
		svc, m := newService(t)
		act := testActivity(t, uuid.New())
		m.activityRepo.On("FindByID", ctx, act.ID).Return(act, nil)

		_, err := svc.RequestTrackUpload(ctx, act.ID, uuid.New(), "")
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}
