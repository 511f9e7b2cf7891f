package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/domain/social"
	"go.uber.org/zap"
)

// runnerFinder is the slice of the runner repository this package needs
type runnerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*identity.Runner, error)
}

// FollowService handles the follow graph between runners
type FollowService struct {
	followRepo social.FollowRepository
	runnerRepo runnerFinder
	notifier   *NotificationService
	logger     *zap.Logger
}

// NewFollowService creates a new follow service
func NewFollowService(followRepo social.FollowRepository, runnerRepo runnerFinder, notifier *NotificationService, logger *zap.Logger) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		runnerRepo: runnerRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// Follow makes one runner follow another and notifies the followee
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	follower, err := s.runnerRepo.FindByID(ctx, followerID)
	if err != nil {
		return err
	}
	if _, err := s.runnerRepo.FindByID(ctx, followeeID); err != nil {
		return err
	}

	follow, err := social.NewFollow(followerID, followeeID)
	if err != nil {
		return err
	}

	if err := s.followRepo.Save(ctx, follow); err != nil {
		return err
	}

	s.logger.Info("Runner followed",
		zap.String("follower_id", followerID.String()),
		zap.String("followee_id", followeeID.String()))

	s.notifier.NewFollower(ctx, followeeID, follower.Nickname)
	return nil
}

// Unfollow removes a follow relation
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	exists, err := s.followRepo.Exists(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound
	}

	return s.followRepo.Delete(ctx, followerID, followeeID)
}

// IsFollowing reports whether follower follows followee
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, followeeID)
}

// GetStats returns follower and following counts for a runner
func (s *FollowService) GetStats(ctx context.Context, runnerID uuid.UUID) (*FollowStatsDTO, error) {
	if _, err := s.runnerRepo.FindByID(ctx, runnerID); err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, runnerID)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	following, err := s.followRepo.CountFollowing(ctx, runnerID)
	if err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}

	return &FollowStatsDTO{
		RunnerID:  runnerID,
		Followers: followers,
		Following: following,
	}, nil
}

// ListFollowers returns a page of runners following the given runner
func (s *FollowService) ListFollowers(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) (*ListFollowsResult, error) {
	follows, total, err := s.followRepo.FindFollowers(ctx, runnerID, filter)
	if err != nil {
		return nil, err
	}
	return toFollowList(follows, total, filter), nil
}

// ListFollowing returns a page of runners the given runner follows
func (s *FollowService) ListFollowing(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) (*ListFollowsResult, error) {
	follows, total, err := s.followRepo.FindFollowing(ctx, runnerID, filter)
	if err != nil {
		return nil, err
	}
	return toFollowList(follows, total, filter), nil
}

func toFollowList(follows []social.Follow, total int64, filter shared.Filter) *ListFollowsResult {
	dtos := make([]FollowDTO, 0, len(follows))
	for i := range follows {
		dtos = append(dtos, ToFollowDTO(&follows[i]))
	}
	return &ListFollowsResult{
		Follows:  dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
}
