package social

import (
	"context"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// FollowRepository provides access to follow relations
type FollowRepository interface {
	// Save inserts the relation. A duplicate (follower, followee) pair fails
	// with shared.ErrAlreadyExists.
	Save(ctx context.Context, follow *Follow) error
	Delete(ctx context.Context, followerID, followeeID uuid.UUID) error
	Exists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	FindFollowers(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]Follow, int64, error)
	FindFollowing(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]Follow, int64, error)
	CountFollowers(ctx context.Context, runnerID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, runnerID uuid.UUID) (int64, error)
}

// NotificationRepository provides access to runner notifications
type NotificationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	FindByRunnerID(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) ([]Notification, int64, error)
	CountUnread(ctx context.Context, runnerID uuid.UUID) (int64, error)
	Save(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
}
