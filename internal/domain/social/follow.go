package social

import (
	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// Follow records that one runner follows another. At most one row may exist
// per (follower, followee) pair, enforced by a uniqueness constraint.
type Follow struct {
	shared.BaseEntity
	FollowerID uuid.UUID
	FolloweeID uuid.UUID
}

// NewFollow creates a follow relation
func NewFollow(followerID, followeeID uuid.UUID) (*Follow, error) {
	if followerID == uuid.Nil || followeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RUNNER", "Runner ID cannot be empty")
	}
	if followerID == followeeID {
		return nil, shared.NewDomainError("INVALID_FOLLOW", "Runner cannot follow themselves")
	}

	return &Follow{
		BaseEntity: shared.NewBaseEntity(),
		FollowerID: followerID,
		FolloweeID: followeeID,
	}, nil
}
