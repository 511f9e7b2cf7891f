package social

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFollow(t *testing.T) {
	t.Run("creates follow relation", func(t *testing.T) {
		followerID := uuid.New()
		followeeID := uuid.New()

		follow, err := NewFollow(followerID, followeeID)
		require.NoError(t, err)
		assert.Equal(t, followerID, follow.FollowerID)
		assert.Equal(t, followeeID, follow.FolloweeID)
	})

	t.Run("fails on self follow", func(t *testing.T) {
		id := uuid.New()
		_, err := NewFollow(id, id)
		assert.Error(t, err)
	})

	t.Run("fails with nil IDs", func(t *testing.T) {
		_, err := NewFollow(uuid.Nil, uuid.New())
		assert.Error(t, err)
	})
}

func TestNotification(t *testing.T) {
	runnerID := uuid.New()

	t.Run("creates unread notification", func(t *testing.T) {
		n, err := NewNotification(runnerID, NotificationPointsReceived, "You received zonas", "Ana sent you 100 points")
		require.NoError(t, err)

		assert.False(t, n.IsRead())
		assert.Nil(t, n.ReadAt)
	})

	t.Run("MarkRead is idempotent", func(t *testing.T) {
		n, err := NewNotification(runnerID, NotificationNewFollower, "New follower", "")
		require.NoError(t, err)

		n.MarkRead()
		require.True(t, n.IsRead())
		first := *n.ReadAt

		n.MarkRead()
		assert.Equal(t, first, *n.ReadAt)
	})

	t.Run("fails with invalid kind", func(t *testing.T) {
		_, err := NewNotification(runnerID, NotificationKind("BOGUS"), "title", "")
		assert.Error(t, err)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewNotification(runnerID, NotificationEventUpdate, "", "")
		assert.Error(t, err)
	})
}
