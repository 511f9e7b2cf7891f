package social

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/social"
)

// FollowStatsDTO summarizes a runner's follow graph
type FollowStatsDTO struct {
	RunnerID  uuid.UUID `json:"runner_id"`
	Followers int64     `json:"followers"`
	Following int64     `json:"following"`
}

// FollowDTO is the transport representation of a follow relation
type FollowDTO struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListFollowsResult carries a page of follow relations
type ListFollowsResult struct {
	Follows  []FollowDTO `json:"follows"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// NotificationDTO is the transport representation of a notification
type NotificationDTO struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ListNotificationsResult carries a page of notifications plus the unread count
type ListNotificationsResult struct {
	Notifications []NotificationDTO `json:"notifications"`
	Unread        int64             `json:"unread"`
	Total         int64             `json:"total"`
	Page          int               `json:"page"`
	PageSize      int               `json:"page_size"`
}

// ToFollowDTO converts a domain follow to its DTO
func ToFollowDTO(f *social.Follow) FollowDTO {
	return FollowDTO{
		FollowerID: f.FollowerID,
		FolloweeID: f.FolloweeID,
		CreatedAt:  f.CreatedAt,
	}
}

// ToNotificationDTO converts a domain notification to its DTO
func ToNotificationDTO(n *social.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Kind:      n.Kind.String(),
		Title:     n.Title,
		Body:      n.Body,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
