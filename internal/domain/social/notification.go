package social

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// NotificationKind represents the kind of notification sent to a runner
type NotificationKind string

const (
	// NotificationPointsReceived is sent when a runner receives points
	NotificationPointsReceived NotificationKind = "POINTS_RECEIVED"
	// NotificationNewFollower is sent when another runner starts following
	NotificationNewFollower NotificationKind = "NEW_FOLLOWER"
	// NotificationEventUpdate is sent for changes on a registered event
	NotificationEventUpdate NotificationKind = "EVENT_UPDATE"
	// NotificationReferralBonus is sent when a referral bonus is paid
	NotificationReferralBonus NotificationKind = "REFERRAL_BONUS"
)

// IsValid returns true if the notification kind is valid
func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationPointsReceived, NotificationNewFollower,
		NotificationEventUpdate, NotificationReferralBonus:
		return true
	}
	return false
}

// String returns the string representation of NotificationKind
func (k NotificationKind) String() string {
	return string(k)
}

// Notification represents a message delivered to a runner, persisted for the
// inbox and pushed over the live channel when the runner is connected.
type Notification struct {
	shared.BaseEntity
	RunnerID uuid.UUID
	Kind     NotificationKind
	Title    string
	Body     string
	ReadAt   *time.Time
}

// NewNotification creates a new unread notification
func NewNotification(runnerID uuid.UUID, kind NotificationKind, title, body string) (*Notification, error) {
	if runnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RUNNER", "Runner ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Invalid notification kind")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		RunnerID:   runnerID,
		Kind:       kind,
		Title:      title,
		Body:       body,
	}, nil
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	if n.ReadAt != nil {
		return
	}
	now := time.Now()
	n.ReadAt = &now
	n.Touch()
}

// IsRead returns true if the notification was read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
