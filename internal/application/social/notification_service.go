package social

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/domain/social"
	"github.com/zona2/backend/internal/infrastructure/push"
	"go.uber.org/zap"
)

// Pusher delivers a message to a runner's live connections, if any
type Pusher interface {
	Publish(runnerID uuid.UUID, msg push.Message)
}

// NotificationService persists notifications and pushes them to connected
// runners. The persisted row is the durable record, push delivery is best
// effort. It is the single producer used by the points, event and follow
// flows.
type NotificationService struct {
	notificationRepo social.NotificationRepository
	pusher           Pusher
	logger           *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo social.NotificationRepository, pusher Pusher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		pusher:           pusher,
		logger:           logger,
	}
}

// PointsReceived notifies a runner about zonas received from a peer
func (s *NotificationService) PointsReceived(ctx context.Context, receiverID uuid.UUID, counterpartyNickname string, pts int64) {
	s.deliver(ctx, receiverID, social.NotificationPointsReceived,
		"You received zonas",
		fmt.Sprintf("%s sent you %d zonas", counterpartyNickname, pts))
}

// ReferralBonusPaid notifies a referrer about a paid referral bonus
func (s *NotificationService) ReferralBonusPaid(ctx context.Context, referrerID uuid.UUID, referredNickname string, pts int64) {
	s.deliver(ctx, referrerID, social.NotificationReferralBonus,
		"Referral bonus",
		fmt.Sprintf("%s joined with your code, you earned %d zonas", referredNickname, pts))
}

// RegistrationConfirmed notifies a runner that their event spot is confirmed
func (s *NotificationService) RegistrationConfirmed(ctx context.Context, runnerID uuid.UUID, eventTitle string) {
	s.deliver(ctx, runnerID, social.NotificationEventUpdate,
		"Registration confirmed",
		fmt.Sprintf("Your spot at %s is confirmed", eventTitle))
}

// EventUpdate notifies a registered runner about an event change
func (s *NotificationService) EventUpdate(ctx context.Context, runnerID uuid.UUID, eventTitle, body string) {
	s.deliver(ctx, runnerID, social.NotificationEventUpdate, eventTitle, body)
}

// NewFollower notifies a runner about a new follower
func (s *NotificationService) NewFollower(ctx context.Context, runnerID uuid.UUID, followerNickname string) {
	s.deliver(ctx, runnerID, social.NotificationNewFollower,
		"New follower",
		fmt.Sprintf("%s started following you", followerNickname))
}

func (s *NotificationService) deliver(ctx context.Context, runnerID uuid.UUID, kind social.NotificationKind, title, body string) {
	n, err := social.NewNotification(runnerID, kind, title, body)
	if err != nil {
		s.logger.Warn("Failed to build notification",
			zap.String("runner_id", runnerID.String()),
			zap.String("kind", kind.String()),
			zap.Error(err))
		return
	}

	if err := s.notificationRepo.Save(ctx, n); err != nil {
		s.logger.Warn("Failed to persist notification",
			zap.String("runner_id", runnerID.String()),
			zap.String("kind", kind.String()),
			zap.Error(err))
		return
	}

	s.pusher.Publish(runnerID, push.Message{
		Kind:  kind.String(),
		Title: title,
		Body:  body,
		At:    n.CreatedAt,
	})
}

// ListNotifications returns a page of a runner's notifications with the
// unread count
func (s *NotificationService) ListNotifications(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) (*ListNotificationsResult, error) {
	notifications, total, err := s.notificationRepo.FindByRunnerID(ctx, runnerID, filter)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, runnerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]NotificationDTO, 0, len(notifications))
	for i := range notifications {
		dtos = append(dtos, ToNotificationDTO(&notifications[i]))
	}

	return &ListNotificationsResult{
		Notifications: dtos,
		Unread:        unread,
		Total:         total,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	}, nil
}

// CountUnread returns the number of unread notifications for a runner
func (s *NotificationService) CountUnread(ctx context.Context, runnerID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, runnerID)
}

// MarkRead marks a notification as read. Only the owner may mark it.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, runnerID uuid.UUID) error {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.RunnerID != runnerID {
		return shared.ErrForbidden
	}
	if n.IsRead() {
		return nil
	}

	n.MarkRead()
	return s.notificationRepo.Save(ctx, n)
}

// DeleteNotification removes a notification. Only the owner may delete it.
func (s *NotificationService) DeleteNotification(ctx context.Context, notificationID, runnerID uuid.UUID) error {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.RunnerID != runnerID {
		return shared.ErrForbidden
	}

	return s.notificationRepo.Delete(ctx, notificationID)
}
