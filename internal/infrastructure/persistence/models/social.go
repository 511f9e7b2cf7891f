package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/social"
)

// FollowModel is the persistence model for the Follow domain entity.
type FollowModel struct {
	BaseModel
	FollowerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair,priority:1"`
	FolloweeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair,priority:2;index:idx_follows_followee"`
}

// TableName returns the table name for GORM
func (FollowModel) TableName() string {
	return "follows"
}

// ToDomain converts the persistence model to a domain Follow entity.
func (m *FollowModel) ToDomain() *social.Follow {
	return &social.Follow{
		BaseEntity: m.BaseModel.ToDomain(),
		FollowerID: m.FollowerID,
		FolloweeID: m.FolloweeID,
	}
}

// FromDomain populates the persistence model from a domain Follow entity.
func (m *FollowModel) FromDomain(f *social.Follow) {
	m.FromDomainBaseEntity(f.BaseEntity)
	m.FollowerID = f.FollowerID
	m.FolloweeID = f.FolloweeID
}

// NotificationModel is the persistence model for the Notification domain entity.
type NotificationModel struct {
	BaseModel
	RunnerID uuid.UUID               `gorm:"type:uuid;not null;index:idx_notifications_runner"`
	Kind     social.NotificationKind `gorm:"type:varchar(30);not null"`
	Title    string                  `gorm:"type:varchar(200);not null"`
	Body     string                  `gorm:"type:text"`
	ReadAt   *time.Time              `gorm:"index:idx_notifications_read_at"`
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *social.Notification {
	return &social.Notification{
		BaseEntity: m.BaseModel.ToDomain(),
		RunnerID:   m.RunnerID,
		Kind:       m.Kind,
		Title:      m.Title,
		Body:       m.Body,
		ReadAt:     m.ReadAt,
	}
}

// FromDomain populates the persistence model from a domain Notification entity.
func (m *NotificationModel) FromDomain(n *social.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.RunnerID = n.RunnerID
	m.Kind = n.Kind
	m.Title = n.Title
	m.Body = n.Body
	m.ReadAt = n.ReadAt
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification entity.
func NotificationModelFromDomain(n *social.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}
