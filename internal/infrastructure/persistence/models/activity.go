package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/activity"
)

// ActivityModel is the persistence model for the Activity domain entity.
type ActivityModel struct {
	BaseModel
	RunnerID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_activities_runner"`
	Title          string         `gorm:"type:varchar(200);not null"`
	Sport          activity.Sport `gorm:"type:varchar(10);not null"`
	DistanceMeters float64        `gorm:"not null;default:0"`
	DurationSecs   int64          `gorm:"not null"`
	TrackKey       *string        `gorm:"type:varchar(500)"`
	StartedAt      time.Time      `gorm:"not null;index:idx_activities_started_at"`
}

// TableName returns the table name for GORM
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts the persistence model to a domain Activity entity.
func (m *ActivityModel) ToDomain() *activity.Activity {
	return &activity.Activity{
		BaseEntity:     m.BaseModel.ToDomain(),
		RunnerID:       m.RunnerID,
		Title:          m.Title,
		Sport:          m.Sport,
		DistanceMeters: m.DistanceMeters,
		DurationSecs:   m.DurationSecs,
		TrackKey:       m.TrackKey,
		StartedAt:      m.StartedAt,
	}
}

// FromDomain populates the persistence model from a domain Activity entity.
func (m *ActivityModel) FromDomain(a *activity.Activity) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.RunnerID = a.RunnerID
	m.Title = a.Title
	m.Sport = a.Sport
	m.DistanceMeters = a.DistanceMeters
	m.DurationSecs = a.DurationSecs
	m.TrackKey = a.TrackKey
	m.StartedAt = a.StartedAt
}

// ActivityModelFromDomain creates a new persistence model from a domain Activity entity.
func ActivityModelFromDomain(a *activity.Activity) *ActivityModel {
	m := &ActivityModel{}
	m.FromDomain(a)
	return m
}
