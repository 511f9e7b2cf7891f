package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/shared"
)

// Activity represents a tracked workout (run, ride, walk) owned by a runner.
// The points ledger consults it only to resolve the owner of an activity.
type Activity struct {
	shared.BaseEntity
	RunnerID       uuid.UUID
	Title          string
	Sport          Sport
	DistanceMeters float64
	DurationSecs   int64
	TrackKey       *string // Object storage key of the recorded GPS track
	StartedAt      time.Time
}

// Sport represents the kind of tracked activity
type Sport string

const (
	SportRun  Sport = "RUN"
	SportRide Sport = "RIDE"
	SportWalk Sport = "WALK"
)

// IsValid returns true if the sport is valid
func (s Sport) IsValid() bool {
	switch s {
	case SportRun, SportRide, SportWalk:
		return true
	}
	return false
}

// String returns the string representation of Sport
func (s Sport) String() string {
	return string(s)
}

// NewActivity creates a new activity
func NewActivity(runnerID uuid.UUID, title string, sport Sport, distanceMeters float64, durationSecs int64, startedAt time.Time) (*Activity, error) {
	if runnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RUNNER", "Runner ID cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if !sport.IsValid() {
		return nil, shared.NewDomainError("INVALID_SPORT", "Invalid sport")
	}
	if distanceMeters < 0 {
		return nil, shared.NewDomainError("INVALID_DISTANCE", "Distance cannot be negative")
	}
	if durationSecs <= 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration must be positive")
	}
	if startedAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_START", "Start time cannot be zero")
	}

	return &Activity{
		BaseEntity:     shared.NewBaseEntity(),
		RunnerID:       runnerID,
		Title:          title,
		Sport:          sport,
		DistanceMeters: distanceMeters,
		DurationSecs:   durationSecs,
		StartedAt:      startedAt,
	}, nil
}

// Update replaces the activity's recorded details
func (a *Activity) Update(title string, sport Sport, distanceMeters float64, durationSecs int64, startedAt time.Time) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if !sport.IsValid() {
		return shared.NewDomainError("INVALID_SPORT", "Invalid sport")
	}
	if distanceMeters < 0 {
		return shared.NewDomainError("INVALID_DISTANCE", "Distance cannot be negative")
	}
	if durationSecs <= 0 {
		return shared.NewDomainError("INVALID_DURATION", "Duration must be positive")
	}
	if startedAt.IsZero() {
		return shared.NewDomainError("INVALID_START", "Start time cannot be zero")
	}

	a.Title = title
	a.Sport = sport
	a.DistanceMeters = distanceMeters
	a.DurationSecs = durationSecs
	a.StartedAt = startedAt
	a.Touch()
	return nil
}

// SetTrackKey records the storage key of the uploaded GPS track
func (a *Activity) SetTrackKey(key string) {
	a.TrackKey = &key
	a.Touch()
}

// AveragePaceSecsPerKm returns the average pace, or 0 for zero distance
func (a *Activity) AveragePaceSecsPerKm() float64 {
	if a.DistanceMeters <= 0 {
		return 0
	}
	return float64(a.DurationSecs) / (a.DistanceMeters / 1000)
}
