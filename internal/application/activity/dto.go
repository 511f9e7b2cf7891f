package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/activity"
)

// CreateActivityInput contains data for recording a new activity
type CreateActivityInput struct {
	RunnerID       uuid.UUID
	Title          string
	Sport          string
	DistanceMeters float64
	DurationSecs   int64
	StartedAt      time.Time
}

// UpdateActivityInput contains data for editing a recorded activity
type UpdateActivityInput struct {
	Title          string
	Sport          string
	DistanceMeters float64
	DurationSecs   int64
	StartedAt      time.Time
}

// ActivityDTO is the transport representation of an activity
type ActivityDTO struct {
	ID             uuid.UUID `json:"id"`
	RunnerID       uuid.UUID `json:"runner_id"`
	Title          string    `json:"title"`
	Sport          string    `json:"sport"`
	DistanceMeters float64   `json:"distance_meters"`
	DurationSecs   int64     `json:"duration_secs"`
	PaceSecsPerKm  float64   `json:"pace_secs_per_km"`
	TrackURL       string    `json:"track_url,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListActivitiesResult carries a page of activities
type ListActivitiesResult struct {
	Activities []ActivityDTO `json:"activities"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
}

// TrackUploadResult carries a presigned upload URL for a GPS track
type TrackUploadResult struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToActivityDTO converts a domain activity to its DTO. The track URL is
// filled in by the caller when storage is available.
func ToActivityDTO(a *activity.Activity) ActivityDTO {
	return ActivityDTO{
		ID:             a.ID,
		RunnerID:       a.RunnerID,
		Title:          a.Title,
		Sport:          a.Sport.String(),
		DistanceMeters: a.DistanceMeters,
		DurationSecs:   a.DurationSecs,
		PaceSecsPerKm:  a.AveragePaceSecsPerKm(),
		StartedAt:      a.StartedAt,
		CreatedAt:      a.CreatedAt,
	}
}
