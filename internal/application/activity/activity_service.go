package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/activity"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectStorageService generates presigned URLs for GPS track objects
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, key, contentType string, expires time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, key string, expires time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, key string) error
	ObjectExists(ctx context.Context, key string) (bool, error)
}

// Service handles activity record operations
type Service struct {
	activityRepo activity.Repository
	runnerRepo   identity.RunnerRepository
	storage      ObjectStorageService
	logger       *zap.Logger
}

// NewService creates a new activity service
func NewService(
	activityRepo activity.Repository,
	runnerRepo identity.RunnerRepository,
	storage ObjectStorageService,
	logger *zap.Logger,
) *Service {
	return &Service{
		activityRepo: activityRepo,
		runnerRepo:   runnerRepo,
		storage:      storage,
		logger:       logger,
	}
}

// CreateActivity records a new activity for a runner
func (s *Service) CreateActivity(ctx context.Context, input CreateActivityInput) (*ActivityDTO, error) {
	if _, err := s.runnerRepo.FindByID(ctx, input.RunnerID); err != nil {
		return nil, shared.ErrNotFound
	}

	act, err := activity.NewActivity(
		input.RunnerID,
		input.Title,
		activity.Sport(input.Sport),
		input.DistanceMeters,
		input.DurationSecs,
		input.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := s.activityRepo.Save(ctx, act); err != nil {
		return nil, err
	}

	s.logger.Info("Activity recorded",
		zap.String("activity_id", act.ID.String()),
		zap.String("runner_id", act.RunnerID.String()),
		zap.String("sport", act.Sport.String()))

	dto := ToActivityDTO(act)
	return &dto, nil
}

// GetActivity returns an activity with a short-lived track download URL
func (s *Service) GetActivity(ctx context.Context, id uuid.UUID) (*ActivityDTO, error) {
	act, err := s.activityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := ToActivityDTO(act)
	if act.TrackKey != nil && s.storage != nil {
		url, _, err := s.storage.GenerateDownloadURL(ctx, *act.TrackKey, 0)
		if err != nil {
			s.logger.Warn("Failed to presign track URL",
				zap.Error(err), zap.String("activity_id", act.ID.String()))
		} else {
			dto.TrackURL = url
		}
	}
	return &dto, nil
}

// ListByRunner returns a page of the runner's activities, newest first
func (s *Service) ListByRunner(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) (*ListActivitiesResult, error) {
	if _, err := s.runnerRepo.FindByID(ctx, runnerID); err != nil {
		return nil, shared.ErrNotFound
	}

	acts, total, err := s.activityRepo.FindByRunnerID(ctx, runnerID, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]ActivityDTO, len(acts))
	for i := range acts {
		dtos[i] = ToActivityDTO(&acts[i])
	}

	return &ListActivitiesResult{
		Activities: dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

// UpdateActivity edits an activity. Only the owner may edit.
func (s *Service) UpdateActivity(ctx context.Context, id, requesterID uuid.UUID, input UpdateActivityInput) (*ActivityDTO, error) {
	act, err := s.activityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if act.RunnerID != requesterID {
		return nil, shared.ErrForbidden
	}

	if err := act.Update(input.Title, activity.Sport(input.Sport), input.DistanceMeters, input.DurationSecs, input.StartedAt); err != nil {
		return nil, err
	}
	if err := s.activityRepo.Save(ctx, act); err != nil {
		return nil, err
	}

	dto := ToActivityDTO(act)
	return &dto, nil
}

// DeleteActivity removes an activity and its stored track. Only the owner
// may delete.
func (s *Service) DeleteActivity(ctx context.Context, id, requesterID uuid.UUID) error {
	act, err := s.activityRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if act.RunnerID != requesterID {
		return shared.ErrForbidden
	}

	if err := s.activityRepo.Delete(ctx, id); err != nil {
		return err
	}

	if act.TrackKey != nil && s.storage != nil {
		if err := s.storage.DeleteObject(ctx, *act.TrackKey); err != nil {
			s.logger.Warn("Failed to delete track object",
				zap.Error(err), zap.String("key", *act.TrackKey))
		}
	}

	s.logger.Info("Activity deleted",
		zap.String("activity_id", id.String()),
		zap.String("runner_id", requesterID.String()))
	return nil
}

// RequestTrackUpload returns a presigned URL the client PUTs the GPS track to.
// Only the owner may upload a track.
func (s *Service) RequestTrackUpload(ctx context.Context, id, requesterID uuid.UUID, contentType string) (*TrackUploadResult, error) {
	act, err := s.activityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if act.RunnerID != requesterID {
		return nil, shared.ErrForbidden
	}
	if contentType == "" {
		contentType = "application/gpx+xml"
	}

	key := trackKey(act.RunnerID, act.ID)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, 0)
	if err != nil {
		s.logger.Error("Failed to presign track upload", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate upload URL")
	}

	return &TrackUploadResult{
		UploadURL: url,
		Key:       key,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmTrackUpload records the track key once the object exists
func (s *Service) ConfirmTrackUpload(ctx context.Context, id, requesterID uuid.UUID) (*ActivityDTO, error) {
	act, err := s.activityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if act.RunnerID != requesterID {
		return nil, shared.ErrForbidden
	}

	key := trackKey(act.RunnerID, act.ID)
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		s.logger.Error("Failed to check track object", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "Track was not uploaded")
	}

	act.SetTrackKey(key)
	if err := s.activityRepo.Save(ctx, act); err != nil {
		return nil, err
	}

	dto := ToActivityDTO(act)
	return &dto, nil
}

func trackKey(runnerID, activityID uuid.UUID) string {
	return fmt.Sprintf("tracks/%s/%s.gpx", runnerID.String(), activityID.String())
}
