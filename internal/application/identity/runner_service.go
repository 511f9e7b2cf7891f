package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// ObjectStorageService generates presigned URLs for avatar objects
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, key, contentType string, expires time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, key string, expires time.Duration) (string, time.Time, error)
	ObjectExists(ctx context.Context, key string) (bool, error)
}

// Invalidation markers outlive the longest-lived refresh token
const sessionInvalidationTTL = 30 * 24 * time.Hour

// RunnerService handles runner profile operations
type RunnerService struct {
	runnerRepo identity.RunnerRepository
	codeStore  identity.VerificationCodeStore
	storage    ObjectStorageService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewRunnerService creates a new runner service
func NewRunnerService(
	runnerRepo identity.RunnerRepository,
	codeStore identity.VerificationCodeStore,
	storage ObjectStorageService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *RunnerService {
	return &RunnerService{
		runnerRepo: runnerRepo,
		codeStore:  codeStore,
		storage:    storage,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// GetProfile returns the runner's profile with a short-lived avatar URL
func (s *RunnerService) GetProfile(ctx context.Context, runnerID uuid.UUID) (*RunnerInfo, error) {
	runner, err := s.runnerRepo.FindByID(ctx, runnerID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	info := ToRunnerInfo(runner)
	if runner.AvatarKey != nil && s.storage != nil {
		url, _, err := s.storage.GenerateDownloadURL(ctx, *runner.AvatarKey, 0)
		if err != nil {
			s.logger.Warn("Failed to presign avatar URL",
				zap.Error(err), zap.String("runner_id", runner.ID.String()))
		} else {
			info.AvatarURL = url
		}
	}
	return &info, nil
}

// UpdateProfile updates the runner's profile fields
func (s *RunnerService) UpdateProfile(ctx context.Context, runnerID uuid.UUID, input UpdateProfileInput) (*RunnerInfo, error) {
	runner, err := s.runnerRepo.FindByID(ctx, runnerID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if err := runner.Rename(input.Nickname); err != nil {
		return nil, err
	}
	if err := s.runnerRepo.Save(ctx, runner); err != nil {
		return nil, err
	}

	info := ToRunnerInfo(runner)
	return &info, nil
}

// ChangePassword replaces the runner's password after verifying the old one,
// then invalidates all outstanding sessions.
func (s *RunnerService) ChangePassword(ctx context.Context, runnerID uuid.UUID, input ChangePasswordInput) error {
	runner, err := s.runnerRepo.FindByID(ctx, runnerID)
	if err != nil {
		return shared.ErrNotFound
	}

	if err := runner.SetPassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.runnerRepo.Save(ctx, runner); err != nil {
		return err
	}

	if err := s.blacklist.AddRunnerTokensToBlacklist(ctx, runner.ID.String(), sessionInvalidationTTL); err != nil {
		s.logger.Error("Failed to invalidate tokens after password change",
			zap.Error(err), zap.String("runner_id", runner.ID.String()))
	}

	s.logger.Info("Password changed", zap.String("runner_id", runner.ID.String()))
	return nil
}

// ResetPassword sets a new password for a runner who proved phone ownership
// with a one-time code.
func (s *RunnerService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	phone := strings.TrimSpace(input.Phone)

	ok, err := s.codeStore.Consume(ctx, phone, input.Code)
	if err != nil {
		s.logger.Error("Failed to consume verification code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify code")
	}
	if !ok {
		return shared.ErrCodeExpired
	}

	runner, err := s.runnerRepo.FindByPhone(ctx, phone)
	if err != nil {
		return shared.ErrNotFound
	}

	if err := runner.ResetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := s.runnerRepo.Save(ctx, runner); err != nil {
		return err
	}

	if err := s.blacklist.AddRunnerTokensToBlacklist(ctx, runner.ID.String(), sessionInvalidationTTL); err != nil {
		s.logger.Error("Failed to invalidate tokens after password reset",
			zap.Error(err), zap.String("runner_id", runner.ID.String()))
	}

	s.logger.Info("Password reset", zap.String("runner_id", runner.ID.String()))
	return nil
}

// RequestAvatarUpload returns a presigned URL the client PUTs the avatar to
func (s *RunnerService) RequestAvatarUpload(ctx context.Context, runnerID uuid.UUID, contentType string) (*AvatarUploadResult, error) {
	if _, err := s.runnerRepo.FindByID(ctx, runnerID); err != nil {
		return nil, shared.ErrNotFound
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := avatarKey(runnerID)
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, 0)
	if err != nil {
		s.logger.Error("Failed to presign avatar upload", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate upload URL")
	}

	return &AvatarUploadResult{
		UploadURL: url,
		Key:       key,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmAvatarUpload records the avatar key once the object exists
func (s *RunnerService) ConfirmAvatarUpload(ctx context.Context, runnerID uuid.UUID) (*RunnerInfo, error) {
	runner, err := s.runnerRepo.FindByID(ctx, runnerID)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	key := avatarKey(runnerID)
	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		s.logger.Error("Failed to check avatar object", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify upload")
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "Avatar was not uploaded")
	}

	runner.SetAvatarKey(key)
	if err := s.runnerRepo.Save(ctx, runner); err != nil {
		return nil, err
	}

	info := ToRunnerInfo(runner)
	return &info, nil
}

// Deactivate soft-deletes the runner and invalidates their sessions. Runner
// rows are never removed, ledger entries reference them forever.
func (s *RunnerService) Deactivate(ctx context.Context, runnerID uuid.UUID) error {
	runner, err := s.runnerRepo.FindByID(ctx, runnerID)
	if err != nil {
		return shared.ErrNotFound
	}

	runner.Deactivate()
	if err := s.runnerRepo.Save(ctx, runner); err != nil {
		return err
	}

	if err := s.blacklist.AddRunnerTokensToBlacklist(ctx, runner.ID.String(), sessionInvalidationTTL); err != nil {
		s.logger.Error("Failed to invalidate tokens after deactivation",
			zap.Error(err), zap.String("runner_id", runner.ID.String()))
	}

	s.logger.Info("Runner deactivated", zap.String("runner_id", runner.ID.String()))
	return nil
}

// SearchRunners returns a page of runners matching the filter
func (s *RunnerService) SearchRunners(ctx context.Context, filter shared.Filter) ([]RunnerInfo, int64, error) {
	runners, total, err := s.runnerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]RunnerInfo, len(runners))
	for i := range runners {
		infos[i] = ToRunnerInfo(&runners[i])
	}
	return infos, total, nil
}

func avatarKey(runnerID uuid.UUID) string {
	return fmt.Sprintf("avatars/%s", runnerID.String())
}
