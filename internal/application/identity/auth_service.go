package identity

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	pointsapp "github.com/zona2/backend/internal/application/points"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/auth"
	"github.com/zona2/backend/internal/infrastructure/sms"
	"go.uber.org/zap"
)

// ReferralService runs the registration-time referral bonus flow
type ReferralService interface {
	ReferralRegistrationBonus(ctx context.Context, newRunnerID uuid.UUID, referrerCodeOrID string) (*pointsapp.ReferralBonusResult, error)
}

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	runnerRepo identity.RunnerRepository
	codeStore  identity.VerificationCodeStore
	smsSender  sms.Sender
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	referrals  ReferralService
	codeTTL    time.Duration
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	runnerRepo identity.RunnerRepository,
	codeStore identity.VerificationCodeStore,
	smsSender sms.Sender,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	referrals ReferralService,
	codeTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	if codeTTL == 0 {
		codeTTL = 5 * time.Minute
	}
	return &AuthService{
		runnerRepo: runnerRepo,
		codeStore:  codeStore,
		smsSender:  smsSender,
		jwtService: jwtService,
		blacklist:  blacklist,
		referrals:  referrals,
		codeTTL:    codeTTL,
		logger:     logger,
	}
}

// RequestCode generates a one-time verification code for the phone number and
// delivers it over SMS. A new request replaces any previous code.
func (s *AuthService) RequestCode(ctx context.Context, input RequestCodeInput) error {
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("Failed to generate verification code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to generate verification code")
	}

	if err := s.codeStore.Put(ctx, phone, code, s.codeTTL); err != nil {
		s.logger.Error("Failed to store verification code", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to store verification code")
	}

	if err := s.smsSender.Send(ctx, phone, code); err != nil {
		s.logger.Error("Failed to send verification code", zap.Error(err), zap.String("phone", phone))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to send verification code")
	}

	s.logger.Info("Verification code sent", zap.String("phone", phone))
	return nil
}

// Register creates a new runner after verifying the SMS code, then runs the
// referral flow in the same request and issues a token pair.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	phone := strings.TrimSpace(input.Phone)

	ok, err := s.codeStore.Consume(ctx, phone, input.Code)
	if err != nil {
		s.logger.Error("Failed to consume verification code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify code")
	}
	if !ok {
		return nil, shared.ErrCodeExpired
	}

	exists, err := s.runnerRepo.ExistsByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Phone number is already registered")
	}

	runner, err := identity.CreateRunner(phone, input.Nickname, input.Password)
	if err != nil {
		return nil, err
	}
	if err := s.runnerRepo.Save(ctx, runner); err != nil {
		return nil, err
	}

	referral, err := s.referrals.ReferralRegistrationBonus(ctx, runner.ID, input.ReferralCode)
	if err != nil {
		// The runner exists, the bonus did not apply. Surface the failure,
		// registration is one request in the observed flow.
		s.logger.Error("Referral flow failed during registration",
			zap.Error(err), zap.String("runner_id", runner.ID.String()))
		return nil, err
	}

	// Re-read to pick up counters the referral flow may have credited
	runner, err = s.runnerRepo.FindByID(ctx, runner.ID)
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(runner)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Runner registered",
		zap.String("runner_id", runner.ID.String()),
		zap.String("phone", runner.Phone))

	return &RegisterResult{
		Runner:   ToRunnerInfo(runner),
		Tokens:   *tokens,
		Referral: referral,
	}, nil
}

// Login authenticates a runner with either a one-time code or a password
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	phone := strings.TrimSpace(input.Phone)

	if input.Code != "" {
		ok, err := s.codeStore.Consume(ctx, phone, input.Code)
		if err != nil {
			s.logger.Error("Failed to consume verification code", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify code")
		}
		if !ok {
			return nil, shared.ErrCodeExpired
		}
	}

	runner, err := s.runnerRepo.FindByPhone(ctx, phone)
	if err != nil {
		s.logger.Warn("Login attempt for unknown phone", zap.String("phone", phone))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid phone or credentials")
	}

	if !runner.Active {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if input.Code == "" {
		if !runner.VerifyPassword(input.Password) {
			s.logger.Warn("Invalid password attempt", zap.String("runner_id", runner.ID.String()))
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid phone or credentials")
		}
	}

	tokens, err := s.issueTokens(runner)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Runner logged in", zap.String("runner_id", runner.ID.String()))

	return &LoginResult{
		Runner: ToRunnerInfo(runner),
		Tokens: *tokens,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*TokenInfo, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		case auth.ErrMaxRefreshExceeded:
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token blacklist", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate token")
	}
	if blacklisted {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
	}

	invalidated, err := s.blacklist.IsRunnerTokenInvalidated(ctx, claims.RunnerID, claims.GetIssuedAtTime())
	if err != nil {
		s.logger.Error("Failed to check runner token invalidation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate token")
	}
	if invalidated {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Session has been invalidated")
	}

	runnerID, err := claims.GetRunnerUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid runner ID in token")
	}

	runner, err := s.runnerRepo.FindByID(ctx, runnerID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Runner not found")
	}
	if !runner.Active {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Failed to refresh token")
	}

	info := toTokenInfo(pair)
	return &info, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		// Already invalid, nothing to revoke
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}

	s.logger.Info("Runner logged out", zap.String("runner_id", claims.RunnerID))
	return nil
}

// LogoutAll invalidates every outstanding token of the runner
func (s *AuthService) LogoutAll(ctx context.Context, runnerID uuid.UUID) error {
	ttl := s.jwtService.GetRefreshTokenExpiration()
	if err := s.blacklist.AddRunnerTokensToBlacklist(ctx, runnerID.String(), ttl); err != nil {
		s.logger.Error("Failed to invalidate runner tokens", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
	}
	return nil
}

func (s *AuthService) issueTokens(runner *identity.Runner) (*TokenInfo, error) {
	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		RunnerID: runner.ID,
		Phone:    runner.Phone,
		Nickname: runner.Nickname,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}
	info := toTokenInfo(pair)
	return &info, nil
}

func toTokenInfo(pair *auth.TokenPair) TokenInfo {
	return TokenInfo{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

// generateCode returns a 6-digit numeric verification code
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
