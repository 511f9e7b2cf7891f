package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/identity"
	pointsapp "github.com/zona2/backend/internal/application/points"
)

// RequestCodeInput contains data for requesting a login/registration code
type RequestCodeInput struct {
	Phone string
}

// RegisterInput contains data for registering a new runner
type RegisterInput struct {
	Phone        string
	Nickname     string
	Password     string
	Code         string // One-time SMS verification code
	ReferralCode string // Optional referrer reference
}

// RegisterResult is returned after successful registration
type RegisterResult struct {
	Runner   RunnerInfo                      `json:"runner"`
	Tokens   TokenInfo                       `json:"tokens"`
	Referral *pointsapp.ReferralBonusResult  `json:"referral,omitempty"`
}

// LoginInput contains credentials for login. Either Password or Code must be
// set; Code wins when both are present.
type LoginInput struct {
	Phone    string
	Password string
	Code     string
}

// LoginResult is returned after successful authentication
type LoginResult struct {
	Runner RunnerInfo `json:"runner"`
	Tokens TokenInfo  `json:"tokens"`
}

// RefreshTokenInput contains the refresh token
type RefreshTokenInput struct {
	RefreshToken string
}

// TokenInfo carries an issued token pair
type TokenInfo struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// RunnerInfo is the transport representation of a runner
type RunnerInfo struct {
	ID             uuid.UUID `json:"id"`
	Phone          string    `json:"phone"`
	Nickname       string    `json:"nickname"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	LifetimePoints int64     `json:"lifetime_points"`
	MonthPoints    int64     `json:"month_points"`
	Balance        int64     `json:"balance"`
	CreatedAt      time.Time `json:"created_at"`
}

// UpdateProfileInput contains profile fields a runner may change
type UpdateProfileInput struct {
	Nickname string
}

// ChangePasswordInput contains data for an authenticated password change
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// ResetPasswordInput contains data for a code-verified password reset
type ResetPasswordInput struct {
	Phone       string
	Code        string
	NewPassword string
}

// AvatarUploadResult carries a presigned upload URL for an avatar
type AvatarUploadResult struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToRunnerInfo converts a domain runner to its DTO. The avatar URL is filled
// in by the caller when storage is available.
func ToRunnerInfo(r *identity.Runner) RunnerInfo {
	return RunnerInfo{
		ID:             r.ID,
		Phone:          r.Phone,
		Nickname:       r.Nickname,
		LifetimePoints: r.LifetimePoints,
		MonthPoints:    r.MonthPoints,
		Balance:        r.Balance,
		CreatedAt:      r.CreatedAt,
	}
}
