package handler

// RequestCodeRequest asks for an SMS verification code
type RequestCodeRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
}

// RegisterRequest creates a new runner account
type RegisterRequest struct {
	Phone        string `json:"phone" binding:"required,e164"`
	Nickname     string `json:"nickname" binding:"required,min=2,max=30"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
	Code         string `json:"code" binding:"required,len=6,numeric"`
	ReferralCode string `json:"referral_code,omitempty"`
}

// LoginRequest authenticates with password or a fresh SMS code
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required,e164"`
	Password string `json:"password,omitempty"`
	Code     string `json:"code,omitempty" binding:"omitempty,len=6,numeric"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest changes the password of the authenticated runner
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ResetPasswordRequest resets a forgotten password with an SMS code
type ResetPasswordRequest struct {
	Phone       string `json:"phone" binding:"required,e164"`
	Code        string `json:"code" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateProfileRequest edits the runner's profile
type UpdateProfileRequest struct {
	Nickname string `json:"nickname" binding:"required,min=2,max=30"`
}

// AvatarUploadRequest asks for a presigned avatar upload URL
type AvatarUploadRequest struct {
	ContentType string `json:"content_type,omitempty"`
}
