package identity

import (
	"regexp"

	"github.com/zona2/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var (
	passwordLetterPattern = regexp.MustCompile(`[a-zA-Z]`)
	passwordNumberPattern = regexp.MustCompile(`[0-9]`)
)

// CreateRunner creates a new runner from a plaintext password
func CreateRunner(phone, nickname, password string) (*Runner, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return NewRunner(phone, nickname, hash)
}

// VerifyPassword verifies if the provided password matches
func (r *Runner) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(r.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword sets a new password after verifying the current one
func (r *Runner) SetPassword(oldPassword, newPassword string) error {
	if !r.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return r.ChangePassword(hash)
}

// ResetPassword replaces the password without checking the current one. Used
// by the phone-code recovery flow where possession of the phone is the proof.
func (r *Runner) ResetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	return r.ChangePassword(hash)
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	hasLetter := passwordLetterPattern.MatchString(password)
	hasNumber := passwordNumberPattern.MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
