package identity

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/zona2/backend/internal/domain/shared"
)

// Prefix for synthetic referral codes assigned when a registration carries a
// referral code that does not resolve to any runner.
const syntheticReferralPrefix = "zr_"

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Runner represents a registered user of the platform. Point counters are
// denormalized running totals; they are mutated only by the points ledger,
// never directly by identity flows.
type Runner struct {
	shared.BaseEntity
	Phone          string
	Nickname       string
	PasswordHash   string
	ReferredBy     string // Referrer's runner ID, or a synthetic code when unresolved
	AvatarKey      *string
	LifetimePoints int64
	MonthPoints    int64
	Balance        int64
	Active         bool
}

// NewRunner creates a new runner
func NewRunner(phone, nickname, passwordHash string) (*Runner, error) {
	phone = strings.TrimSpace(phone)
	nickname = strings.TrimSpace(nickname)

	if !phonePattern.MatchString(phone) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number is malformed")
	}
	if nickname == "" {
		return nil, shared.NewDomainError("INVALID_NICKNAME", "Nickname cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	return &Runner{
		BaseEntity:   shared.NewBaseEntity(),
		Phone:        phone,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		Active:       true,
	}, nil
}

// SetReferredBy records the referrer reference on the runner
func (r *Runner) SetReferredBy(code string) {
	r.ReferredBy = code
	r.Touch()
}

// SetAvatarKey records the storage key of the runner's avatar
func (r *Runner) SetAvatarKey(key string) {
	r.AvatarKey = &key
	r.Touch()
}

// Rename updates the runner's nickname
func (r *Runner) Rename(nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return shared.NewDomainError("INVALID_NICKNAME", "Nickname cannot be empty")
	}
	r.Nickname = nickname
	r.Touch()
	return nil
}

// ChangePassword replaces the stored password hash
func (r *Runner) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	r.PasswordHash = passwordHash
	r.Touch()
	return nil
}

// Deactivate soft-deletes the runner. Runner rows are never removed because
// ledger entries reference them forever.
func (r *Runner) Deactivate() {
	r.Active = false
	r.Touch()
}

// HasSyntheticReferral returns true if the stored referral reference does not
// point to a real runner
func (r *Runner) HasSyntheticReferral() bool {
	return strings.HasPrefix(r.ReferredBy, syntheticReferralPrefix)
}

// SyntheticReferralCode generates an opaque referral placeholder for
// registrations whose referral code resolved to no runner.
func SyntheticReferralCode() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken anyway
		panic(err)
	}
	return syntheticReferralPrefix + hex.EncodeToString(buf)
}
