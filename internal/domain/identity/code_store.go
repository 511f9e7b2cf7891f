package identity

import (
	"context"
	"time"
)

// VerificationCodeStore stores one-time SMS verification codes with a TTL.
// Codes are single-use: Consume removes the code as it verifies it.
type VerificationCodeStore interface {
	// Put stores the code for the phone number, replacing any previous one
	Put(ctx context.Context, phone, code string, ttl time.Duration) error

	// Consume atomically checks and removes the stored code. Returns true if
	// the supplied code matched an unexpired stored code.
	Consume(ctx context.Context, phone, code string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}
