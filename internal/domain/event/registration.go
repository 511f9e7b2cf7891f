package event

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zona2/backend/internal/domain/shared"
)

// RegistrationStatus represents the payment/lifecycle state of a registration
type RegistrationStatus string

const (
	// RegistrationPending means a payment intent was created but not confirmed
	RegistrationPending RegistrationStatus = "PENDING"
	// RegistrationConfirmed means the registration is paid (or the event was free)
	RegistrationConfirmed RegistrationStatus = "CONFIRMED"
	// RegistrationCancelled means the runner withdrew or payment failed
	RegistrationCancelled RegistrationStatus = "CANCELLED"
)

// IsValid returns true if the registration status is valid
func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationPending, RegistrationConfirmed, RegistrationCancelled:
		return true
	}
	return false
}

// String returns the string representation of RegistrationStatus
func (s RegistrationStatus) String() string {
	return string(s)
}

// Registration links a runner to an event. At most one registration may exist
// per (event, runner) pair, enforced by a uniqueness constraint in the store.
type Registration struct {
	shared.BaseEntity
	EventID         uuid.UUID
	RunnerID        uuid.UUID
	Status          RegistrationStatus
	PaymentIntentID *string // Gateway reference for paid registrations
	AmountPaid      decimal.Decimal
	PromotionID     *uuid.UUID
}

// NewRegistration creates a pending registration
func NewRegistration(eventID, runnerID uuid.UUID) (*Registration, error) {
	if eventID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EVENT", "Event ID cannot be empty")
	}
	if runnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RUNNER", "Runner ID cannot be empty")
	}

	return &Registration{
		BaseEntity: shared.NewBaseEntity(),
		EventID:    eventID,
		RunnerID:   runnerID,
		Status:     RegistrationPending,
		AmountPaid: decimal.Zero,
	}, nil
}

// WithPaymentIntent attaches the gateway payment reference
func (r *Registration) WithPaymentIntent(intentID string) *Registration {
	r.PaymentIntentID = &intentID
	return r
}

// WithPromotion attaches the promotion applied at registration time
func (r *Registration) WithPromotion(promotionID uuid.UUID) *Registration {
	r.PromotionID = &promotionID
	return r
}

// Confirm marks the registration as paid. The amount is what the gateway
// actually settled, after any promotion discount.
func (r *Registration) Confirm(amountPaid decimal.Decimal) error {
	if r.Status != RegistrationPending {
		return shared.ErrInvalidState
	}
	if amountPaid.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount cannot be negative")
	}
	r.Status = RegistrationConfirmed
	r.AmountPaid = amountPaid
	r.Touch()
	return nil
}

// Cancel withdraws the registration
func (r *Registration) Cancel() error {
	if r.Status == RegistrationCancelled {
		return shared.ErrInvalidState
	}
	r.Status = RegistrationCancelled
	r.Touch()
	return nil
}

// IsConfirmed returns true if the registration is confirmed
func (r *Registration) IsConfirmed() bool {
	return r.Status == RegistrationConfirmed
}
