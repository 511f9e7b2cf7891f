package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of a payment intent
type PaymentStatus string

const (
	PaymentStatusRequiresPaymentMethod PaymentStatus = "requires_payment_method"
	PaymentStatusRequiresConfirmation  PaymentStatus = "requires_confirmation"
	PaymentStatusRequiresAction        PaymentStatus = "requires_action"
	PaymentStatusProcessing            PaymentStatus = "processing"
	PaymentStatusSucceeded             PaymentStatus = "succeeded"
	PaymentStatusCanceled              PaymentStatus = "canceled"
)

// IsFinal reports whether the payment can no longer change state
func (s PaymentStatus) IsFinal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusCanceled
}

// CreatePaymentIntentInput contains input for creating a payment intent
type CreatePaymentIntentInput struct {
	RegistrationID uuid.UUID
	EventID        uuid.UUID
	RunnerID       uuid.UUID
	Amount         decimal.Decimal
	Currency       string // Falls back to the configured default when empty
	Description    string
	Metadata       map[string]string
}

// PaymentIntentOutput describes a payment intent returned by the gateway
type PaymentIntentOutput struct {
	PaymentIntentID string
	ClientSecret    string
	Status          PaymentStatus
	Amount          decimal.Decimal
	Currency        string
	CreatedAt       time.Time
}

// RefundInput contains input for refunding a payment
type RefundInput struct {
	PaymentIntentID string
	Reason          string
}

// RefundOutput describes a refund returned by the gateway
type RefundOutput struct {
	RefundID        string
	PaymentIntentID string
	Amount          decimal.Decimal
	Status          string
}
