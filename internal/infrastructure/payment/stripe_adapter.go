package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/refund"
	"go.uber.org/zap"
)

// minorUnits converts a decimal amount into the smallest currency unit
var minorUnitFactor = decimal.NewFromInt(100)

// StripeAdapter implements payment operations for event registration fees
type StripeAdapter struct {
	config *StripeConfig
	logger *zap.Logger
}

// NewStripeAdapter creates a new Stripe adapter
func NewStripeAdapter(config *StripeConfig, logger *zap.Logger) (*StripeAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.InitStripeClient()

	return &StripeAdapter{
		config: config,
		logger: logger,
	}, nil
}

// CreatePaymentIntent creates a payment intent for a registration fee
func (a *StripeAdapter) CreatePaymentIntent(ctx context.Context, input CreatePaymentIntentInput) (*PaymentIntentOutput, error) {
	a.logger.Debug("Creating Stripe payment intent",
		zap.String("registration_id", input.RegistrationID.String()),
		zap.String("event_id", input.EventID.String()),
		zap.String("amount", input.Amount.String()))

	currency := input.Currency
	if currency == "" {
		currency = a.config.DefaultCurrency
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(input.Amount.Mul(minorUnitFactor).IntPart()),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	if input.Description != "" {
		params.Description = stripe.String(input.Description)
	}

	params.Metadata = map[string]string{
		"registration_id": input.RegistrationID.String(),
		"event_id":        input.EventID.String(),
		"runner_id":       input.RunnerID.String(),
	}
	for k, v := range input.Metadata {
		params.Metadata[k] = v
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		a.logger.Error("Failed to create Stripe payment intent",
			zap.String("registration_id", input.RegistrationID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}

	a.logger.Info("Created Stripe payment intent",
		zap.String("registration_id", input.RegistrationID.String()),
		zap.String("payment_intent_id", intent.ID),
		zap.String("status", string(intent.Status)))

	return intentOutput(intent), nil
}

// GetPaymentIntent retrieves a payment intent from Stripe
func (a *StripeAdapter) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntentOutput, error) {
	a.logger.Debug("Getting Stripe payment intent", zap.String("payment_intent_id", paymentIntentID))

	intent, err := paymentintent.Get(paymentIntentID, nil)
	if err != nil {
		a.logger.Error("Failed to get Stripe payment intent",
			zap.String("payment_intent_id", paymentIntentID),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to get payment intent: %w", err)
	}

	return intentOutput(intent), nil
}

// CancelPaymentIntent cancels an unconfirmed payment intent
func (a *StripeAdapter) CancelPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntentOutput, error) {
	a.logger.Debug("Canceling Stripe payment intent", zap.String("payment_intent_id", paymentIntentID))

	intent, err := paymentintent.Cancel(paymentIntentID, nil)
	if err != nil {
		a.logger.Error("Failed to cancel Stripe payment intent",
			zap.String("payment_intent_id", paymentIntentID),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to cancel payment intent: %w", err)
	}

	a.logger.Info("Canceled Stripe payment intent",
		zap.String("payment_intent_id", intent.ID),
		zap.String("status", string(intent.Status)))

	return intentOutput(intent), nil
}

// RefundPayment refunds a succeeded payment in full
func (a *StripeAdapter) RefundPayment(ctx context.Context, input RefundInput) (*RefundOutput, error) {
	a.logger.Debug("Refunding Stripe payment",
		zap.String("payment_intent_id", input.PaymentIntentID))

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(input.PaymentIntentID),
	}
	if input.Reason != "" {
		params.Reason = stripe.String(input.Reason)
	}

	ref, err := refund.New(params)
	if err != nil {
		a.logger.Error("Failed to refund Stripe payment",
			zap.String("payment_intent_id", input.PaymentIntentID),
			zap.Error(err))
		return nil, fmt.Errorf("stripe: failed to refund payment: %w", err)
	}

	a.logger.Info("Refunded Stripe payment",
		zap.String("payment_intent_id", input.PaymentIntentID),
		zap.String("refund_id", ref.ID),
		zap.String("status", string(ref.Status)))

	return &RefundOutput{
		RefundID:        ref.ID,
		PaymentIntentID: input.PaymentIntentID,
		Amount:          decimal.NewFromInt(ref.Amount).Div(minorUnitFactor),
		Status:          string(ref.Status),
	}, nil
}

// intentOutput maps a Stripe payment intent to the adapter output
func intentOutput(intent *stripe.PaymentIntent) *PaymentIntentOutput {
	return &PaymentIntentOutput{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Status:          mapStripePaymentStatus(intent.Status),
		Amount:          decimal.NewFromInt(intent.Amount).Div(minorUnitFactor),
		Currency:        string(intent.Currency),
		CreatedAt:       time.Unix(intent.Created, 0),
	}
}

// mapStripePaymentStatus maps Stripe payment intent status to our internal status
func mapStripePaymentStatus(status stripe.PaymentIntentStatus) PaymentStatus {
	switch status {
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		return PaymentStatusRequiresPaymentMethod
	case stripe.PaymentIntentStatusRequiresConfirmation:
		return PaymentStatusRequiresConfirmation
	case stripe.PaymentIntentStatusRequiresAction:
		return PaymentStatusRequiresAction
	case stripe.PaymentIntentStatusProcessing:
		return PaymentStatusProcessing
	case stripe.PaymentIntentStatusSucceeded:
		return PaymentStatusSucceeded
	case stripe.PaymentIntentStatusCanceled:
		return PaymentStatusCanceled
	default:
		return PaymentStatus(status)
	}
}
