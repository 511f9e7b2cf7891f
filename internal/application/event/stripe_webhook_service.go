package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"

	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/payment"
)

// StripeWebhookService verifies and dispatches Stripe webhook events
type StripeWebhookService struct {
	config              *payment.StripeConfig
	registrationService *RegistrationService
	logger              *zap.Logger
}

// NewStripeWebhookService creates a new Stripe webhook service
func NewStripeWebhookService(cfg *payment.StripeConfig, registrationService *RegistrationService, logger *zap.Logger) *StripeWebhookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StripeWebhookService{
		config:              cfg,
		registrationService: registrationService,
		logger:              logger,
	}
}

// WebhookResult contains the result of processing a webhook
type WebhookResult struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	Processed bool   `json:"processed"`
	Message   string `json:"message,omitempty"`
}

// ProcessWebhook verifies the payload signature and applies the event
func (s *StripeWebhookService) ProcessWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.config.WebhookSecret)
	if err != nil {
		s.logger.Error("Failed to verify webhook signature", zap.Error(err))
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	s.logger.Info("Processing Stripe webhook event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))

	result := &WebhookResult{
		EventID:   event.ID,
		EventType: string(event.Type),
		Processed: true,
	}

	switch event.Type {
	case "payment_intent.succeeded":
		err = s.handlePaymentIntentSucceeded(ctx, event)
	case "payment_intent.payment_failed":
		err = s.handlePaymentIntentFailed(ctx, event)
	default:
		s.logger.Debug("Unhandled webhook event type",
			zap.String("event_type", string(event.Type)))
		result.Message = "Event type not handled"
	}

	if err != nil {
		s.logger.Error("Failed to process webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		result.Processed = false
		result.Message = err.Error()
		return result, err
	}

	return result, nil
}

// handlePaymentIntentSucceeded confirms the registration tied to the intent
func (s *StripeWebhookService) handlePaymentIntentSucceeded(ctx context.Context, event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}

	if _, err := s.registrationService.ConfirmPayment(ctx, intent.ID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Intents for other products, or intents whose registration
			// was already cancelled. Acknowledge to stop Stripe retries.
			s.logger.Warn("No registration for payment intent",
				zap.String("payment_intent_id", intent.ID))
			return nil
		}
		return err
	}

	return nil
}

// handlePaymentIntentFailed logs the failure, the registration stays pending
// so the runner can retry payment from the client.
func (s *StripeWebhookService) handlePaymentIntentFailed(ctx context.Context, event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("failed to unmarshal payment intent: %w", err)
	}

	reason := ""
	if intent.LastPaymentError != nil {
		reason = intent.LastPaymentError.Msg
	}
	s.logger.Warn("Payment intent failed",
		zap.String("payment_intent_id", intent.ID),
		zap.String("reason", reason))
	return nil
}
