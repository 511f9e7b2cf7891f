package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zona2/backend/internal/domain/event"
	"github.com/zona2/backend/internal/domain/identity"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/infrastructure/payment"
	"go.uber.org/zap"
)

// runnerFinder is the slice of the runner repository this package needs
type runnerFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*identity.Runner, error)
}

// PaymentGateway abstracts the payment provider used for registration fees
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, input payment.CreatePaymentIntentInput) (*payment.PaymentIntentOutput, error)
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*payment.PaymentIntentOutput, error)
	CancelPaymentIntent(ctx context.Context, paymentIntentID string) (*payment.PaymentIntentOutput, error)
	RefundPayment(ctx context.Context, input payment.RefundInput) (*payment.RefundOutput, error)
}

// RegistrationService handles event registrations and their payment flow
type RegistrationService struct {
	eventRepo        event.Repository
	registrationRepo event.RegistrationRepository
	promotionRepo    event.PromotionRepository
	runnerRepo       runnerFinder
	gateway          PaymentGateway
	notifier         Notifier
	logger           *zap.Logger
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(
	eventRepo event.Repository,
	registrationRepo event.RegistrationRepository,
	promotionRepo event.PromotionRepository,
	runnerRepo runnerFinder,
	gateway PaymentGateway,
	notifier Notifier,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		promotionRepo:    promotionRepo,
		runnerRepo:       runnerRepo,
		gateway:          gateway,
		notifier:         notifier,
		logger:           logger,
	}
}

// Register creates a registration for a runner. Free events confirm
// immediately. Paid events return a client secret and stay pending until the
// payment is confirmed by webhook or an explicit confirmation call.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	ev, err := s.eventRepo.FindByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	if !ev.AcceptsRegistrations() {
		return nil, shared.NewDomainError("REGISTRATION_CLOSED", "Event is not accepting registrations")
	}

	runner, err := s.runnerRepo.FindByID(ctx, input.RunnerID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.registrationRepo.CountConfirmedByEventID(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	if confirmed >= int64(ev.Capacity) {
		return nil, shared.NewDomainError("EVENT_FULL", "Event has reached its capacity")
	}

	reg, err := event.NewRegistration(ev.ID, runner.ID)
	if err != nil {
		return nil, err
	}

	amountDue := ev.Fee
	if input.PromotionCode != "" {
		amountDue, err = s.applyPromotion(ctx, ev, reg, input.PromotionCode)
		if err != nil {
			return nil, err
		}
	}

	if ev.IsFree() || amountDue.IsZero() {
		if err := reg.Confirm(amountDue); err != nil {
			return nil, err
		}
		if err := s.registrationRepo.Save(ctx, reg); err != nil {
			return nil, err
		}

		s.logger.Info("Registration confirmed",
			zap.String("registration_id", reg.ID.String()),
			zap.String("event_id", ev.ID.String()))

		s.notifier.RegistrationConfirmed(ctx, runner.ID, ev.Title)

		return &RegisterResult{
			Registration: ToRegistrationDTO(reg),
			AmountDue:    amountDue,
		}, nil
	}

	if s.gateway == nil {
		return nil, shared.NewDomainError("PAYMENTS_UNAVAILABLE", "Payment gateway is not configured")
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, payment.CreatePaymentIntentInput{
		RegistrationID: reg.ID,
		EventID:        ev.ID,
		RunnerID:       runner.ID,
		Amount:         amountDue,
		Currency:       ev.Currency,
		Description:    fmt.Sprintf("Registration for %s", ev.Title),
	})
	if err != nil {
		return nil, err
	}

	reg.WithPaymentIntent(intent.PaymentIntentID)

	if err := s.registrationRepo.Save(ctx, reg); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// The runner raced a second registration. Release the orphaned
			// intent before surfacing the conflict.
			if _, cancelErr := s.gateway.CancelPaymentIntent(ctx, intent.PaymentIntentID); cancelErr != nil {
				s.logger.Warn("Failed to cancel orphaned payment intent",
					zap.String("payment_intent_id", intent.PaymentIntentID),
					zap.Error(cancelErr))
			}
		}
		return nil, err
	}

	s.logger.Info("Registration pending payment",
		zap.String("registration_id", reg.ID.String()),
		zap.String("payment_intent_id", intent.PaymentIntentID))

	return &RegisterResult{
		Registration: ToRegistrationDTO(reg),
		AmountDue:    amountDue,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (s *RegistrationService) applyPromotion(ctx context.Context, ev *event.Event, reg *event.Registration, code string) (amount decimal.Decimal, err error) {
	promo, err := s.promotionRepo.FindByCode(ctx, code)
	if err != nil {
		return amount, err
	}
	if promo.EventID != ev.ID {
		return amount, shared.NewDomainError("PROMOTION_MISMATCH", "Promotion does not apply to this event")
	}

	if err := promo.Redeem(time.Now()); err != nil {
		return amount, err
	}
	if err := s.promotionRepo.Save(ctx, promo); err != nil {
		return amount, err
	}

	reg.WithPromotion(promo.ID)
	return promo.Apply(ev.Fee), nil
}

// ConfirmPayment settles a pending registration once its payment intent
// succeeded. Both the Stripe webhook and the client confirmation endpoint
// land here, so it must be idempotent.
func (s *RegistrationService) ConfirmPayment(ctx context.Context, paymentIntentID string) (*RegistrationDTO, error) {
	reg, err := s.registrationRepo.FindByPaymentIntentID(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}

	if reg.IsConfirmed() {
		dto := ToRegistrationDTO(reg)
		return &dto, nil
	}

	if s.gateway == nil {
		return nil, shared.NewDomainError("PAYMENTS_UNAVAILABLE", "Payment gateway is not configured")
	}

	intent, err := s.gateway.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != payment.PaymentStatusSucceeded {
		return nil, shared.NewDomainError("PAYMENT_NOT_SETTLED", "Payment has not succeeded yet")
	}

	// Capacity was only a soft check at registration time; pending
	// registrations do not hold a seat, so re-check before confirming.
	ev, err := s.eventRepo.FindByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.registrationRepo.CountConfirmedByEventID(ctx, ev.ID)
	if err != nil {
		return nil, err
	}
	if confirmed >= int64(ev.Capacity) {
		// The payment already settled, so hand the money back.
		if _, refundErr := s.gateway.RefundPayment(ctx, payment.RefundInput{
			PaymentIntentID: paymentIntentID,
			Reason:          "requested_by_customer",
		}); refundErr != nil {
			s.logger.Error("Failed to refund payment for full event",
				zap.String("payment_intent_id", paymentIntentID),
				zap.Error(refundErr))
		}
		return nil, shared.NewDomainError("EVENT_FULL", "Event filled up before the payment settled")
	}

	if err := reg.Confirm(intent.Amount); err != nil {
		return nil, err
	}
	if err := s.registrationRepo.Save(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Info("Registration confirmed by payment",
		zap.String("registration_id", reg.ID.String()),
		zap.String("payment_intent_id", paymentIntentID))

	s.notifier.RegistrationConfirmed(ctx, reg.RunnerID, ev.Title)

	dto := ToRegistrationDTO(reg)
	return &dto, nil
}

// CancelRegistration withdraws a registration. Confirmed paid registrations
// are refunded, pending ones release their payment intent.
func (s *RegistrationService) CancelRegistration(ctx context.Context, registrationID, runnerID uuid.UUID) (*RegistrationDTO, error) {
	reg, err := s.registrationRepo.FindByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.RunnerID != runnerID {
		return nil, shared.ErrForbidden
	}

	wasConfirmed := reg.IsConfirmed()

	if err := reg.Cancel(); err != nil {
		return nil, err
	}

	if reg.PaymentIntentID != nil && s.gateway != nil {
		if wasConfirmed && reg.AmountPaid.IsPositive() {
			if _, err := s.gateway.RefundPayment(ctx, payment.RefundInput{
				PaymentIntentID: *reg.PaymentIntentID,
				Reason:          "requested_by_customer",
			}); err != nil {
				return nil, err
			}
		} else if !wasConfirmed {
			if _, err := s.gateway.CancelPaymentIntent(ctx, *reg.PaymentIntentID); err != nil {
				s.logger.Warn("Failed to cancel payment intent",
					zap.String("payment_intent_id", *reg.PaymentIntentID),
					zap.Error(err))
			}
		}
	}

	if err := s.registrationRepo.Save(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Info("Registration cancelled",
		zap.String("registration_id", reg.ID.String()),
		zap.Bool("refunded", wasConfirmed))

	dto := ToRegistrationDTO(reg)
	return &dto, nil
}

// GetRegistration returns a registration visible to its owner
func (s *RegistrationService) GetRegistration(ctx context.Context, registrationID, runnerID uuid.UUID) (*RegistrationDTO, error) {
	reg, err := s.registrationRepo.FindByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.RunnerID != runnerID {
		return nil, shared.ErrForbidden
	}

	dto := ToRegistrationDTO(reg)
	return &dto, nil
}

// ListEventRegistrations returns a page of registrations for an event
func (s *RegistrationService) ListEventRegistrations(ctx context.Context, eventID uuid.UUID, filter shared.Filter) (*ListRegistrationsResult, error) {
	regs, total, err := s.registrationRepo.FindByEventID(ctx, eventID, filter)
	if err != nil {
		return nil, err
	}
	return toRegistrationList(regs, total, filter), nil
}

// ListRunnerRegistrations returns a page of a runner's registrations
func (s *RegistrationService) ListRunnerRegistrations(ctx context.Context, runnerID uuid.UUID, filter shared.Filter) (*ListRegistrationsResult, error) {
	regs, total, err := s.registrationRepo.FindByRunnerID(ctx, runnerID, filter)
	if err != nil {
		return nil, err
	}
	return toRegistrationList(regs, total, filter), nil
}

func toRegistrationList(regs []event.Registration, total int64, filter shared.Filter) *ListRegistrationsResult {
	dtos := make([]RegistrationDTO, 0, len(regs))
	for i := range regs {
		dtos = append(dtos, ToRegistrationDTO(&regs[i]))
	}
	return &ListRegistrationsResult{
		Registrations: dtos,
		Total:         total,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	}
}
