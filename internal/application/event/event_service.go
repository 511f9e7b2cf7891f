package event

import (
	"context"

	"github.com/google/uuid"
	"github.com/zona2/backend/internal/domain/event"
	"github.com/zona2/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notifier delivers event updates to registered runners. Implementations are
// best effort and never fail the calling operation.
type Notifier interface {
	RegistrationConfirmed(ctx context.Context, runnerID uuid.UUID, eventTitle string)
	EventUpdate(ctx context.Context, runnerID uuid.UUID, eventTitle, body string)
}

// EventService handles event lifecycle, promotions and pacer assignments
type EventService struct {
	eventRepo        event.Repository
	registrationRepo event.RegistrationRepository
	promotionRepo    event.PromotionRepository
	pacerRepo        event.PacerRepository
	runnerRepo       runnerFinder
	notifier         Notifier
	logger           *zap.Logger
}

// NewEventService creates a new event service
func NewEventService(
	eventRepo event.Repository,
	registrationRepo event.RegistrationRepository,
	promotionRepo event.PromotionRepository,
	pacerRepo event.PacerRepository,
	runnerRepo runnerFinder,
	notifier Notifier,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		promotionRepo:    promotionRepo,
		pacerRepo:        pacerRepo,
		runnerRepo:       runnerRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

// CreateEvent creates a new event in draft state
func (s *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*EventDTO, error) {
	ev, err := event.NewEvent(input.Title, input.Description, input.Location, input.StartsAt, input.Capacity, input.Fee, input.Currency)
	if err != nil {
		return nil, err
	}

	if err := s.eventRepo.Save(ctx, ev); err != nil {
		return nil, err
	}

	s.logger.Info("Event created",
		zap.String("event_id", ev.ID.String()),
		zap.String("title", ev.Title))

	dto := ToEventDTO(ev, 0)
	return &dto, nil
}

// GetEvent returns an event with its confirmed registration count
func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*EventDTO, error) {
	ev, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	registered, err := s.registrationRepo.CountConfirmedByEventID(ctx, ev.ID)
	if err != nil {
		return nil, err
	}

	dto := ToEventDTO(ev, registered)
	return &dto, nil
}

// ListEvents returns a page of events
func (s *EventService) ListEvents(ctx context.Context, filter shared.Filter) (*ListEventsResult, error) {
	events, total, err := s.eventRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]EventDTO, 0, len(events))
	for i := range events {
		registered, err := s.registrationRepo.CountConfirmedByEventID(ctx, events[i].ID)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, ToEventDTO(&events[i], registered))
	}

	return &ListEventsResult{
		Events:   dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// UpdateEvent edits an event that is still in draft or published state
func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, input UpdateEventInput) (*EventDTO, error) {
	ev, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ev.UpdateDetails(input.Title, input.Description, input.Location, input.StartsAt, input.Capacity); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Save(ctx, ev); err != nil {
		return nil, err
	}

	s.notifyConfirmed(ctx, ev, "Event details were updated")

	registered, err := s.registrationRepo.CountConfirmedByEventID(ctx, ev.ID)
	if err != nil {
		return nil, err
	}

	dto := ToEventDTO(ev, registered)
	return &dto, nil
}

// PublishEvent opens a draft event for registration
func (s *EventService) PublishEvent(ctx context.Context, id uuid.UUID) (*EventDTO, error) {
	return s.transition(ctx, id, func(ev *event.Event) error { return ev.Publish() }, "")
}

// CloseEvent stops further registrations
func (s *EventService) CloseEvent(ctx context.Context, id uuid.UUID) (*EventDTO, error) {
	return s.transition(ctx, id, func(ev *event.Event) error { return ev.Close() }, "Registration is now closed")
}

// CancelEvent cancels an event and notifies all confirmed registrants
func (s *EventService) CancelEvent(ctx context.Context, id uuid.UUID) (*EventDTO, error) {
	return s.transition(ctx, id, func(ev *event.Event) error { return ev.Cancel() }, "The event was cancelled")
}

func (s *EventService) transition(ctx context.Context, id uuid.UUID, apply func(*event.Event) error, notice string) (*EventDTO, error) {
	ev, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(ev); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Save(ctx, ev); err != nil {
		return nil, err
	}

	s.logger.Info("Event status changed",
		zap.String("event_id", ev.ID.String()),
		zap.String("status", ev.Status.String()))

	if notice != "" {
		s.notifyConfirmed(ctx, ev, notice)
	}

	registered, err := s.registrationRepo.CountConfirmedByEventID(ctx, ev.ID)
	if err != nil {
		return nil, err
	}

	dto := ToEventDTO(ev, registered)
	return &dto, nil
}

// notifyConfirmed fans an update out to every confirmed registrant
func (s *EventService) notifyConfirmed(ctx context.Context, ev *event.Event, body string) {
	filter := shared.Filter{Page: 1, PageSize: 1000}
	regs, _, err := s.registrationRepo.FindByEventID(ctx, ev.ID, filter)
	if err != nil {
		s.logger.Warn("Failed to load registrants for notification",
			zap.String("event_id", ev.ID.String()),
			zap.Error(err))
		return
	}

	for i := range regs {
		if !regs[i].IsConfirmed() {
			continue
		}
		s.notifier.EventUpdate(ctx, regs[i].RunnerID, ev.Title, body)
	}
}

// DeleteEvent removes a draft event. Events that ever accepted registrations
// are cancelled instead of deleted so history survives.
func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	ev, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if ev.Status != event.StatusDraft {
		return shared.ErrInvalidState
	}

	return s.eventRepo.Delete(ctx, id)
}

// CreatePromotion creates a discount code for an event
func (s *EventService) CreatePromotion(ctx context.Context, input CreatePromotionInput) (*PromotionDTO, error) {
	ev, err := s.eventRepo.FindByID(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	if ev.IsFree() {
		return nil, shared.NewDomainError("FREE_EVENT", "Free events cannot carry promotions")
	}

	promo, err := event.NewPromotion(input.EventID, input.Code, input.DiscountPercent, input.ExpiresAt, input.MaxUses)
	if err != nil {
		return nil, err
	}

	if err := s.promotionRepo.Save(ctx, promo); err != nil {
		return nil, err
	}

	s.logger.Info("Promotion created",
		zap.String("event_id", input.EventID.String()),
		zap.String("code", promo.Code))

	dto := ToPromotionDTO(promo)
	return &dto, nil
}

// ListPromotions returns all promotions of an event
func (s *EventService) ListPromotions(ctx context.Context, eventID uuid.UUID) ([]PromotionDTO, error) {
	promos, err := s.promotionRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	dtos := make([]PromotionDTO, 0, len(promos))
	for i := range promos {
		dtos = append(dtos, ToPromotionDTO(&promos[i]))
	}
	return dtos, nil
}

// DeletePromotion removes a promotion
func (s *EventService) DeletePromotion(ctx context.Context, id uuid.UUID) error {
	if _, err := s.promotionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.promotionRepo.Delete(ctx, id)
}

// AssignPacer assigns a runner as a pacer for an event
func (s *EventService) AssignPacer(ctx context.Context, input AssignPacerInput) (*PacerDTO, error) {
	if _, err := s.eventRepo.FindByID(ctx, input.EventID); err != nil {
		return nil, err
	}
	if _, err := s.runnerRepo.FindByID(ctx, input.RunnerID); err != nil {
		return nil, err
	}

	pacer, err := event.NewPacer(input.EventID, input.RunnerID, input.PaceSecsPerKm, input.TargetDistance)
	if err != nil {
		return nil, err
	}

	if err := s.pacerRepo.Save(ctx, pacer); err != nil {
		return nil, err
	}

	dto := ToPacerDTO(pacer)
	return &dto, nil
}

// ListPacers returns all pacer assignments of an event
func (s *EventService) ListPacers(ctx context.Context, eventID uuid.UUID) ([]PacerDTO, error) {
	pacers, err := s.pacerRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	dtos := make([]PacerDTO, 0, len(pacers))
	for i := range pacers {
		dtos = append(dtos, ToPacerDTO(&pacers[i]))
	}
	return dtos, nil
}

// RemovePacer removes a pacer assignment
func (s *EventService) RemovePacer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pacerRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.pacerRepo.Delete(ctx, id)
}
