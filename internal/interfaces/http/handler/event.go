package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	eventapp "github.com/zona2/backend/internal/application/event"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/interfaces/http/dto"
)

// CreateEventRequest is the body for creating an event
type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	Location    string    `json:"location" binding:"required,min=1,max=200"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	Capacity    int       `json:"capacity" binding:"required,min=1"`
	Fee         string    `json:"fee" binding:"required"`
	Currency    string    `json:"currency" binding:"required,len=3"`
}

// UpdateEventRequest is the body for editing an event
type UpdateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description" binding:"max=2000"`
	Location    string    `json:"location" binding:"required,min=1,max=200"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	Capacity    int       `json:"capacity" binding:"required,min=1"`
}

// CreatePromotionRequest is the body for creating a discount code
type CreatePromotionRequest struct {
	Code       string    `json:"code" binding:"required,min=3,max=32"`
	PercentOff int       `json:"percent_off" binding:"required,min=1,max=100"`
	MaxUses    int       `json:"max_uses" binding:"required,min=1"`
	ExpiresAt  time.Time `json:"expires_at" binding:"required"`
}

// AssignPacerRequest is the body for assigning a pacer to an event
type AssignPacerRequest struct {
	RunnerID      string `json:"runner_id" binding:"required,uuid"`
	PaceSecsPerKm int    `json:"pace_secs_per_km" binding:"required,min=120,max=900"`
}

// EventHandler handles event HTTP requests
type EventHandler struct {
	BaseHandler
	eventService *eventapp.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *eventapp.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// CreateEvent creates a draft event
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	fee, err := decimal.NewFromString(req.Fee)
	if err != nil {
		h.BadRequest(c, "Invalid fee amount")
		return
	}

	result, err := h.eventService.CreateEvent(c.Request.Context(), eventapp.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		Capacity:    req.Capacity,
		Fee:         fee,
		Currency:    req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetEvent returns a single event by ID
func (h *EventHandler) GetEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	result, err := h.eventService.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListEvents returns a page of events
func (h *EventHandler) ListEvents(c *gin.Context) {
	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}
	if status := c.Query("status"); status != "" {
		filter.Filters = map[string]interface{}{"status": status}
	}

	result, err := h.eventService.ListEvents(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Events, result.Total, result.Page, result.PageSize)
}

// UpdateEvent edits a draft or published event
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.eventService.UpdateEvent(c.Request.Context(), eventID, eventapp.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		Capacity:    req.Capacity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// PublishEvent opens an event for registration
func (h *EventHandler) PublishEvent(c *gin.Context) {
	h.transition(c, h.eventService.PublishEvent)
}

// CloseEvent stops new registrations for an event
func (h *EventHandler) CloseEvent(c *gin.Context) {
	h.transition(c, h.eventService.CloseEvent)
}

// CancelEvent cancels an event
func (h *EventHandler) CancelEvent(c *gin.Context) {
	h.transition(c, h.eventService.CancelEvent)
}

func (h *EventHandler) transition(c *gin.Context, apply func(context.Context, uuid.UUID) (*eventapp.EventDTO, error)) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	result, err := apply(c.Request.Context(), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteEvent removes a draft event
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	if err := h.eventService.DeleteEvent(c.Request.Context(), eventID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreatePromotion creates a discount code for an event
func (h *EventHandler) CreatePromotion(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.eventService.CreatePromotion(c.Request.Context(), eventapp.CreatePromotionInput{
		EventID:         eventID,
		Code:            req.Code,
		DiscountPercent: decimal.NewFromInt(int64(req.PercentOff)),
		MaxUses:         req.MaxUses,
		ExpiresAt:       req.ExpiresAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListPromotions lists an event's discount codes
func (h *EventHandler) ListPromotions(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	result, err := h.eventService.ListPromotions(c.Request.Context(), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeletePromotion removes a discount code
func (h *EventHandler) DeletePromotion(c *gin.Context) {
	promotionID, err := uuid.Parse(c.Param("promotionId"))
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID")
		return
	}

	if err := h.eventService.DeletePromotion(c.Request.Context(), promotionID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AssignPacer assigns a runner as a pacer for an event
func (h *EventHandler) AssignPacer(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req AssignPacerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	runnerID, err := uuid.Parse(req.RunnerID)
	if err != nil {
		h.BadRequest(c, "Invalid runner ID")
		return
	}

	result, err := h.eventService.AssignPacer(c.Request.Context(), eventapp.AssignPacerInput{
		EventID:       eventID,
		RunnerID:      runnerID,
		PaceSecsPerKm: req.PaceSecsPerKm,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ListPacers lists an event's pacers
func (h *EventHandler) ListPacers(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	result, err := h.eventService.ListPacers(c.Request.Context(), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RemovePacer removes a pacer from an event
func (h *EventHandler) RemovePacer(c *gin.Context) {
	pacerID, err := uuid.Parse(c.Param("pacerId"))
	if err != nil {
		h.BadRequest(c, "Invalid pacer ID")
		return
	}

	if err := h.eventService.RemovePacer(c.Request.Context(), pacerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
