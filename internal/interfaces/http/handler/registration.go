package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	eventapp "github.com/zona2/backend/internal/application/event"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/interfaces/http/dto"
)

// EventRegisterRequest is the body for registering for an event
type EventRegisterRequest struct {
	PromotionCode string `json:"promotion_code" binding:"omitempty,min=3,max=32"`
}

// ConfirmPaymentRequest is the body for confirming a registration payment
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

// RegistrationHandler handles event registration HTTP requests
type RegistrationHandler struct {
	BaseHandler
	registrationService *eventapp.RegistrationService
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService *eventapp.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Register registers the authenticated runner for an event
func (h *RegistrationHandler) Register(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	var req EventRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.registrationService.Register(c.Request.Context(), eventapp.RegisterInput{
		EventID:       eventID,
		RunnerID:      runnerID,
		PromotionCode: req.PromotionCode,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// ConfirmPayment settles a pending registration after client-side payment
func (h *RegistrationHandler) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.registrationService.ConfirmPayment(c.Request.Context(), req.PaymentIntentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CancelRegistration cancels the authenticated runner's registration
func (h *RegistrationHandler) CancelRegistration(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	registrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid registration ID")
		return
	}

	result, err := h.registrationService.CancelRegistration(c.Request.Context(), registrationID, runnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetRegistration returns a registration owned by the authenticated runner
func (h *RegistrationHandler) GetRegistration(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	registrationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid registration ID")
		return
	}

	result, err := h.registrationService.GetRegistration(c.Request.Context(), registrationID, runnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListEventRegistrations returns a page of an event's registrations
func (h *RegistrationHandler) ListEventRegistrations(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.registrationService.ListEventRegistrations(c.Request.Context(), eventID, shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Registrations, result.Total, result.Page, result.PageSize)
}

// ListMyRegistrations returns a page of the authenticated runner's registrations
func (h *RegistrationHandler) ListMyRegistrations(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.registrationService.ListRunnerRegistrations(c.Request.Context(), runnerID, shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Registrations, result.Total, result.Page, result.PageSize)
}
