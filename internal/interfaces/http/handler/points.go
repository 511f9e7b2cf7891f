package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	pointsapp "github.com/zona2/backend/internal/application/points"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/interfaces/http/dto"
)

// PeerAwardRequest is the body for sending zonas to another runner
type PeerAwardRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required,uuid"`
}

// ActivityGrantRequest is the body for granting zonas to an activity
type ActivityGrantRequest struct {
	ActivityID string `json:"activity_id" binding:"required,uuid"`
	Points     int64  `json:"points" binding:"required,min=1"`
}

// PointsHandler handles the zonas ledger HTTP requests
type PointsHandler struct {
	BaseHandler
	ledgerService *pointsapp.LedgerService
}

// NewPointsHandler creates a new points handler
func NewPointsHandler(ledgerService *pointsapp.LedgerService) *PointsHandler {
	return &PointsHandler{ledgerService: ledgerService}
}

// PeerAward sends zonas from the authenticated runner to another runner.
// A client may pass an Idempotency-Key header to make retries safe.
func (h *PointsHandler) PeerAward(c *gin.Context) {
	granterID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PeerAwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		h.BadRequest(c, "Invalid receiver ID")
		return
	}

	result, err := h.ledgerService.PeerAward(c.Request.Context(), pointsapp.PeerAwardInput{
		GranterID:      granterID,
		ReceiverID:     receiverID,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GrantToActivity sends zonas from the authenticated runner to an activity's owner
func (h *PointsHandler) GrantToActivity(c *gin.Context) {
	granterID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ActivityGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	activityID, err := uuid.Parse(req.ActivityID)
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	result, err := h.ledgerService.GrantToActivity(c.Request.Context(), pointsapp.GrantToActivityInput{
		GranterID:  granterID,
		ActivityID: activityID,
		Points:     req.Points,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetBalance returns the authenticated runner's point counters
func (h *PointsHandler) GetBalance(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), runnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// ListEntries returns a page of the authenticated runner's ledger entries.
// Optional reason, origin, counterparty_id and activity_id query filters narrow the page.
func (h *PointsHandler) ListEntries(c *gin.Context) {
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

	input := pointsapp.ListEntriesInput{
		ReceiverID: &runnerID,
		Reason:     c.Query("reason"),
		Origin:     c.Query("origin"),
		Page:       listReq.Page,
		PageSize:   listReq.PageSize,
	}
	if raw := c.Query("counterparty_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid counterparty ID")
			return
		}
		input.CounterpartyID = &id
	}
	if raw := c.Query("activity_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid activity ID")
			return
		}
		input.ActivityID = &id
	}

	result, err := h.ledgerService.ListEntries(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Entries, result.Total, result.Page, result.PageSize)
}

// GetEntry returns a single ledger entry by ID
func (h *PointsHandler) GetEntry(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid entry ID")
		return
	}

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if entry.ReceiverID != runnerID {
		h.HandleError(c, shared.ErrForbidden)
		return
	}

	h.Success(c, entry)
}

// GetReferralCount returns how many runners registered with this runner's code
func (h *PointsHandler) GetReferralCount(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.ledgerService.GetReferralCount(c.Request.Context(), runnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"referral_count": count})
}

// GetReferralEarnings returns referral counts and the points earned from them
func (h *PointsHandler) GetReferralEarnings(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	earnings, err := h.ledgerService.GetReferralEarnings(c.Request.Context(), runnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, earnings)
}

// ListActivityGrants returns a page of grants received by an activity
func (h *PointsHandler) ListActivityGrants(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.ledgerService.ListActivityGrants(c.Request.Context(), activityID, shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Grants, result.Total, result.Page, result.PageSize)
}

// GetActivityTotal returns the sum of zonas granted to an activity
func (h *PointsHandler) GetActivityTotal(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	total, err := h.ledgerService.GetActivityTotal(c.Request.Context(), activityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"activity_id": activityID, "total_points": total})
}
