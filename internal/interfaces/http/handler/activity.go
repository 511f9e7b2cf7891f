package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	activityapp "github.com/zona2/backend/internal/application/activity"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/interfaces/http/dto"
)

// CreateActivityRequest is the body for recording an activity
type CreateActivityRequest struct {
	Title          string    `json:"title" binding:"required,min=1,max=120"`
	Sport          string    `json:"sport" binding:"required,oneof=RUN RIDE WALK"`
	DistanceMeters float64   `json:"distance_meters" binding:"required,gt=0"`
	DurationSecs   int64     `json:"duration_secs" binding:"required,gt=0"`
	StartedAt      time.Time `json:"started_at" binding:"required"`
}

// UpdateActivityRequest is the body for editing a recorded activity
type UpdateActivityRequest struct {
	Title          string    `json:"title" binding:"required,min=1,max=120"`
	Sport          string    `json:"sport" binding:"required,oneof=RUN RIDE WALK"`
	DistanceMeters float64   `json:"distance_meters" binding:"required,gt=0"`
	DurationSecs   int64     `json:"duration_secs" binding:"required,gt=0"`
	StartedAt      time.Time `json:"started_at" binding:"required"`
}

// TrackUploadRequest is the body for requesting a GPS track upload URL
type TrackUploadRequest struct {
	ContentType string `json:"content_type"`
}

// ActivityHandler handles activity HTTP requests
type ActivityHandler struct {
	BaseHandler
	activityService *activityapp.Service
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *activityapp.Service) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// CreateActivity records a new activity for the authenticated runner
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.activityService.CreateActivity(c.Request.Context(), activityapp.CreateActivityInput{
		RunnerID:       runnerID,
		Title:          req.Title,
		Sport:          req.Sport,
		DistanceMeters: req.DistanceMeters,
		DurationSecs:   req.DurationSecs,
		StartedAt:      req.StartedAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetActivity returns a single activity by ID
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	result, err := h.activityService.GetActivity(c.Request.Context(), activityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListActivities returns a page of a runner's activities. Without a
// runner_id query parameter it lists the authenticated runner's own.
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	if raw := c.Query("runner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid runner ID")
			return
		}
		runnerID = id
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.activityService.ListByRunner(c.Request.Context(), runnerID, shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Activities, result.Total, result.Page, result.PageSize)
}

// UpdateActivity edits an activity owned by the authenticated runner
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	var req UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.activityService.UpdateActivity(c.Request.Context(), activityID, runnerID, activityapp.UpdateActivityInput{
		Title:          req.Title,
		Sport:          req.Sport,
		DistanceMeters: req.DistanceMeters,
		DurationSecs:   req.DurationSecs,
		StartedAt:      req.StartedAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// DeleteActivity removes an activity owned by the authenticated runner
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	if err := h.activityService.DeleteActivity(c.Request.Context(), activityID, runnerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RequestTrackUpload returns a presigned URL for uploading a GPS track
func (h *ActivityHandler) RequestTrackUpload(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	var req TrackUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.activityService.RequestTrackUpload(c.Request.Context(), activityID, runnerID, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ConfirmTrackUpload attaches the uploaded track to the activity
func (h *ActivityHandler) ConfirmTrackUpload(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID")
		return
	}

	result, err := h.activityService.ConfirmTrackUpload(c.Request.Context(), activityID, runnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
