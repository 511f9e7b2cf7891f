package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/zona2/backend/internal/application/identity"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/interfaces/http/dto"
)

// RunnerHandler handles runner profile HTTP requests
type RunnerHandler struct {
	BaseHandler
	runnerService *identityapp.RunnerService
}

// NewRunnerHandler creates a new runner handler
func NewRunnerHandler(runnerService *identityapp.RunnerService) *RunnerHandler {
	return &RunnerHandler{runnerService: runnerService}
}

// GetProfile returns the authenticated runner's profile
func (h *RunnerHandler) GetProfile(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.runnerService.GetProfile(c.Request.Context(), runnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// UpdateProfile edits the authenticated runner's profile
func (h *RunnerHandler) UpdateProfile(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.runnerService.UpdateProfile(c.Request.Context(), runnerID, identityapp.UpdateProfileInput{
		Nickname: req.Nickname,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// ChangePassword changes the password and invalidates other sessions
func (h *RunnerHandler) ChangePassword(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.runnerService.ChangePassword(c.Request.Context(), runnerID, identityapp.ChangePasswordInput{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"changed": true})
}

// ResetPassword resets a forgotten password with an SMS code
func (h *RunnerHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.runnerService.ResetPassword(c.Request.Context(), identityapp.ResetPasswordInput{
		Phone:       req.Phone,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"reset": true})
}

// RequestAvatarUpload returns a presigned URL for uploading an avatar
func (h *RunnerHandler) RequestAvatarUpload(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.runnerService.RequestAvatarUpload(c.Request.Context(), runnerID, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ConfirmAvatarUpload attaches the uploaded avatar to the profile
func (h *RunnerHandler) ConfirmAvatarUpload(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.runnerService.ConfirmAvatarUpload(c.Request.Context(), runnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// Deactivate soft-deletes the authenticated runner's account
func (h *RunnerHandler) Deactivate(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.runnerService.Deactivate(c.Request.Context(), runnerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SearchRunners lists runners matching a nickname search
func (h *RunnerHandler) SearchRunners(c *gin.Context) {
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

	runners, total, err := h.runnerService.SearchRunners(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, runners, total, filter.Page, filter.PageSize)
}
