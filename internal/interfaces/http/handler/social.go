package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	socialapp "github.com/zona2/backend/internal/application/social"
	"github.com/zona2/backend/internal/domain/shared"
	"github.com/zona2/backend/internal/interfaces/http/dto"
)

// SocialHandler handles follow and notification HTTP requests
type SocialHandler struct {
	BaseHandler
	followService       *socialapp.FollowService
	notificationService *socialapp.NotificationService
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(followService *socialapp.FollowService, notificationService *socialapp.NotificationService) *SocialHandler {
	return &SocialHandler{
		followService:       followService,
		notificationService: notificationService,
	}
}

// Follow makes the authenticated runner follow another runner
func (h *SocialHandler) Follow(c *gin.Context) {
	followerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	followeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid runner ID")
		return
	}

	if err := h.followService.Follow(c.Request.Context(), followerID, followeeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{"following": true})
}

// Unfollow removes a follow relationship
func (h *SocialHandler) Unfollow(c *gin.Context) {
	followerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	followeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid runner ID")
		return
	}

	if err := h.followService.Unfollow(c.Request.Context(), followerID, followeeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetFollowStats returns follower and following counts for a runner
func (h *SocialHandler) GetFollowStats(c *gin.Context) {
	runnerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid runner ID")
		return
	}

	stats, err := h.followService.GetStats(c.Request.Context(), runnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// ListFollowers returns a page of a runner's followers
func (h *SocialHandler) ListFollowers(c *gin.Context) {
	h.listFollows(c, h.followService.ListFollowers)
}

// ListFollowing returns a page of runners a runner follows
func (h *SocialHandler) ListFollowing(c *gin.Context) {
	h.listFollows(c, h.followService.ListFollowing)
}

func (h *SocialHandler) listFollows(c *gin.Context, list func(context.Context, uuid.UUID, shared.Filter) (*socialapp.ListFollowsResult, error)) {
	runnerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid runner ID")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := list(c.Request.Context(), runnerID, shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Follows, result.Total, result.Page, result.PageSize)
}

// ListNotifications returns a page of the authenticated runner's notifications
func (h *SocialHandler) ListNotifications(c *gin.Context) {
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

	result, err := h.notificationService.ListNotifications(c.Request.Context(), runnerID, shared.Filter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CountUnread returns how many notifications are still unread
func (h *SocialHandler) CountUnread(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), runnerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"unread": count})
}

// MarkNotificationRead marks one of the runner's notifications as read
func (h *SocialHandler) MarkNotificationRead(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), notificationID, runnerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"read": true})
}

// DeleteNotification removes one of the runner's notifications
func (h *SocialHandler) DeleteNotification(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.DeleteNotification(c.Request.Context(), notificationID, runnerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
