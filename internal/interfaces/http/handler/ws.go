package handler

import (
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/zona2/backend/internal/infrastructure/logger"
	"github.com/zona2/backend/internal/infrastructure/push"
)

// WSHandler upgrades authenticated requests to push connections
type WSHandler struct {
	BaseHandler
	hub *push.Hub
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(hub *push.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Connect upgrades the request and serves the runner's push connection.
// The call blocks until the peer disconnects or the hub shuts down.
func (h *WSHandler) Connect(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.hub.HandleConnection(c.Writer, c.Request, runnerID); err != nil {
		// The upgrade failed before any frames were written, a plain
		// HTTP error response is still possible here.
		logger.FromContext(c.Request.Context()).Warn("WebSocket upgrade failed",
			zap.Error(err), zap.String("runner_id", runnerID.String()))
	}
}
