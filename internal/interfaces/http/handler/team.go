package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	eventapp "github.com/zona2/backend/internal/application/event"
)

// CreateTeamRequest is the body for creating a team
type CreateTeamRequest struct {
	EventID string `json:"event_id" binding:"required,uuid"`
	Name    string `json:"name" binding:"required,min=2,max=60"`
}

// TeamHandler handles event team HTTP requests
type TeamHandler struct {
	BaseHandler
	teamService *eventapp.TeamService
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService *eventapp.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// CreateTeam creates a team with the authenticated runner as captain
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	result, err := h.teamService.CreateTeam(c.Request.Context(), eventapp.CreateTeamInput{
		EventID:   eventID,
		Name:      req.Name,
		CaptainID: runnerID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// GetTeam returns a single team by ID
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid team ID")
		return
	}

	result, err := h.teamService.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListTeams lists an event's teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid event ID")
		return
	}

	result, err := h.teamService.ListTeams(c.Request.Context(), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListMembers lists a team's members
func (h *TeamHandler) ListMembers(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid team ID")
		return
	}

	result, err := h.teamService.ListMembers(c.Request.Context(), teamID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// JoinTeam adds the authenticated runner to a team
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid team ID")
		return
	}

	if err := h.teamService.JoinTeam(c.Request.Context(), teamID, runnerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"joined": true})
}

// LeaveTeam removes the authenticated runner from a team
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid team ID")
		return
	}

	if err := h.teamService.LeaveTeam(c.Request.Context(), teamID, runnerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteTeam disbands a team, captain only
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	runnerID, err := getRunnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid team ID")
		return
	}

	if err := h.teamService.DeleteTeam(c.Request.Context(), teamID, runnerID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
