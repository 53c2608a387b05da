package handlers

import (
	"net/http"
	"time"

	agentRepo "leadpilot/database/repository/agent"
	"leadpilot/models"
	"leadpilot/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AgentHandler covers agent registration, login, and scheduling settings.
type AgentHandler struct {
	Repo agentRepo.AgentRepository
}

func NewAgentHandler(repo agentRepo.AgentRepository) *AgentHandler {
	return &AgentHandler{Repo: repo}
}

// RegisterAgentHandler creates a new agent account.
func (h *AgentHandler) RegisterAgentHandler(c *gin.Context) {
	var input struct {
		UserID   string `json:"userId" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to hash password", "")
		return
	}

	agent := models.Agent{
		UserID:       input.UserID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Scheduling:   models.SchedulingSettings{Enabled: false},
	}
	id, err := h.Repo.Create(c.Request.Context(), agent)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create agent", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// AuthenticateAgentHandler verifies credentials and issues a JWT.
func (h *AgentHandler) AuthenticateAgentHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	agent, err := h.Repo.GetByEmail(c.Request.Context(), input.Email)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(input.Password)); err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateToken(agent.ID, agent.Email, 24*time.Hour)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "agentId": agent.ID})
}

// UpdateSchedulingSettingsHandler replaces the agent's scheduling settings.
// The engine re-reads settings on every booking call, so changes apply to
// the next request immediately.
func (h *AgentHandler) UpdateSchedulingSettingsHandler(c *gin.Context) {
	agentID := c.Param("agentID")
	var settings models.SchedulingSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Repo.UpdateScheduling(c.Request.Context(), agentID, settings); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update settings", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateFCMTokenHandler registers the agent's device for push notifications.
func (h *AgentHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var input struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Repo.UpdateFCMToken(c.Request.Context(), c.Param("agentID"), input.FCMToken); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update device token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
