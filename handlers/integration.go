package handlers

import (
	"net/http"
	"time"

	integrationRepo "leadpilot/database/repository/integration"
	"leadpilot/models"
	"leadpilot/services/token"
	"leadpilot/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IntegrationHandler manages calendar provider connections.
type IntegrationHandler struct {
	Repo      integrationRepo.IntegrationRepository
	Refresher *token.Refresher
}

func NewIntegrationHandler(repo integrationRepo.IntegrationRepository, refresher *token.Refresher) *IntegrationHandler {
	return &IntegrationHandler{Repo: repo, Refresher: refresher}
}

// ConnectCalendarHandler stores the credentials produced by the OAuth
// exchange. The exchange itself happens on the client side; this endpoint
// receives the resulting token set.
func (h *IntegrationHandler) ConnectCalendarHandler(c *gin.Context) {
	var input struct {
		UserID       string    `json:"userId" binding:"required"`
		Provider     string    `json:"provider"`
		CalendarID   string    `json:"calendarId"`
		AccessToken  string    `json:"accessToken" binding:"required"`
		RefreshToken string    `json:"refreshToken" binding:"required"`
		TokenExpiry  time.Time `json:"tokenExpiry"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.Provider == "" {
		input.Provider = "google"
	}
	if input.CalendarID == "" {
		input.CalendarID = "primary"
	}

	now := time.Now().UTC()
	integration := models.CalendarIntegration{
		ID:           uuid.New().String(),
		UserID:       input.UserID,
		Provider:     input.Provider,
		CalendarID:   input.CalendarID,
		AccessToken:  input.AccessToken,
		RefreshToken: input.RefreshToken,
		TokenExpiry:  input.TokenExpiry,
		Connected:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.Repo.Upsert(c.Request.Context(), integration); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to store integration", err.Error())
		return
	}

	// A reconnect replaces the tokens, so any cached access token is stale.
	h.Refresher.Invalidate(c.Request.Context(), input.UserID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// IntegrationStatusHandler reports whether the user has a live calendar
// connection. Tokens are never echoed back.
func (h *IntegrationHandler) IntegrationStatusHandler(c *gin.Context) {
	integration, err := h.Repo.GetByUserID(c.Request.Context(), c.Param("userID"))
	if err != nil || integration == nil {
		c.JSON(http.StatusOK, gin.H{"connected": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"connected":  integration.Connected,
		"provider":   integration.Provider,
		"calendarId": integration.CalendarID,
	})
}

// DisconnectCalendarHandler removes the stored credentials.
func (h *IntegrationHandler) DisconnectCalendarHandler(c *gin.Context) {
	userID := c.Param("userID")
	if err := h.Repo.Disconnect(c.Request.Context(), userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to disconnect", err.Error())
		return
	}
	h.Refresher.Invalidate(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
