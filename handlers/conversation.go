package handlers

import (
	"net/http"
	"strconv"

	conversationRepo "leadpilot/database/repository/conversation"
	"leadpilot/models"
	"leadpilot/utils"

	"github.com/gin-gonic/gin"
)

// ConversationHandler covers the inbox CRUD glue around the booking engine.
type ConversationHandler struct {
	Repo conversationRepo.ConversationRepository
}

func NewConversationHandler(repo conversationRepo.ConversationRepository) *ConversationHandler {
	return &ConversationHandler{Repo: repo}
}

func (h *ConversationHandler) CreateConversationHandler(c *gin.Context) {
	var conv models.Conversation
	if err := c.ShouldBindJSON(&conv); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if conv.UserID == "" || conv.Platform == "" || conv.Lead.Handle == "" {
		utils.JSONError(c, http.StatusBadRequest, "userId, platform and lead.handle are required", "")
		return
	}

	id, err := h.Repo.Create(c.Request.Context(), conv)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create conversation", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *ConversationHandler) GetConversationHandler(c *gin.Context) {
	conv, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "conversation not found", "")
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *ConversationHandler) ListConversationsHandler(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "userId is required", "")
		return
	}
	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	convs, err := h.Repo.ListByUserID(c.Request.Context(), userID, limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list conversations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// UpdateLeadHandler updates the contact details on a conversation, typically
// after the lead shares an email to book a meeting with.
func (h *ConversationHandler) UpdateLeadHandler(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Repo.UpdateLead(c.Request.Context(), c.Param("id"), lead); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update lead", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
