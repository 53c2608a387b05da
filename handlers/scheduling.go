package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"leadpilot/services/scheduling"
	"leadpilot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchedulingHandler exposes the booking engine over HTTP.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
	Logger  *zap.Logger
}

func NewSchedulingHandler(svc scheduling.SchedulingService, logger *zap.Logger) *SchedulingHandler {
	return &SchedulingHandler{Service: svc, Logger: logger}
}

// CheckAvailabilityHandler returns open slots for an agent.
// GET /api/scheduling/availability/:agentID?days=10
func (h *SchedulingHandler) CheckAvailabilityHandler(c *gin.Context) {
	agentID := c.Param("agentID")
	if agentID == "" {
		utils.JSONError(c, http.StatusBadRequest, "agentID is required", "")
		return
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid days parameter", raw)
			return
		}
		days = parsed
	}

	result, err := h.Service.CheckAvailability(c.Request.Context(), agentID, days)
	if err != nil {
		h.respondSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"slots":           result.Slots,
		"timezone":        result.Timezone,
		"durationMinutes": result.DurationMinutes,
		"workHours":       result.WorkHours,
	})
}

// CreateMeetingHandler books a meeting from a conversation.
// POST /api/scheduling/meetings
func (h *SchedulingHandler) CreateMeetingHandler(c *gin.Context) {
	var req scheduling.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if req.ConversationID == "" {
		utils.JSONError(c, http.StatusBadRequest, "conversationId is required", "")
		return
	}

	result, err := h.Service.CreateMeeting(c.Request.Context(), req)
	if err != nil {
		h.respondSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"meeting": result,
	})
}

// respondSchedulingError maps engine error codes onto the HTTP boundary.
// Disabled/not-connected deliberately answer 200 with success:false so the
// caller's UI can branch without treating it as a transport fault.
func (h *SchedulingHandler) respondSchedulingError(c *gin.Context, err error) {
	var se *scheduling.SchedulingError
	if !errors.As(err, &se) {
		h.Logger.Error("scheduling request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "scheduling request failed", err.Error())
		return
	}

	switch se.Code {
	case scheduling.CodeInvalidDate:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   se.Code,
			"message": se.Message,
		})
	case scheduling.CodeSchedulingDisabled,
		scheduling.CodeCalendarNotConnected,
		scheduling.CodeNoAvailableSlots:
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   se.Code,
			"message": se.Message,
		})
	case scheduling.CodeTokenExpired:
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   se.Code,
			"message": "calendar authorization expired, reconnect the integration",
		})
	default:
		h.Logger.Error("scheduling request failed", zap.String("code", se.Code), zap.Error(se))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   se.Code,
			"message": se.Message,
		})
	}
}
