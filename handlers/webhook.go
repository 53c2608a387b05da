package handlers

import (
	"net/http"
	"time"

	"leadpilot/config"
	conversationRepo "leadpilot/database/repository/conversation"
	"leadpilot/models"
	"leadpilot/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WebhookHandler receives platform webhooks and normalizes them into
// conversations and inbound messages.
type WebhookHandler struct {
	ConvRepo conversationRepo.ConversationRepository
	Logger   *zap.Logger
}

func NewWebhookHandler(convRepo conversationRepo.ConversationRepository, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{ConvRepo: convRepo, Logger: logger}
}

// VerifyWebhookHandler answers the platform's subscription challenge.
// GET /api/webhooks/:platform?hub.mode=subscribe&hub.verify_token=...&hub.challenge=...
func (h *WebhookHandler) VerifyWebhookHandler(c *gin.Context) {
	mode := c.Query("hub.mode")
	verifyToken := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "subscribe" || verifyToken != config.AppConfig.WebhookVerifyToken {
		c.String(http.StatusForbidden, "verification failed")
		return
	}
	c.String(http.StatusOK, challenge)
}

// metaWebhookPayload is the shared envelope the Graph API posts for
// whatsapp, messenger and instagram events. Only the fields we consume
// are declared.
type metaWebhookPayload struct {
	Entry []struct {
		ID        string `json:"id"`
		Messaging []struct {
			Sender struct {
				ID string `json:"id"`
			} `json:"sender"`
			Timestamp int64 `json:"timestamp"`
			Message   struct {
				MID  string `json:"mid"`
				Text string `json:"text"`
			} `json:"message"`
		} `json:"messaging"`
		Changes []struct {
			Value struct {
				Messages []struct {
					ID   string `json:"id"`
					From string `json:"from"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// ReceiveWebhookHandler normalizes an inbound event and appends it to the
// matching conversation, creating one on first contact.
// POST /api/webhooks/:platform
func (h *WebhookHandler) ReceiveWebhookHandler(c *gin.Context) {
	platform := c.Param("platform")
	switch platform {
	case models.PlatformWhatsApp, models.PlatformInstagram, models.PlatformMessenger:
	default:
		utils.JSONError(c, http.StatusBadRequest, "unknown platform", platform)
		return
	}

	var payload metaWebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}

	for _, entry := range payload.Entry {
		// Messenger and instagram deliver under "messaging"; whatsapp
		// delivers under "changes".
		for _, m := range entry.Messaging {
			if m.Message.Text == "" {
				continue
			}
			h.ingest(c, platform, entry.ID, m.Sender.ID, m.Message.MID, m.Message.Text)
		}
		for _, ch := range entry.Changes {
			for _, m := range ch.Value.Messages {
				if m.Text.Body == "" {
					continue
				}
				h.ingest(c, platform, entry.ID, m.From, m.ID, m.Text.Body)
			}
		}
	}

	// The platform only needs an acknowledgement; failures are logged and
	// redelivered by the platform's retry policy.
	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *WebhookHandler) ingest(c *gin.Context, platform, accountID, senderHandle, messageID, text string) {
	ctx := c.Request.Context()

	conv, err := h.ConvRepo.GetByPlatformHandle(ctx, platform, senderHandle)
	if err != nil || conv == nil {
		newConv := models.Conversation{
			UserID:   accountID,
			Platform: platform,
			Lead:     models.Lead{Handle: senderHandle},
		}
		id, createErr := h.ConvRepo.Create(ctx, newConv)
		if createErr != nil {
			h.Logger.Error("failed to create conversation from webhook",
				zap.String("platform", platform),
				zap.String("handle", senderHandle),
				zap.Error(createErr))
			return
		}
		newConv.ID = id
		conv = &newConv
	}

	if messageID == "" {
		messageID = uuid.New().String()
	}
	msg := models.InboundMessage{
		ID:             messageID,
		ConversationID: conv.ID,
		Platform:       platform,
		SenderHandle:   senderHandle,
		Text:           text,
		ReceivedAt:     time.Now().UTC(),
	}
	if err := h.ConvRepo.AppendMessage(ctx, msg); err != nil {
		h.Logger.Error("failed to append inbound message",
			zap.String("conversationId", conv.ID),
			zap.Error(err))
	}
}
