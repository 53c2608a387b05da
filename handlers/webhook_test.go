package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadpilot/config"
	"leadpilot/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryConvRepo struct {
	convs    []models.Conversation
	messages []models.InboundMessage
}

func (m *memoryConvRepo) Create(ctx context.Context, conv models.Conversation) (string, error) {
	conv.ID = "conv-" + conv.Lead.Handle
	m.convs = append(m.convs, conv)
	return conv.ID, nil
}

func (m *memoryConvRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	for i := range m.convs {
		if m.convs[i].ID == id {
			return &m.convs[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memoryConvRepo) GetByPlatformHandle(ctx context.Context, platform, handle string) (*models.Conversation, error) {
	for i := range m.convs {
		if m.convs[i].Platform == platform && m.convs[i].Lead.Handle == handle {
			return &m.convs[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (m *memoryConvRepo) ListByUserID(ctx context.Context, userID string, limit int64) ([]models.Conversation, error) {
	return m.convs, nil
}

func (m *memoryConvRepo) UpdateLead(ctx context.Context, id string, lead models.Lead) error {
	return nil
}

func (m *memoryConvRepo) AppendMessage(ctx context.Context, msg models.InboundMessage) error {
	m.messages = append(m.messages, msg)
	return nil
}

func newWebhookRouter(repo *memoryConvRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWebhookHandler(repo, zap.NewNop())
	r := gin.New()
	r.GET("/api/webhooks/:platform", h.VerifyWebhookHandler)
	r.POST("/api/webhooks/:platform", h.ReceiveWebhookHandler)
	return r
}

func TestVerifyWebhookHandler(t *testing.T) {
	config.AppConfig.WebhookVerifyToken = "verify-me"
	r := newWebhookRouter(&memoryConvRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/webhooks/whatsapp?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=12345", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "12345", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/webhooks/whatsapp?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceiveWebhookHandler_WhatsAppFirstContact(t *testing.T) {
	repo := &memoryConvRepo{}
	r := newWebhookRouter(repo)

	payload := `{
		"entry": [{
			"id": "business-1",
			"changes": [{
				"value": {
					"messages": [{
						"id": "wamid.1",
						"from": "15551234567",
						"text": {"body": "Can we talk tomorrow?"}
					}]
				}
			}]
		}]
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/whatsapp", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	require.Len(t, repo.convs, 1)
	assert.Equal(t, models.PlatformWhatsApp, repo.convs[0].Platform)
	assert.Equal(t, "15551234567", repo.convs[0].Lead.Handle)
	assert.Equal(t, "business-1", repo.convs[0].UserID)

	require.Len(t, repo.messages, 1)
	assert.Equal(t, "wamid.1", repo.messages[0].ID)
	assert.Equal(t, "Can we talk tomorrow?", repo.messages[0].Text)
	assert.Equal(t, repo.convs[0].ID, repo.messages[0].ConversationID)
}

func TestReceiveWebhookHandler_MessengerExistingConversation(t *testing.T) {
	repo := &memoryConvRepo{convs: []models.Conversation{{
		ID:       "conv-psid-42",
		UserID:   "page-1",
		Platform: models.PlatformMessenger,
		Lead:     models.Lead{Handle: "psid-42"},
	}}}
	r := newWebhookRouter(repo)

	payload := `{
		"entry": [{
			"id": "page-1",
			"messaging": [{
				"sender": {"id": "psid-42"},
				"message": {"mid": "m.1", "text": "hi again"}
			}]
		}]
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/messenger", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, repo.convs, 1, "no duplicate conversation")
	require.Len(t, repo.messages, 1)
	assert.Equal(t, "conv-psid-42", repo.messages[0].ConversationID)
}

func TestReceiveWebhookHandler_UnknownPlatform(t *testing.T) {
	r := newWebhookRouter(&memoryConvRepo{})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/telegram", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
