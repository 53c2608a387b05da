package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadpilot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGraphSender_WhatsAppWireShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewGraphSender(models.PlatformWhatsApp, srv.URL, "secret-token", "15550001111")
	err := sender.SendText(context.Background(), "15551234567", "Your meeting is confirmed")
	require.NoError(t, err)

	assert.Equal(t, "/15550001111/messages", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "whatsapp", gotBody["messaging_product"])
	assert.Equal(t, "15551234567", gotBody["to"])
	assert.Equal(t, map[string]any{"body": "Your meeting is confirmed"}, gotBody["text"])
}

func TestGraphSender_MessengerWireShape(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := NewGraphSender(models.PlatformMessenger, srv.URL, "secret-token", "")
	err := sender.SendText(context.Background(), "psid-42", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/me/messages", gotPath)
	assert.Equal(t, map[string]any{"id": "psid-42"}, gotBody["recipient"])
	assert.Equal(t, map[string]any{"text": "hello"}, gotBody["message"])
}

func TestGraphSender_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewGraphSender(models.PlatformWhatsApp, srv.URL, "bad", "15550001111")
	err := sender.SendText(context.Background(), "15551234567", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestDispatcher_RoutesByPlatform(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher(map[string]Sender{
		models.PlatformWhatsApp: NewGraphSender(models.PlatformWhatsApp, srv.URL, "tok", "111"),
	}, zap.NewNop())

	assert.NoError(t, d.Send(context.Background(), models.PlatformWhatsApp, "15551234567", "hi"))
	assert.Error(t, d.Send(context.Background(), "telegram", "handle", "hi"),
		"unregistered platform is rejected")
}
