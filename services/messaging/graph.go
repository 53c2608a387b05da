package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leadpilot/models"
)

// graphSender talks to the Meta Graph API. WhatsApp posts to the business
// phone number's /messages endpoint; Messenger and Instagram share the
// /me/messages send API.
type graphSender struct {
	platform    string
	baseURL     string
	accessToken string
	senderID    string // WhatsApp business phone number id; unused elsewhere
	httpClient  *http.Client
}

// NewGraphSender returns a Sender for one Meta platform.
func NewGraphSender(platform, baseURL, accessToken, senderID string) Sender {
	return &graphSender{
		platform:    platform,
		baseURL:     baseURL,
		accessToken: accessToken,
		senderID:    senderID,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *graphSender) SendText(ctx context.Context, recipientHandle, text string) error {
	endpoint, payload := g.buildRequest(recipientHandle, text)

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%s send failed: status %d: %s", g.platform, resp.StatusCode, detail)
	}
	return nil
}

func (g *graphSender) buildRequest(recipientHandle, text string) (string, map[string]any) {
	if g.platform == models.PlatformWhatsApp {
		return fmt.Sprintf("%s/%s/messages", g.baseURL, g.senderID), map[string]any{
			"messaging_product": "whatsapp",
			"to":                recipientHandle,
			"type":              "text",
			"text":              map[string]any{"body": text},
		}
	}
	return fmt.Sprintf("%s/me/messages", g.baseURL), map[string]any{
		"recipient": map[string]any{"id": recipientHandle},
		"message":   map[string]any{"text": text},
	}
}
