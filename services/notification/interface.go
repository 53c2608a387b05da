package notification

import "context"

// NotificationService sends push notifications to agents' devices.
type NotificationService interface {
	SendAgentPush(ctx context.Context, agentID, title, body string, data map[string]string) error
}
