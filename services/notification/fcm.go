package notification

import (
	"context"
	"fmt"

	"leadpilot/config"
	agentRepo "leadpilot/database/repository/agent"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// FCMNotificationService delivers agent pushes through Firebase Cloud
// Messaging.
type FCMNotificationService struct {
	client *messaging.Client
	agents agentRepo.AgentRepository
	logger *zap.Logger
}

// NewFCMNotificationService initializes the Firebase app from the configured
// service account file.
func NewFCMNotificationService(ctx context.Context, agents agentRepo.AgentRepository, logger *zap.Logger) (*FCMNotificationService, error) {
	opts := []option.ClientOption{}
	if file := config.AppConfig.FirebaseCredentialsFile; file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fcm client: %w", err)
	}
	return &FCMNotificationService{client: client, agents: agents, logger: logger}, nil
}

// SendAgentPush sends a data-carrying notification to the agent's device.
func (s *FCMNotificationService) SendAgentPush(ctx context.Context, agentID, title, body string, data map[string]string) error {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return fmt.Errorf("agent %s not found: %w", agentID, err)
	}
	if agent.FCMToken == "" {
		s.logger.Debug("agent has no registered device token", zap.String("agentID", agentID))
		return nil
	}

	msg := &messaging.Message{
		Token: agent.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm send failed: %w", err)
	}
	return nil
}
