package notification

import (
	"context"
	"fmt"

	"leadpilot/models"
	"leadpilot/services/messaging"

	"go.uber.org/zap"
)

// BookingAnnouncer fans a fresh booking out to the agent (push) and the lead
// (platform message). Both legs are best-effort; the booking has already
// succeeded by the time this runs.
type BookingAnnouncer struct {
	Push     NotificationService
	Messages *messaging.Dispatcher
	Logger   *zap.Logger
}

func (a *BookingAnnouncer) NotifyBooked(ctx context.Context, conv *models.Conversation, record *models.MeetingRecord) {
	when := record.StartTime.Format("Mon Jan 2 15:04 MST")

	if a.Push != nil && record.AgentID != "" {
		data := map[string]string{
			"meetingId":      record.ID,
			"conversationId": record.ConversationID,
		}
		title := "New meeting booked"
		body := fmt.Sprintf("%s on %s", record.LeadName, when)
		if err := a.Push.SendAgentPush(ctx, record.AgentID, title, body, data); err != nil {
			a.Logger.Warn("booking push to agent failed",
				zap.String("agentID", record.AgentID), zap.Error(err))
		}
	}

	if a.Messages != nil && conv.Lead.Handle != "" {
		text := fmt.Sprintf("Your meeting is confirmed for %s. Join link: %s", when, record.ConferenceLink)
		if err := a.Messages.Send(ctx, conv.Platform, conv.Lead.Handle, text); err != nil {
			a.Logger.Warn("booking confirmation to lead failed",
				zap.String("conversationId", conv.ID), zap.Error(err))
		}
	}
}
