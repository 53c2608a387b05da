package scheduling

import (
	"context"
	"time"

	agentRepo "leadpilot/database/repository/agent"
	conversationRepo "leadpilot/database/repository/conversation"
	integrationRepo "leadpilot/database/repository/integration"
	meetingRepo "leadpilot/database/repository/meeting"
	"leadpilot/models"

	"go.uber.org/zap"
)

// SchedulingService is the booking engine's public surface.
type SchedulingService interface {
	CheckAvailability(ctx context.Context, agentID string, horizonDays int) (*AvailabilityResult, error)
	CreateMeeting(ctx context.Context, req BookingRequest) (*BookingResult, error)
}

// CalendarFactory builds a calendar client for a connected integration.
// Injected so the orchestrator never touches provider wiring directly.
type CalendarFactory func(ctx context.Context, integration *models.CalendarIntegration, loc *time.Location) (CalendarClient, error)

// BookingNotifier delivers the booking confirmation outside the calendar
// (push to the agent, message to the lead). Failures are the notifier's
// problem; the orchestrator never blocks on it.
type BookingNotifier interface {
	NotifyBooked(ctx context.Context, conv *models.Conversation, record *models.MeetingRecord)
}

// ReminderScheduler enqueues a reminder ahead of the meeting start.
type ReminderScheduler interface {
	ScheduleReminder(record *models.MeetingRecord) error
}

// DefaultSchedulingService implements SchedulingService.
type DefaultSchedulingService struct {
	AgentRepo       agentRepo.AgentRepository
	IntegrationRepo integrationRepo.IntegrationRepository
	MeetingRepo     meetingRepo.MeetingRepository
	ConvRepo        conversationRepo.ConversationRepository
	NewCalendar     CalendarFactory
	Notifier        BookingNotifier
	Reminders       ReminderScheduler
	Logger          *zap.Logger
}
