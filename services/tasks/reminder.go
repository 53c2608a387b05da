package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"leadpilot/config"
	"leadpilot/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// reminderLead is how far before the meeting start the reminder fires.
const reminderLead = time.Hour

// NewReminderTask builds the asynq task for a meeting reminder.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderSend, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderQueue enqueues meeting reminders on the asynq redis queue.
type ReminderQueue struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewReminderQueue(logger *zap.Logger) *ReminderQueue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderQueue{client: client, logger: logger}
}

// ScheduleReminder enqueues a reminder one hour before the meeting starts.
// Meetings starting sooner than that get no reminder.
func (q *ReminderQueue) ScheduleReminder(record *models.MeetingRecord) error {
	fireAt := record.StartTime.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		q.logger.Debug("meeting starts too soon for a reminder",
			zap.String("meetingId", record.ID))
		return nil
	}

	payload := models.ReminderPayload{
		MeetingID:      record.ID,
		AgentID:        record.AgentID,
		ConversationID: record.ConversationID,
		Title:          "Upcoming meeting",
		Body:           fmt.Sprintf("Meeting with %s at %s", record.LeadName, record.StartTime.Format("15:04 MST")),
		FireDate:       fireAt.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := q.client.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
