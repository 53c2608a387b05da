package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"leadpilot/config"
	conversationRepo "leadpilot/database/repository/conversation"
	"leadpilot/models"
	"leadpilot/services/messaging"
	"leadpilot/services/notification"
	"leadpilot/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService, dispatcher *messaging.Dispatcher, convRepo conversationRepo.ConversationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(notifSvc, dispatcher, convRepo))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService, dispatcher *messaging.Dispatcher, convRepo conversationRepo.ConversationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] firing reminder for meeting %s", p.MeetingID)

		if notifSvc != nil && p.AgentID != "" {
			data := map[string]string{
				"meetingId": p.MeetingID,
				"fireDate":  p.FireDate,
			}
			if err := notifSvc.SendAgentPush(ctx, p.AgentID, p.Title, p.Body, data); err != nil {
				log.Printf("[ReminderHandler] agent push failed: %v", err)
			}
		}

		conv, err := convRepo.GetByID(ctx, p.ConversationID)
		if err != nil {
			log.Printf("[ReminderHandler] conversation lookup failed: %v", err)
			return nil
		}
		if conv.Lead.Handle == "" {
			return nil
		}

		text := fmt.Sprintf("Reminder: %s", p.Body)
		if err := dispatcher.Send(ctx, conv.Platform, conv.Lead.Handle, text); err != nil {
			log.Printf("[ReminderHandler] lead reminder failed: %v", err)
		}
		return nil
	}
}
