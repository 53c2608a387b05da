package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadpilot/config"
	"leadpilot/cron"
	"leadpilot/database"
	agentRepoPkg "leadpilot/database/repository/agent"
	conversationRepoPkg "leadpilot/database/repository/conversation"
	integrationRepoPkg "leadpilot/database/repository/integration"
	meetingRepoPkg "leadpilot/database/repository/meeting"
	"leadpilot/handlers"
	"leadpilot/middleware"
	"leadpilot/models"
	"leadpilot/routes"
	"leadpilot/services/messaging"
	"leadpilot/services/notification"
	"leadpilot/services/scheduling"
	"leadpilot/services/tasks"
	"leadpilot/services/token"
	"leadpilot/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitTokenCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	agentRepo := agentRepoPkg.NewMongoAgentRepo()
	convRepo := conversationRepoPkg.NewMongoConversationRepo()
	integRepo := integrationRepoPkg.NewMongoIntegrationRepo()
	meetingRepo := meetingRepoPkg.NewMongoMeetingRepo()

	// Outbound platform senders share the Graph API credentials.
	cfg := config.AppConfig
	dispatcher := messaging.NewDispatcher(map[string]messaging.Sender{
		models.PlatformWhatsApp:  messaging.NewGraphSender(models.PlatformWhatsApp, cfg.GraphAPIBaseURL, cfg.GraphAccessToken, cfg.GraphSenderID),
		models.PlatformMessenger: messaging.NewGraphSender(models.PlatformMessenger, cfg.GraphAPIBaseURL, cfg.GraphAccessToken, cfg.GraphSenderID),
		models.PlatformInstagram: messaging.NewGraphSender(models.PlatformInstagram, cfg.GraphAPIBaseURL, cfg.GraphAccessToken, cfg.GraphSenderID),
	}, logger)

	announcer := &notification.BookingAnnouncer{
		Messages: dispatcher,
		Logger:   logger,
	}
	var pushSvc notification.NotificationService
	fcmSvc, err := notification.NewFCMNotificationService(context.Background(), agentRepo, logger)
	if err != nil {
		logger.Sugar().Warnf("main: agent push disabled, fcm init failed: %v", err)
	} else {
		pushSvc = fcmSvc
		announcer.Push = fcmSvc
	}

	refresher := token.NewRefresher(integRepo, utils.GetTokenCacheClient(), logger)
	reminderQueue := tasks.NewReminderQueue(logger)

	calendarFactory := func(ctx context.Context, integration *models.CalendarIntegration, loc *time.Location) (scheduling.CalendarClient, error) {
		calendarID := integration.CalendarID
		if calendarID == "" {
			calendarID = "primary"
		}
		ts := refresher.TokenSource(ctx, integration)
		return scheduling.NewGoogleCalendarClient(ctx, ts, calendarID, loc, logger)
	}

	schedulingService := &scheduling.DefaultSchedulingService{
		AgentRepo:       agentRepo,
		IntegrationRepo: integRepo,
		MeetingRepo:     meetingRepo,
		ConvRepo:        convRepo,
		NewCalendar:     calendarFactory,
		Notifier:        announcer,
		Reminders:       reminderQueue,
		Logger:          logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Agent:        handlers.NewAgentHandler(agentRepo),
		Conversation: handlers.NewConversationHandler(convRepo),
		Integration:  handlers.NewIntegrationHandler(integRepo, refresher),
		Scheduling:   handlers.NewSchedulingHandler(schedulingService, logger),
		Webhook:      handlers.NewWebhookHandler(convRepo, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the reminder worker alongside the HTTP server.
	cron.InitReminderWorker(pushSvc, dispatcher, convRepo)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
