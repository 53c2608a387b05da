package routes

import (
	"net/http"
	"time"

	"leadpilot/handlers"
	"leadpilot/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAgentRoutes registers agent account endpoints.
func RegisterAgentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/agents")
	{
		api.POST("/register", hb.Agent.RegisterAgentHandler)
		api.POST("/login", hb.Agent.AuthenticateAgentHandler)

		// Protected routes (require authentication).
		api.Use(middleware.JWTAuthMiddleware())
		api.PUT("/:agentID/scheduling", hb.Agent.UpdateSchedulingSettingsHandler)
		api.PUT("/:agentID/fcm-token", hb.Agent.UpdateFCMTokenHandler)
	}
}

// RegisterConversationRoutes registers the inbox endpoints.
func RegisterConversationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/conversations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("", hb.Conversation.CreateConversationHandler)
		api.GET("", hb.Conversation.ListConversationsHandler)
		api.GET("/:id", hb.Conversation.GetConversationHandler)
		api.PUT("/:id/lead", hb.Conversation.UpdateLeadHandler)
	}
}

// RegisterIntegrationRoutes registers calendar connection endpoints.
func RegisterIntegrationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/integrations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/calendar", hb.Integration.ConnectCalendarHandler)
		api.GET("/calendar/:userID", hb.Integration.IntegrationStatusHandler)
		api.DELETE("/calendar/:userID", hb.Integration.DisconnectCalendarHandler)
	}
}

// RegisterSchedulingRoutes sets up the endpoints for the booking engine.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/scheduling")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/availability/:agentID", hb.Scheduling.CheckAvailabilityHandler)
		api.POST("/meetings", hb.Scheduling.CreateMeetingHandler)
	}
}

// RegisterWebhookRoutes registers the platform webhook endpoints. These are
// called by the platforms themselves and authenticate via the verify token
// rather than a JWT.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/webhooks")
	{
		api.GET("/:platform", hb.Webhook.VerifyWebhookHandler)
		api.POST("/:platform", hb.Webhook.ReceiveWebhookHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm LeadPilot"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAgentRoutes(r, hb)
	RegisterConversationRoutes(r, hb)
	RegisterIntegrationRoutes(r, hb)
	RegisterSchedulingRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
	RegisterHealthRoute(r)
}
