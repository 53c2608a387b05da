package handlers

// HandlerBundle groups all HTTP handlers for route registration.
type HandlerBundle struct {
	Agent        *AgentHandler
	Conversation *ConversationHandler
	Integration  *IntegrationHandler
	Scheduling   *SchedulingHandler
	Webhook      *WebhookHandler
}
