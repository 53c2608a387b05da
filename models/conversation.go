package models

import "time"

// Supported messaging platforms.
const (
	PlatformWhatsApp  = "whatsapp"
	PlatformInstagram = "instagram"
	PlatformMessenger = "messenger"
)

// Lead holds the contact details of the person on the other side of a
// conversation. Email and phone are optional; the handle is the
// platform-specific recipient identifier.
type Lead struct {
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email,omitempty" json:"email,omitempty"`
	Phone  string `bson:"phone,omitempty" json:"phone,omitempty"`
	Handle string `bson:"handle" json:"handle"`
}

// Conversation is a message thread with a lead on one platform.
type Conversation struct {
	ID            string    `bson:"id" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	AgentID       string    `bson:"agentId,omitempty" json:"agentId,omitempty"`
	Platform      string    `bson:"platform" json:"platform"`
	Lead          Lead      `bson:"lead" json:"lead"`
	LastMessageAt time.Time `bson:"lastMessageAt" json:"lastMessageAt"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// InboundMessage is a normalized message received from a platform webhook.
type InboundMessage struct {
	ID             string    `bson:"id" json:"id"`
	ConversationID string    `bson:"conversationId" json:"conversationId"`
	Platform       string    `bson:"platform" json:"platform"`
	SenderHandle   string    `bson:"senderHandle" json:"senderHandle"`
	Text           string    `bson:"text" json:"text"`
	ReceivedAt     time.Time `bson:"receivedAt" json:"receivedAt"`
}
