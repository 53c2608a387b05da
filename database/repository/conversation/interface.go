package conversationRepo

import (
	"context"

	"leadpilot/database"
	"leadpilot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ConversationRepository interface {
	Create(ctx context.Context, conv models.Conversation) (string, error)
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	GetByPlatformHandle(ctx context.Context, platform, handle string) (*models.Conversation, error)
	ListByUserID(ctx context.Context, userID string, limit int64) ([]models.Conversation, error)
	UpdateLead(ctx context.Context, id string, lead models.Lead) error
	AppendMessage(ctx context.Context, msg models.InboundMessage) error
}

type mongoConversationRepo struct {
	coll     *mongo.Collection
	messages *mongo.Collection
}

// NewMongoConversationRepo returns a new ConversationRepository instance using MongoDB.
func NewMongoConversationRepo() ConversationRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoConversationRepo{
		coll:     db.Collection("conversations"),
		messages: db.Collection("messages"),
	}
}
