package conversationRepo

import (
	"context"
	"errors"
	"time"

	"leadpilot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoConversationRepo) Create(ctx context.Context, conv models.Conversation) (string, error) {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, conv)
	if err != nil {
		return "", err
	}
	return conv.ID, nil
}

func (r *mongoConversationRepo) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&conv)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetByPlatformHandle resolves the thread a webhook message belongs to.
func (r *mongoConversationRepo) GetByPlatformHandle(ctx context.Context, platform, handle string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.coll.FindOne(ctx, bson.M{"platform": platform, "lead.handle": handle}).Decode(&conv)
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *mongoConversationRepo) ListByUserID(ctx context.Context, userID string, limit int64) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.M{"lastMessageAt": -1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var convs []models.Conversation
	if err := cursor.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *mongoConversationRepo) UpdateLead(ctx context.Context, id string, lead models.Lead) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"lead": lead, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("conversation not found")
	}
	return nil
}

// AppendMessage stores a normalized inbound message and bumps the thread's
// last-activity timestamp.
func (r *mongoConversationRepo) AppendMessage(ctx context.Context, msg models.InboundMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.ReceivedAt.IsZero() {
		msg.ReceivedAt = time.Now()
	}

	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return err
	}

	_, err := r.coll.UpdateOne(ctx, bson.M{"id": msg.ConversationID}, bson.M{
		"$set": bson.M{"lastMessageAt": msg.ReceivedAt, "updatedAt": time.Now()},
	})
	return err
}
