package meetingRepo

import (
	"context"
	"log"

	"leadpilot/database"
	"leadpilot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type MeetingRepository interface {
	Create(ctx context.Context, record models.MeetingRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.MeetingRecord, error)
	GetByConversationID(ctx context.Context, conversationID string) ([]models.MeetingRecord, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type mongoMeetingRepo struct {
	coll *mongo.Collection
}

// NewMongoMeetingRepo returns a new MeetingRepository instance using MongoDB.
func NewMongoMeetingRepo() MeetingRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &mongoMeetingRepo{
		coll: db.Collection("meetings"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("meeting repo: failed to ensure indexes: %v", err)
	}
	return repo
}
