package agentRepo

import (
	"context"

	"leadpilot/database"
	"leadpilot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AgentRepository interface {
	Create(ctx context.Context, agent models.Agent) (string, error)
	GetByID(ctx context.Context, id string) (*models.Agent, error)
	GetByEmail(ctx context.Context, email string) (*models.Agent, error)
	UpdateScheduling(ctx context.Context, id string, settings models.SchedulingSettings) error
	UpdateFCMToken(ctx context.Context, id, fcmToken string) error
}

type mongoAgentRepo struct {
	coll *mongo.Collection
}

// NewMongoAgentRepo returns a new AgentRepository instance using MongoDB.
func NewMongoAgentRepo() AgentRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoAgentRepo{
		coll: db.Collection("agents"),
	}
}
