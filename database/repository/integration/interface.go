package integrationRepo

import (
	"context"
	"time"

	"leadpilot/database"
	"leadpilot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type IntegrationRepository interface {
	Upsert(ctx context.Context, integration models.CalendarIntegration) error
	GetByUserID(ctx context.Context, userID string) (*models.CalendarIntegration, error)
	UpdateTokens(ctx context.Context, userID, accessToken, refreshToken string, expiry time.Time) error
	Disconnect(ctx context.Context, userID string) error
}

type mongoIntegrationRepo struct {
	coll *mongo.Collection
}

// NewMongoIntegrationRepo returns a new IntegrationRepository instance using MongoDB.
func NewMongoIntegrationRepo() IntegrationRepository {
	db := database.MongoClient.Database(database.DBName)
	return &mongoIntegrationRepo{
		coll: db.Collection("calendar_integrations"),
	}
}
