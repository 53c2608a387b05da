package integrationRepo

import (
	"context"
	"errors"
	"time"

	"leadpilot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Upsert stores the calendar connection for a user, replacing any existing one.
func (r *mongoIntegrationRepo) Upsert(ctx context.Context, integration models.CalendarIntegration) error {
	if integration.ID == "" {
		integration.ID = uuid.New().String()
	}
	if integration.CalendarID == "" {
		integration.CalendarID = "primary"
	}
	integration.UpdatedAt = time.Now()
	if integration.CreatedAt.IsZero() {
		integration.CreatedAt = integration.UpdatedAt
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"userId": integration.UserID}, integration, opts)
	return err
}

func (r *mongoIntegrationRepo) GetByUserID(ctx context.Context, userID string) (*models.CalendarIntegration, error) {
	var integration models.CalendarIntegration
	err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&integration)
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

// UpdateTokens persists a refreshed provider token pair.
func (r *mongoIntegrationRepo) UpdateTokens(ctx context.Context, userID, accessToken, refreshToken string, expiry time.Time) error {
	set := bson.M{
		"accessToken": accessToken,
		"tokenExpiry": expiry,
		"updatedAt":   time.Now(),
	}
	if refreshToken != "" {
		set["refreshToken"] = refreshToken
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("integration not found")
	}
	return nil
}

func (r *mongoIntegrationRepo) Disconnect(ctx context.Context, userID string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"userId": userID}, bson.M{
		"$set": bson.M{"connected": false, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("integration not found")
	}
	return nil
}
