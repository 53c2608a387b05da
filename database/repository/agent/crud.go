package agentRepo

import (
	"context"
	"errors"
	"time"

	"leadpilot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoAgentRepo) Create(ctx context.Context, agent models.Agent) (string, error) {
	if agent.ID == "" {
		agent.ID = uuid.New().String()
	}
	agent.CreatedAt = time.Now()
	agent.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, agent)
	if err != nil {
		return "", err
	}
	return agent.ID, nil
}

func (r *mongoAgentRepo) GetByID(ctx context.Context, id string) (*models.Agent, error) {
	var agent models.Agent
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&agent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *mongoAgentRepo) GetByEmail(ctx context.Context, email string) (*models.Agent, error) {
	var agent models.Agent
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&agent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// UpdateScheduling replaces an agent's scheduling settings wholesale.
// The booking engine re-reads settings on every call, so a change here
// takes effect on the next request without any cache to bust.
func (r *mongoAgentRepo) UpdateScheduling(ctx context.Context, id string, settings models.SchedulingSettings) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"scheduling": settings, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("agent not found")
	}
	return nil
}

// UpdateFCMToken stores the device token push notifications go to.
func (r *mongoAgentRepo) UpdateFCMToken(ctx context.Context, id, fcmToken string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"fcmToken": fcmToken, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("agent not found")
	}
	return nil
}
