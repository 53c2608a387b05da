package meetingRepo

import (
	"context"
	"errors"
	"time"

	"leadpilot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new meeting record and returns its ID.
func (r *mongoMeetingRepo) Create(ctx context.Context, record models.MeetingRecord) (string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Status == "" {
		record.Status = models.MeetingStatusScheduled
	}
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

// GetByID returns a meeting record by its ID.
func (r *mongoMeetingRepo) GetByID(ctx context.Context, id string) (*models.MeetingRecord, error) {
	var record models.MeetingRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetByConversationID fetches all meetings booked from a conversation.
func (r *mongoMeetingRepo) GetByConversationID(ctx context.Context, conversationID string) ([]models.MeetingRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"conversationId": conversationID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.MeetingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateStatus flips a meeting between scheduled and canceled.
func (r *mongoMeetingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("meeting not found")
	}
	return nil
}
