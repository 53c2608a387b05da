package models

import "time"

// Meeting status values.
const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCanceled  = "canceled"
)

// MeetingRecord is the local record of a meeting booked on the provider
// calendar. It is created once, after the provider event is confirmed, and
// the provider event remains the source of truth if the two ever disagree.
type MeetingRecord struct {
	ID              string            `bson:"id" json:"id"`
	UserID          string            `bson:"userId" json:"userId"`
	ConversationID  string            `bson:"conversationId" json:"conversationId"`
	AgentID         string            `bson:"agentId,omitempty" json:"agentId,omitempty"`
	CalendarEventID string            `bson:"calendarEventId" json:"calendarEventId"`
	StartTime       time.Time         `bson:"startTime" json:"startTime"`
	DurationMinutes int               `bson:"durationMinutes" json:"durationMinutes"`
	ConferenceLink  string            `bson:"conferenceLink" json:"conferenceLink"`
	LeadName        string            `bson:"leadName" json:"leadName"`
	LeadEmail       string            `bson:"leadEmail,omitempty" json:"leadEmail,omitempty"`
	LeadPhone       string            `bson:"leadPhone,omitempty" json:"leadPhone,omitempty"`
	Status          string            `bson:"status" json:"status"`
	Metadata        map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt       time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// ReminderPayload is the asynq task payload for a meeting reminder.
type ReminderPayload struct {
	MeetingID      string `json:"meetingId"`
	AgentID        string `json:"agentId"`
	ConversationID string `json:"conversationId"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	FireDate       string `json:"fireDate"`
}
