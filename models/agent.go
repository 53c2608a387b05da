package models

import "time"

// Agent represents a workspace member who owns conversations and can take
// meetings booked from the inbox.
type Agent struct {
	ID           string             `bson:"id" json:"id"`
	UserID       string             `bson:"userId" json:"userId"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	AuthToken    string             `bson:"authToken,omitempty" json:"-"`
	FCMToken     string             `bson:"fcmToken,omitempty" json:"-"`
	Scheduling   SchedulingSettings `bson:"scheduling" json:"scheduling"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SchedulingSettings is the raw per-agent scheduling configuration as stored.
// It is resolved into a scheduling policy fresh on every booking call;
// blank fields fall back to workspace defaults at resolution time.
type SchedulingSettings struct {
	Enabled         bool     `bson:"enabled" json:"enabled"`
	DurationMinutes int      `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	BufferMinutes   int      `bson:"bufferMinutes,omitempty" json:"bufferMinutes,omitempty"`
	WorkStart       string   `bson:"workStart,omitempty" json:"workStart,omitempty"` // "09:00"
	WorkEnd         string   `bson:"workEnd,omitempty" json:"workEnd,omitempty"`     // "18:00"
	WorkDays        []string `bson:"workDays,omitempty" json:"workDays,omitempty"`   // lowercase weekday names
	Timezone        string   `bson:"timezone,omitempty" json:"timezone,omitempty"`   // IANA zone
	MeetingTitle    string   `bson:"meetingTitle,omitempty" json:"meetingTitle,omitempty"`
}
