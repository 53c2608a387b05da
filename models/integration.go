package models

import "time"

// CalendarIntegration stores a user's connection to the calendar provider.
// The token exchange flow happens elsewhere; this record only carries the
// resulting credentials.
type CalendarIntegration struct {
	ID           string    `bson:"id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	Provider     string    `bson:"provider" json:"provider"` // "google"
	CalendarID   string    `bson:"calendarId" json:"calendarId"`
	AccessToken  string    `bson:"accessToken" json:"-"`
	RefreshToken string    `bson:"refreshToken" json:"-"`
	TokenExpiry  time.Time `bson:"tokenExpiry" json:"-"`
	Connected    bool      `bson:"connected" json:"connected"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
