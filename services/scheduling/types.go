package scheduling

import (
	"context"
	"time"
)

// BusyInterval is a half-open [Start, End) range during which the calendar
// owner is already committed. Produced only by the calendar client; the
// engine never mutates these.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Slot is a candidate free range of exactly the policy duration. Slots are
// transient: created during one scan, returned to the caller or consumed by
// the event creator, never persisted.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// EventRequest describes the calendar event to insert.
type EventRequest struct {
	ID                  string // client-generated idempotency key
	Summary             string
	Description         string
	Start               time.Time
	End                 time.Time
	Timezone            string
	Attendees           []string
	RequestConference   bool
	ConferenceRequestID string
}

// ProviderEvent is the engine's view of a provider calendar event, reduced
// to the fields the booking flow needs.
type ProviderEvent struct {
	ID                string
	HTMLLink          string
	HangoutLink       string
	ConferenceLink    string
	ConferencePending bool
	Start             time.Time
	End               time.Time
}

// CalendarClient is the boundary to the external calendar provider.
type CalendarClient interface {
	ListBusy(ctx context.Context, timeMin, timeMax time.Time) ([]BusyInterval, error)
	InsertEvent(ctx context.Context, req EventRequest) (*ProviderEvent, error)
	GetEvent(ctx context.Context, eventID string) (*ProviderEvent, error)
}

// MeetingEventCreation is the outcome of creating a meeting event.
type MeetingEventCreation struct {
	CalendarEventID    string
	ConferenceLink     string
	FellBackToHTMLLink bool
}

// BookingRequest is the input to CreateMeeting.
type BookingRequest struct {
	UserID         string `json:"userId"`
	ConversationID string `json:"conversationId"`
	LeadName       string `json:"leadName"`
	LeadEmail      string `json:"leadEmail,omitempty"`
	LeadPhone      string `json:"leadPhone,omitempty"`
	AgentID        string `json:"agentId,omitempty"`
	ExplicitStart  string `json:"customDate,omitempty"` // RFC 3339, optional
}

// BookingResult is returned to the caller after a successful booking.
type BookingResult struct {
	MeetingID       string    `json:"meetingId"`
	CalendarEventID string    `json:"calendarEventId"`
	MeetingDate     time.Time `json:"meetingDate"`
	DurationMinutes int       `json:"durationMinutes"`
	ConferenceLink  string    `json:"conferenceLink"`
	Title           string    `json:"title"`
}

// AvailabilityResult is the advisory slot listing for an agent.
type AvailabilityResult struct {
	Slots           []Slot `json:"slots"`
	Timezone        string `json:"timezone"`
	DurationMinutes int    `json:"durationMinutes"`
	WorkHours       string `json:"workHours"`
}
