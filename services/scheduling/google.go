package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GoogleCalendarClient implements CalendarClient against the Google Calendar
// API. One client serves one connected calendar.
type GoogleCalendarClient struct {
	svc        *calendar.Service
	calendarID string
	loc        *time.Location
	logger     *zap.Logger
}

// NewGoogleCalendarClient builds a client from an authenticated token source.
// loc is the agent's scheduling timezone, used to expand date-only (all-day)
// events into concrete busy intervals.
func NewGoogleCalendarClient(ctx context.Context, ts oauth2.TokenSource, calendarID string, loc *time.Location, logger *zap.Logger) (*GoogleCalendarClient, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if loc == nil {
		loc = time.UTC
	}
	return &GoogleCalendarClient{svc: svc, calendarID: calendarID, loc: loc, logger: logger}, nil
}

// ListBusy fetches events in [timeMin, timeMax) and reduces each to its
// start/end instants.
func (c *GoogleCalendarClient) ListBusy(ctx context.Context, timeMin, timeMax time.Time) ([]BusyInterval, error) {
	events, err := c.svc.Events.List(c.calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.mapError(err)
	}

	var busy []BusyInterval
	for _, item := range events.Items {
		if item.Start == nil || item.End == nil {
			continue
		}
		if item.Transparency == "transparent" {
			// Marked "free" on the calendar; it does not block slots.
			continue
		}
		interval, ok := c.toInterval(item)
		if !ok {
			continue
		}
		busy = append(busy, interval)
	}
	return busy, nil
}

// InsertEvent creates the calendar event, optionally requesting a conference.
func (c *GoogleCalendarClient) InsertEvent(ctx context.Context, req EventRequest) (*ProviderEvent, error) {
	ev := &calendar.Event{
		Id:          req.ID,
		Summary:     req.Summary,
		Description: req.Description,
		Start: &calendar.EventDateTime{
			DateTime: req.Start.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: req.End.Format(time.RFC3339),
			TimeZone: req.Timezone,
		},
	}
	for _, email := range req.Attendees {
		ev.Attendees = append(ev.Attendees, &calendar.EventAttendee{Email: email})
	}
	if req.RequestConference {
		ev.ConferenceData = &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: req.ConferenceRequestID,
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		}
	}

	created, err := c.svc.Events.Insert(c.calendarID, ev).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.mapError(err)
	}
	return c.toProviderEvent(created), nil
}

// GetEvent re-fetches an event by id, used by the conference link poller.
func (c *GoogleCalendarClient) GetEvent(ctx context.Context, eventID string) (*ProviderEvent, error) {
	ev, err := c.svc.Events.Get(c.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, c.mapError(err)
	}
	return c.toProviderEvent(ev), nil
}

func (c *GoogleCalendarClient) toInterval(item *calendar.Event) (BusyInterval, bool) {
	// Timed events carry RFC 3339 instants; all-day events carry dates only
	// and block the whole local day.
	if item.Start.DateTime != "" && item.End.DateTime != "" {
		start, errS := time.Parse(time.RFC3339, item.Start.DateTime)
		end, errE := time.Parse(time.RFC3339, item.End.DateTime)
		if errS != nil || errE != nil {
			c.logger.Warn("skipping event with unparseable times",
				zap.String("eventID", item.Id))
			return BusyInterval{}, false
		}
		return BusyInterval{Start: start, End: end}, true
	}
	if item.Start.Date != "" && item.End.Date != "" {
		start, errS := time.ParseInLocation("2006-01-02", item.Start.Date, c.loc)
		end, errE := time.ParseInLocation("2006-01-02", item.End.Date, c.loc)
		if errS != nil || errE != nil {
			return BusyInterval{}, false
		}
		return BusyInterval{Start: start, End: end}, true
	}
	return BusyInterval{}, false
}

func (c *GoogleCalendarClient) toProviderEvent(ev *calendar.Event) *ProviderEvent {
	out := &ProviderEvent{
		ID:          ev.Id,
		HTMLLink:    ev.HtmlLink,
		HangoutLink: ev.HangoutLink,
	}
	if ev.Start != nil && ev.Start.DateTime != "" {
		out.Start, _ = time.Parse(time.RFC3339, ev.Start.DateTime)
	}
	if ev.End != nil && ev.End.DateTime != "" {
		out.End, _ = time.Parse(time.RFC3339, ev.End.DateTime)
	}
	if ev.ConferenceData != nil {
		for _, ep := range ev.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" && ep.Uri != "" {
				out.ConferenceLink = ep.Uri
				break
			}
		}
		if cr := ev.ConferenceData.CreateRequest; cr != nil && cr.Status != nil {
			out.ConferencePending = cr.Status.StatusCode == "pending"
		}
	}
	if out.ConferenceLink == "" && ev.HangoutLink != "" {
		out.ConferenceLink = ev.HangoutLink
	}
	return out
}

// mapError normalizes provider auth failures onto ErrTokenExpired so the
// scan can abort as a whole instead of per day.
func (c *GoogleCalendarClient) mapError(err error) error {
	if gerr, ok := err.(*googleapi.Error); ok {
		if gerr.Code == 401 {
			return ErrTokenExpired
		}
		if gerr.Code == 403 && strings.Contains(gerr.Message, "authError") {
			return ErrTokenExpired
		}
	}
	return err
}
