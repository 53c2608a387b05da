package scheduling

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	conferencePollAttempts = 3
	conferencePollDelay    = 2 * time.Second
)

// EventCreator inserts the meeting event and resolves its conference link.
// The provider may report the conference as pending at insert time; the
// creator then polls a bounded number of times before settling for the plain
// event link.
type EventCreator struct {
	Calendar CalendarClient
	Logger   *zap.Logger
}

// CreateMeeting inserts the event and drives the conference link resolution.
// Booking never fails because a conference stayed pending: the plain event
// link is kept as a degraded fallback.
func (ec *EventCreator) CreateMeeting(ctx context.Context, slot Slot, policy *SchedulingPolicy, attendees []string, title, description string) (*MeetingEventCreation, error) {
	req := EventRequest{
		ID:                  newEventID(),
		Summary:             title,
		Description:         description,
		Start:               slot.Start,
		End:                 slot.End,
		Timezone:            policy.Timezone,
		Attendees:           attendees,
		RequestConference:   true,
		ConferenceRequestID: uuid.New().String(),
	}

	created, err := ec.Calendar.InsertEvent(ctx, req)
	if err != nil {
		if IsCode(err, CodeTokenExpired) {
			return nil, err
		}
		return nil, &SchedulingError{Code: CodeProviderInsertFailed, Message: err.Error()}
	}

	link := created.ConferenceLink
	if link == "" || created.ConferencePending {
		link = ec.pollConferenceLink(ctx, created)
	}

	fellBack := false
	if link == "" {
		link = created.HTMLLink
		fellBack = true
		ec.Logger.Warn("conference link unresolved, falling back to event link",
			zap.String("eventID", created.ID))
	}

	return &MeetingEventCreation{
		CalendarEventID:    created.ID,
		ConferenceLink:     link,
		FellBackToHTMLLink: fellBack,
	}, nil
}

// pollConferenceLink re-fetches the event until a joinable video link shows
// up or the retry budget runs out. Attempts are strictly sequential.
func (ec *EventCreator) pollConferenceLink(ctx context.Context, created *ProviderEvent) string {
	var link string
	done, err := retryWithFixedDelay(ctx, conferencePollAttempts, conferencePollDelay, func(ctx context.Context) (bool, error) {
		ev, fetchErr := ec.Calendar.GetEvent(ctx, created.ID)
		if fetchErr != nil {
			// A failed poll is absorbed; the fallback link still works.
			ec.Logger.Warn("conference poll fetch failed",
				zap.String("eventID", created.ID), zap.Error(fetchErr))
			return false, nil
		}
		if ev.ConferenceLink != "" && !ev.ConferencePending {
			link = ev.ConferenceLink
			return true, nil
		}
		return false, nil
	})
	if err != nil || !done {
		return ""
	}
	return link
}

// newEventID generates a client-side event id so a retried insert after a
// lost response cannot create a second event. Google accepts base32hex ids;
// a dash-stripped uuid stays inside that alphabet.
func newEventID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
