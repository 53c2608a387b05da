package scheduling

import (
	"context"
	"fmt"
	"time"

	"leadpilot/models"

	"go.uber.org/zap"
)

const (
	// AdvisoryHorizonDays is the scan horizon for the availability check path.
	AdvisoryHorizonDays = 10
	// FallbackHorizonDays is the shorter horizon used when a booking request
	// arrives without an explicit start time.
	FallbackHorizonDays = 5
)

// CheckAvailability resolves the agent's policy and returns open slots over
// the horizon without creating anything.
func (s *DefaultSchedulingService) CheckAvailability(ctx context.Context, agentID string, horizonDays int) (*AvailabilityResult, error) {
	if horizonDays <= 0 || horizonDays > AdvisoryHorizonDays {
		horizonDays = AdvisoryHorizonDays
	}

	policy, _, client, err := s.prepare(ctx, agentID)
	if err != nil {
		return nil, err
	}

	finder := &SlotFinder{Calendar: client, Logger: s.Logger}
	slots, err := finder.FindSlots(ctx, policy, horizonDays, DefaultMaxSlots, time.Now())
	if err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		Slots:           slots,
		Timezone:        policy.Timezone,
		DurationMinutes: policy.DurationMinutes,
		WorkHours:       policy.WorkHours(),
	}, nil
}

// CreateMeeting books a meeting for the lead behind a conversation. When no
// explicit start is supplied it takes the first open slot on a short horizon.
func (s *DefaultSchedulingService) CreateMeeting(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	conv, err := s.ConvRepo.GetByID(ctx, req.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("conversation %s not found: %w", req.ConversationID, err)
	}

	agentID := req.AgentID
	if agentID == "" {
		agentID = conv.AgentID
	}

	// Validate the explicit start before touching the provider at all.
	var explicit *time.Time
	if req.ExplicitStart != "" {
		t, parseErr := time.Parse(time.RFC3339, req.ExplicitStart)
		if parseErr != nil || !t.After(time.Now()) {
			return nil, &SchedulingError{
				Code:    CodeInvalidDate,
				Message: fmt.Sprintf("customDate %q is not a valid future time", req.ExplicitStart),
			}
		}
		explicit = &t
	}

	policy, agent, client, err := s.prepare(ctx, agentID)
	if err != nil {
		return nil, err
	}

	var slot Slot
	if explicit != nil {
		slot = Slot{
			Start: *explicit,
			End:   explicit.Add(time.Duration(policy.DurationMinutes) * time.Minute),
		}
	} else {
		finder := &SlotFinder{Calendar: client, Logger: s.Logger}
		slots, findErr := finder.FindSlots(ctx, policy, FallbackHorizonDays, DefaultMaxSlots, time.Now())
		if findErr != nil {
			return nil, findErr
		}
		if len(slots) == 0 {
			return nil, &SchedulingError{
				Code:    CodeNoAvailableSlots,
				Message: fmt.Sprintf("no open slots in the next %d days", FallbackHorizonDays),
			}
		}
		slot = slots[0]
	}

	leadName := req.LeadName
	if leadName == "" {
		leadName = conv.Lead.Name
	}
	leadEmail := req.LeadEmail
	if leadEmail == "" {
		leadEmail = conv.Lead.Email
	}
	leadPhone := req.LeadPhone
	if leadPhone == "" {
		leadPhone = conv.Lead.Phone
	}

	title := policy.MeetingTitle
	if title == "" {
		title = fmt.Sprintf("Meeting with %s", leadName)
	}
	description := fmt.Sprintf("Booked from conversation %s via leadpilot.", conv.ID)

	var attendees []string
	if leadEmail != "" {
		attendees = append(attendees, leadEmail)
	}
	if agent != nil && agent.Email != "" {
		attendees = append(attendees, agent.Email)
	}

	creator := &EventCreator{Calendar: client, Logger: s.Logger}
	creation, err := creator.CreateMeeting(ctx, slot, policy, attendees, title, description)
	if err != nil {
		return nil, err
	}

	record := &models.MeetingRecord{
		UserID:          conv.UserID,
		ConversationID:  conv.ID,
		AgentID:         agentID,
		CalendarEventID: creation.CalendarEventID,
		StartTime:       slot.Start,
		DurationMinutes: policy.DurationMinutes,
		ConferenceLink:  creation.ConferenceLink,
		LeadName:        leadName,
		LeadEmail:       leadEmail,
		LeadPhone:       leadPhone,
		Status:          models.MeetingStatusScheduled,
		Metadata:        map[string]string{"platform": conv.Platform},
	}

	// The provider event is the source of truth. Losing the local record is
	// preferable to deleting a meeting the lead may already see, so a failed
	// write is logged and the booking still succeeds.
	id, persistErr := s.MeetingRepo.Create(ctx, *record)
	if persistErr != nil {
		s.Logger.Error("meeting record persistence failed after provider event was created",
			zap.String("calendarEventId", creation.CalendarEventID),
			zap.Error(persistErr))
	} else {
		record.ID = id
	}

	if s.Reminders != nil && record.ID != "" {
		if remErr := s.Reminders.ScheduleReminder(record); remErr != nil {
			s.Logger.Warn("failed to schedule meeting reminder",
				zap.String("meetingId", record.ID), zap.Error(remErr))
		}
	}
	if s.Notifier != nil {
		s.Notifier.NotifyBooked(ctx, conv, record)
	}

	return &BookingResult{
		MeetingID:       record.ID,
		CalendarEventID: creation.CalendarEventID,
		MeetingDate:     slot.Start,
		DurationMinutes: policy.DurationMinutes,
		ConferenceLink:  creation.ConferenceLink,
		Title:           title,
	}, nil
}

// prepare enforces the booking preconditions and assembles the per-request
// pieces: resolved policy, agent, and an authenticated calendar client.
// The policy is loaded fresh on every call; settings may change between
// requests.
func (s *DefaultSchedulingService) prepare(ctx context.Context, agentID string) (*SchedulingPolicy, *models.Agent, CalendarClient, error) {
	agent, err := s.AgentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("agent %s not found: %w", agentID, err)
	}

	policy, err := ResolvePolicy(agent.Scheduling)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid scheduling settings for agent %s: %w", agentID, err)
	}
	if !policy.Enabled {
		return nil, nil, nil, &SchedulingError{
			Code:    CodeSchedulingDisabled,
			Message: "scheduling is disabled for this agent",
		}
	}

	integration, err := s.IntegrationRepo.GetByUserID(ctx, agent.UserID)
	if err != nil || integration == nil || !integration.Connected || integration.RefreshToken == "" {
		return nil, nil, nil, &SchedulingError{
			Code:    CodeCalendarNotConnected,
			Message: "no connected calendar integration with a usable token",
		}
	}

	client, err := s.NewCalendar(ctx, integration, policy.Location)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build calendar client: %w", err)
	}
	return policy, agent, client, nil
}
