package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"leadpilot/config"
	"leadpilot/models"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// SchedulingPolicy is the resolved, validated per-agent configuration for one
// booking request. It is immutable once resolved and never cached across
// requests, so settings changes take effect on the next call.
type SchedulingPolicy struct {
	Enabled         bool
	DurationMinutes int
	BufferMinutes   int
	WorkStartMin    int // minutes from midnight, local
	WorkEndMin      int
	WorkDays        map[time.Weekday]bool
	Timezone        string
	Location        *time.Location
	MeetingTitle    string
}

// ResolvePolicy normalizes raw agent settings into a usable policy, applying
// workspace defaults to blank fields.
func ResolvePolicy(settings models.SchedulingSettings) (*SchedulingPolicy, error) {
	p := &SchedulingPolicy{
		Enabled:         settings.Enabled,
		DurationMinutes: settings.DurationMinutes,
		BufferMinutes:   settings.BufferMinutes,
		MeetingTitle:    settings.MeetingTitle,
		Timezone:        settings.Timezone,
	}

	if p.DurationMinutes <= 0 {
		p.DurationMinutes = config.AppConfig.DefaultMeetingDuration
		if p.DurationMinutes <= 0 {
			p.DurationMinutes = 30
		}
	}
	if p.BufferMinutes < 0 {
		return nil, fmt.Errorf("bufferMinutes must not be negative")
	}

	workStart := settings.WorkStart
	if workStart == "" {
		workStart = "09:00"
	}
	workEnd := settings.WorkEnd
	if workEnd == "" {
		workEnd = "17:00"
	}
	var err error
	if p.WorkStartMin, err = parseClock(workStart); err != nil {
		return nil, fmt.Errorf("invalid workStart %q: %w", workStart, err)
	}
	if p.WorkEndMin, err = parseClock(workEnd); err != nil {
		return nil, fmt.Errorf("invalid workEnd %q: %w", workEnd, err)
	}
	if p.WorkStartMin >= p.WorkEndMin {
		return nil, fmt.Errorf("workStart %s must be before workEnd %s", workStart, workEnd)
	}
	if p.DurationMinutes > p.WorkEndMin-p.WorkStartMin {
		return nil, fmt.Errorf("meeting duration %dm does not fit the %s-%s work window",
			p.DurationMinutes, workStart, workEnd)
	}

	days := settings.WorkDays
	if len(days) == 0 {
		days = []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	}
	p.WorkDays = make(map[time.Weekday]bool, len(days))
	for _, name := range days {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday name %q", name)
		}
		p.WorkDays[wd] = true
	}

	if p.Timezone == "" {
		p.Timezone = config.AppConfig.DefaultTimezone
		if p.Timezone == "" {
			p.Timezone = "UTC"
		}
	}
	if p.Location, err = time.LoadLocation(p.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", p.Timezone, err)
	}

	return p, nil
}

// DayWindow returns the absolute work-hour window for the calendar date of
// day in the policy's timezone.
func (p *SchedulingPolicy) DayWindow(day time.Time) (time.Time, time.Time) {
	d := day.In(p.Location)
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, p.Location)
	return midnight.Add(time.Duration(p.WorkStartMin) * time.Minute),
		midnight.Add(time.Duration(p.WorkEndMin) * time.Minute)
}

// WorkHours renders the window as "09:00-18:00" for API responses.
func (p *SchedulingPolicy) WorkHours() string {
	return fmt.Sprintf("%s-%s", formatClock(p.WorkStartMin), formatClock(p.WorkEndMin))
}

func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("bad hour")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad minute")
	}
	return h*60 + m, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
