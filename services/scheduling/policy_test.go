package scheduling

import (
	"testing"
	"time"

	"leadpilot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePolicy_Defaults(t *testing.T) {
	p, err := ResolvePolicy(models.SchedulingSettings{Enabled: true})
	require.NoError(t, err)

	assert.True(t, p.Enabled)
	assert.Equal(t, 30, p.DurationMinutes)
	assert.Equal(t, 0, p.BufferMinutes)
	assert.Equal(t, 9*60, p.WorkStartMin)
	assert.Equal(t, 17*60, p.WorkEndMin)
	assert.Equal(t, "UTC", p.Timezone)
	assert.Equal(t, "09:00-17:00", p.WorkHours())

	// Monday through friday.
	assert.True(t, p.WorkDays[time.Monday])
	assert.True(t, p.WorkDays[time.Friday])
	assert.False(t, p.WorkDays[time.Saturday])
	assert.False(t, p.WorkDays[time.Sunday])
}

func TestResolvePolicy_ExplicitSettings(t *testing.T) {
	p, err := ResolvePolicy(models.SchedulingSettings{
		Enabled:         true,
		DurationMinutes: 45,
		BufferMinutes:   10,
		WorkStart:       "08:30",
		WorkEnd:         "18:00",
		WorkDays:        []string{"Tuesday", " thursday "},
		Timezone:        "America/New_York",
		MeetingTitle:    "Intro call",
	})
	require.NoError(t, err)

	assert.Equal(t, 45, p.DurationMinutes)
	assert.Equal(t, 10, p.BufferMinutes)
	assert.Equal(t, 8*60+30, p.WorkStartMin)
	assert.Equal(t, 18*60, p.WorkEndMin)
	assert.Equal(t, "America/New_York", p.Timezone)
	assert.Equal(t, "Intro call", p.MeetingTitle)
	assert.Equal(t, map[time.Weekday]bool{time.Tuesday: true, time.Thursday: true}, p.WorkDays)
	require.NotNil(t, p.Location)
	assert.Equal(t, "America/New_York", p.Location.String())
}

func TestResolvePolicy_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		settings models.SchedulingSettings
	}{
		{"negative buffer", models.SchedulingSettings{BufferMinutes: -5}},
		{"bad workStart", models.SchedulingSettings{WorkStart: "25:00"}},
		{"bad workEnd", models.SchedulingSettings{WorkEnd: "nine"}},
		{"start after end", models.SchedulingSettings{WorkStart: "18:00", WorkEnd: "09:00"}},
		{"duration exceeds window", models.SchedulingSettings{DurationMinutes: 120, WorkStart: "09:00", WorkEnd: "10:00"}},
		{"unknown weekday", models.SchedulingSettings{WorkDays: []string{"funday"}}},
		{"bad timezone", models.SchedulingSettings{Timezone: "Mars/Olympus"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolvePolicy(tc.settings)
			assert.Error(t, err)
		})
	}
}

func TestDayWindow(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	p, err := ResolvePolicy(models.SchedulingSettings{
		Enabled:   true,
		WorkStart: "09:00",
		WorkEnd:   "17:00",
		Timezone:  "America/New_York",
	})
	require.NoError(t, err)

	day := time.Date(2026, time.September, 9, 13, 22, 0, 0, time.UTC)
	start, end := p.DayWindow(day)

	assert.Equal(t, time.Date(2026, time.September, 9, 9, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, time.September, 9, 17, 0, 0, 0, loc), end)
}
