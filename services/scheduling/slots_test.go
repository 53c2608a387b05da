package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"leadpilot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCalendar is an in-memory CalendarClient shared by the engine tests.
type fakeCalendar struct {
	mu sync.Mutex

	listBusyFn func(timeMin, timeMax time.Time) ([]BusyInterval, error)
	insertFn   func(req EventRequest) (*ProviderEvent, error)
	getEventFn func(eventID string) (*ProviderEvent, error)

	listCalls int
	getCalls  int
	inserted  []EventRequest
}

func (f *fakeCalendar) ListBusy(ctx context.Context, timeMin, timeMax time.Time) ([]BusyInterval, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	if f.listBusyFn == nil {
		return nil, nil
	}
	return f.listBusyFn(timeMin, timeMax)
}

func (f *fakeCalendar) InsertEvent(ctx context.Context, req EventRequest) (*ProviderEvent, error) {
	f.mu.Lock()
	f.inserted = append(f.inserted, req)
	f.mu.Unlock()
	if f.insertFn == nil {
		return &ProviderEvent{ID: req.ID, HTMLLink: "https://calendar.example/" + req.ID}, nil
	}
	return f.insertFn(req)
}

func (f *fakeCalendar) GetEvent(ctx context.Context, eventID string) (*ProviderEvent, error) {
	f.mu.Lock()
	f.getCalls++
	f.mu.Unlock()
	if f.getEventFn == nil {
		return &ProviderEvent{ID: eventID}, nil
	}
	return f.getEventFn(eventID)
}

func (f *fakeCalendar) insertedRequests() []EventRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]EventRequest(nil), f.inserted...)
}

func testPolicy(t *testing.T, settings models.SchedulingSettings) *SchedulingPolicy {
	t.Helper()
	settings.Enabled = true
	p, err := ResolvePolicy(settings)
	require.NoError(t, err)
	return p
}

// Monday 2026-09-07.
var monday = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

func TestRoundUpToStep(t *testing.T) {
	assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute),
		roundUpToStep(monday.Add(10*time.Hour+5*time.Minute)))
	assert.Equal(t, monday.Add(11*time.Hour),
		roundUpToStep(monday.Add(10*time.Hour+31*time.Minute)))
	// Already on the grid stays put.
	assert.Equal(t, monday.Add(10*time.Hour),
		roundUpToStep(monday.Add(10*time.Hour)))
}

func TestFindSlots_FreeDay(t *testing.T) {
	cal := &fakeCalendar{}
	finder := &SlotFinder{Calendar: cal, Logger: zap.NewNop()}
	policy := testPolicy(t, models.SchedulingSettings{})

	now := monday.Add(10*time.Hour + 5*time.Minute)
	slots, err := finder.FindSlots(context.Background(), policy, 1, DefaultMaxSlots, now)
	require.NoError(t, err)

	// Starts on the next half-hour boundary, capped per day.
	require.Len(t, slots, maxSlotsPerDay)
	assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute), slots[0].Start)
	assert.Equal(t, monday.Add(11*time.Hour), slots[0].End)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].Start.Sub(slots[i-1].Start))
	}
	assert.Equal(t, 1, cal.listCalls)
}

func TestFindSlots_BusyIntervalsExcluded(t *testing.T) {
	// 11:00-12:00 is taken; with the walk starting at 10:30, the 10:30
	// candidate survives and 11:00 / 11:30 are skipped.
	cal := &fakeCalendar{
		listBusyFn: func(timeMin, timeMax time.Time) ([]BusyInterval, error) {
			return []BusyInterval{{
				Start: monday.Add(11 * time.Hour),
				End:   monday.Add(12 * time.Hour),
			}}, nil
		},
	}
	finder := &SlotFinder{Calendar: cal, Logger: zap.NewNop()}
	policy := testPolicy(t, models.SchedulingSettings{})

	now := monday.Add(10*time.Hour + 15*time.Minute)
	slots, err := finder.FindSlots(context.Background(), policy, 1, DefaultMaxSlots, now)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.Equal(t, monday.Add(10*time.Hour+30*time.Minute), slots[0].Start)
	assert.Equal(t, monday.Add(12*time.Hour), slots[1].Start)
	for _, s := range slots {
		assert.False(t, s.Start.Before(monday.Add(12*time.Hour)) && s.End.After(monday.Add(11*time.Hour)),
			"slot %v overlaps the busy hour", s.Start)
	}
}

func TestFindSlots_SkipsNonWorkDays(t *testing.T) {
	cal := &fakeCalendar{}
	finder := &SlotFinder{Calendar: cal, Logger: zap.NewNop()}
	policy := testPolicy(t, models.SchedulingSettings{WorkDays: []string{"tuesday"}})

	// Monday with a one-day horizon: nothing to offer and no provider call.
	slots, err := finder.FindSlots(context.Background(), policy, 1, DefaultMaxSlots, monday.Add(8*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.Equal(t, 0, cal.listCalls)
}

func TestFindSlots_AfterHoursDayContributesNothing(t *testing.T) {
	cal := &fakeCalendar{}
	finder := &SlotFinder{Calendar: cal, Logger: zap.NewNop()}
	policy := testPolicy(t, models.SchedulingSettings{})

	now := monday.Add(18 * time.Hour)
	slots, err := finder.FindSlots(context.Background(), policy, 1, DefaultMaxSlots, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.Equal(t, 0, cal.listCalls)
}

func TestFindSlots_ChronologicalAcrossDaysAndTotalCap(t *testing.T) {
	cal := &fakeCalendar{}
	finder := &SlotFinder{Calendar: cal, Logger: zap.NewNop()}
	policy := testPolicy(t, models.SchedulingSettings{})

	now := monday.Add(8 * time.Hour)
	slots, err := finder.FindSlots(context.Background(), policy, 5, DefaultMaxSlots, now)
	require.NoError(t, err)

	// Five free work days yield more than the total cap allows.
	assert.Len(t, slots, DefaultMaxSlots)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].Start.After(slots[i-1].Start),
			"slots out of order at index %d", i)
	}
	assert.Equal(t, monday.Add(9*time.Hour), slots[0].Start)
}

func TestFindSlots_Deterministic(t *testing.T) {
	cal := &fakeCalendar{}
	finder := &SlotFinder{Calendar: cal, Logger: zap.NewNop()}
	policy := testPolicy(t, models.SchedulingSettings{})

	now := monday.Add(8 * time.Hour)
	first, err := finder.FindSlots(context.Background(), policy, 5, DefaultMaxSlots, now)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := finder.FindSlots(context.Background(), policy, 5, DefaultMaxSlots, now)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFindSlots_TokenExpiredAbortsScan(t *testing.T) {
	cal := &fakeCalendar{
		listBusyFn: func(timeMin, timeMax time.Time) ([]BusyInterval, error) {
			// Wednesday rejects the token.
			if timeMin.Weekday() == time.Wednesday {
				return nil, ErrTokenExpired
			}
			return nil, nil
		},
	}
	finder := &SlotFinder{Calendar: cal, Logger: zap.NewNop()}
	policy := testPolicy(t, models.SchedulingSettings{})

	slots, err := finder.FindSlots(context.Background(), policy, 5, DefaultMaxSlots, monday.Add(8*time.Hour))
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeTokenExpired))
	assert.Nil(t, slots)
}

func TestFindSlots_OtherDayErrorsAbsorbed(t *testing.T) {
	cal := &fakeCalendar{
		listBusyFn: func(timeMin, timeMax time.Time) ([]BusyInterval, error) {
			if timeMin.Weekday() == time.Monday {
				return nil, errors.New("transient provider hiccup")
			}
			return nil, nil
		},
	}
	finder := &SlotFinder{Calendar: cal, Logger: zap.NewNop()}
	policy := testPolicy(t, models.SchedulingSettings{})

	slots, err := finder.FindSlots(context.Background(), policy, 2, DefaultMaxSlots, monday.Add(8*time.Hour))
	require.NoError(t, err)

	// Monday contributed nothing; tuesday fills in from the top of the window.
	require.NotEmpty(t, slots)
	tuesday := monday.AddDate(0, 0, 1)
	assert.Equal(t, tuesday.Add(9*time.Hour), slots[0].Start)
	for _, s := range slots {
		assert.Equal(t, time.Tuesday, s.Start.Weekday())
	}
}

func TestFindSlots_BufferShrinksOffer(t *testing.T) {
	// One meeting 12:00-13:00 with a 15 minute buffer also knocks out the
	// 11:30 and 13:00 starts.
	cal := &fakeCalendar{
		listBusyFn: func(timeMin, timeMax time.Time) ([]BusyInterval, error) {
			return []BusyInterval{{
				Start: monday.Add(12 * time.Hour),
				End:   monday.Add(13 * time.Hour),
			}}, nil
		},
	}
	finder := &SlotFinder{Calendar: cal, Logger: zap.NewNop()}
	policy := testPolicy(t, models.SchedulingSettings{BufferMinutes: 15})

	slots, err := finder.FindSlots(context.Background(), policy, 1, DefaultMaxSlots, monday.Add(10*time.Hour+45*time.Minute))
	require.NoError(t, err)

	starts := make(map[time.Time]bool, len(slots))
	for _, s := range slots {
		starts[s.Start] = true
	}
	assert.True(t, starts[monday.Add(11*time.Hour)])
	assert.False(t, starts[monday.Add(11*time.Hour+30*time.Minute)])
	assert.False(t, starts[monday.Add(12*time.Hour)])
	assert.False(t, starts[monday.Add(12*time.Hour+30*time.Minute)])
	assert.False(t, starts[monday.Add(13*time.Hour)])
	assert.True(t, starts[monday.Add(13*time.Hour+30*time.Minute)])
}
