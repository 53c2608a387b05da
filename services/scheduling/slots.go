package scheduling

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// Candidate starts sit on a fixed 30-minute grid regardless of the
	// configured duration, which keeps published times predictable and
	// bounds the number of checks per day.
	slotStepMinutes = 30

	maxSlotsPerDay = 8

	// DefaultMaxSlots caps the total slots returned by one scan.
	DefaultMaxSlots = 20
)

// SlotFinder enumerates open slots over a scan horizon. Each call re-derives
// everything from the current busy state; nothing is cached between calls.
type SlotFinder struct {
	Calendar CalendarClient
	Logger   *zap.Logger
}

// FindSlots scans horizonDays ahead of now and returns up to maxSlots open
// slots in chronological order. Days are fetched concurrently; the horizon
// itself bounds the fan-out, so there is no extra concurrency cap. Results
// are reassembled by day offset, making the output order independent of
// fetch completion order.
//
// An auth failure on any day aborts the whole scan with a tokenExpired
// error. Any other per-day failure is absorbed: that day simply contributes
// zero slots.
func (f *SlotFinder) FindSlots(ctx context.Context, policy *SchedulingPolicy, horizonDays, maxSlots int, now time.Time) ([]Slot, error) {
	if maxSlots <= 0 {
		maxSlots = DefaultMaxSlots
	}
	scanStart := roundUpToStep(now)

	daySlots := make([][]Slot, horizonDays)
	dayErrs := make([]error, horizonDays)

	var wg sync.WaitGroup
	for offset := 0; offset < horizonDays; offset++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			daySlots[offset], dayErrs[offset] = f.scanDay(ctx, policy, scanStart, offset)
		}(offset)
	}
	wg.Wait()

	for offset, err := range dayErrs {
		if err == nil {
			continue
		}
		if IsCode(err, CodeTokenExpired) {
			return nil, err
		}
		f.Logger.Warn("day scan failed, contributing zero slots",
			zap.Int("dayOffset", offset), zap.Error(err))
	}

	var slots []Slot
	for _, day := range daySlots {
		for _, s := range day {
			if len(slots) >= maxSlots {
				return slots, nil
			}
			slots = append(slots, s)
		}
	}
	return slots, nil
}

// scanDay walks one day's candidate grid against that day's busy intervals.
func (f *SlotFinder) scanDay(ctx context.Context, policy *SchedulingPolicy, scanStart time.Time, offset int) ([]Slot, error) {
	day := scanStart.In(policy.Location).AddDate(0, 0, offset)
	if !policy.WorkDays[day.Weekday()] {
		return nil, nil
	}

	workStart, workEnd := policy.DayWindow(day)
	cursor := workStart
	if scanStart.After(cursor) {
		cursor = scanStart
	}
	if !cursor.Before(workEnd) {
		return nil, nil
	}

	busy, err := f.Calendar.ListBusy(ctx, workStart, workEnd)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(policy.DurationMinutes) * time.Minute
	step := slotStepMinutes * time.Minute

	var out []Slot
	for !cursor.Add(duration).After(workEnd) {
		candidate := Slot{Start: cursor, End: cursor.Add(duration)}
		if !HasConflict(candidate, busy, policy.BufferMinutes) {
			out = append(out, candidate)
			if len(out) >= maxSlotsPerDay {
				break
			}
		}
		cursor = cursor.Add(step)
	}
	return out, nil
}

// roundUpToStep rounds t up to the next 30-minute boundary.
func roundUpToStep(t time.Time) time.Time {
	step := slotStepMinutes * time.Minute
	r := t.Truncate(step)
	if r.Before(t) {
		r = r.Add(step)
	}
	return r
}
