package scheduling

import "time"

// HasConflict reports whether the candidate slot, expanded by bufferMinutes
// on both ends, overlaps any busy interval. Intervals are half-open, so a
// slot ending exactly when a busy interval starts (minus buffer) is free.
//
// A malformed busy interval (end not after start) is treated as conflicting
// everywhere: refusing a bookable slot is recoverable, double-booking is not.
func HasConflict(candidate Slot, busy []BusyInterval, bufferMinutes int) bool {
	buf := time.Duration(bufferMinutes) * time.Minute
	bufStart := candidate.Start.Add(-buf)
	bufEnd := candidate.End.Add(buf)

	for _, b := range busy {
		if !b.End.After(b.Start) {
			return true
		}
		if bufStart.Before(b.End) && bufEnd.After(b.Start) {
			return true
		}
	}
	return false
}
