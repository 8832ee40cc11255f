package service

import (
	"time"

	m "coachingku_backend/internals/features/school/tests/model"
)

// TotalMaxMarks sums the per-subject maxima. Stored on the row so merit and
// percentage queries don't need to unpack the JSONB column.
func TotalMaxMarks(subjects m.SubjectList) int {
	total := 0
	for _, s := range subjects {
		total += s.MaxMarks
	}
	return total
}

// SessionWindow resolves a date plus "15:04" time strings into concrete
// start/end instants in the given location. A malformed or missing time
// string falls back to the whole day.
func SessionWindow(date time.Time, startStr, endStr string, loc *time.Location) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	start := day
	end := day.Add(24*time.Hour - time.Second)

	if t, err := time.Parse("15:04", startStr); err == nil {
		start = day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	if t, err := time.Parse("15:04", endStr); err == nil {
		end = day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	if !end.After(start) {
		end = start.Add(time.Hour)
	}
	return start, end
}

// DeriveStatus maps the session window onto a lifecycle status at `now`.
// Cancelled is manual and never derived, so callers skip cancelled rows.
func DeriveStatus(date time.Time, startStr, endStr string, now time.Time) string {
	start, end := SessionWindow(date, startStr, endStr, now.Location())
	switch {
	case now.Before(start):
		return m.StatusScheduled
	case now.After(end):
		return m.StatusCompleted
	default:
		return m.StatusOngoing
	}
}
