package scheduler

import "time"

// InReminder24hWindow reports whether `now` falls in the sweep window for the
// day-before reminder: 23–24 hours before the session start. The sweep runs
// every 15 minutes, so a one-hour window guarantees exactly one hit per
// session without double-firing (the sent flag covers sweep overlap).
func InReminder24hWindow(start, now time.Time) bool {
	until := start.Sub(now)
	return until > 23*time.Hour && until <= 24*time.Hour
}

// InReminder1hWindow is the last-call counterpart: 50–60 minutes before
// start, and only on the session's own day so a midnight-adjacent session
// never reminds on the wrong date.
func InReminder1hWindow(start, now time.Time) bool {
	until := start.Sub(now)
	if until <= 50*time.Minute || until > time.Hour {
		return false
	}
	return start.Year() == now.Year() && start.YearDay() == now.YearDay()
}
