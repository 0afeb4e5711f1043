package timeutil

import "time"

// Now returns the current time in UTC. All timestamps are stored and
// compared in UTC; display formatting is the client's concern.
func Now() time.Time {
	return time.Now().UTC()
}

// StartOfDay returns midnight UTC of the given day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last instant of the given UTC day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
