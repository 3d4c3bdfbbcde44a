package schedule

import "time"

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	weekday := t.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// NextBusinessDay returns the date itself when it already falls on a
// weekday, otherwise the next Monday. Advancing one day at a time keeps
// the loop obviously terminating: at most two steps from a Saturday.
func NextBusinessDay(t time.Time) time.Time {
	for IsWeekend(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
