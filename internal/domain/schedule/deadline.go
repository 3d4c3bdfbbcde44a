package schedule

import "time"

// DaysUntil returns the number of whole calendar days from now until
// due. Both values are truncated to their date component first, so the
// result does not depend on the time of day. A negative count means the
// due date has passed.
func DaysUntil(due, now time.Time) int {
	due = truncateToDate(due)
	now = truncateToDate(now)
	return int(due.Sub(now).Hours() / 24)
}

// IsOverdue reports whether the due date lies strictly in the past
// relative to now, comparing calendar dates only.
func IsOverdue(due, now time.Time) bool {
	return DaysUntil(due, now) < 0
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
