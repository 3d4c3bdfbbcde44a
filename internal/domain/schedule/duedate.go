package schedule

import (
	"time"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
)

// DueDate computes the concrete due date for a task covering the given
// competence period.
//
// The due month is the month after the competence month, rolling the
// year forward when the competence month is December. dayOfMonth is
// clamped to the last valid day of the due month, so requesting day 31
// against a 30-day month yields the 30th and against February the 28th
// or 29th. When adjustToBusinessDay is set, a due date landing on a
// weekend is shifted to the following Monday.
//
// Out-of-range months from a permissively parsed competence are carried
// forward: time.Date normalizes them the same way the rest of the
// calendar arithmetic does.
func DueDate(c domain.Competence, dayOfMonth int, adjustToBusinessDay bool) time.Time {
	// First day of the month following the competence period.
	dueMonth := time.Date(c.Year, time.Month(c.Month)+1, 1, 0, 0, 0, 0, time.UTC)

	day := dayOfMonth
	if last := lastDayOfMonth(dueMonth); day > last {
		day = last
	}

	due := time.Date(dueMonth.Year(), dueMonth.Month(), day, 0, 0, 0, 0, time.UTC)

	if adjustToBusinessDay {
		return NextBusinessDay(due)
	}
	return due
}

// lastDayOfMonth returns the number of days in the month containing t.
func lastDayOfMonth(t time.Time) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
