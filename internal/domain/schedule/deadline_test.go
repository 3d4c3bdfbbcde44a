package schedule

import (
	"testing"
	"time"
)

func TestDaysUntil(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		due      time.Time
		now      time.Time
		expected int
	}{
		{
			name:     "due tomorrow",
			due:      date(2025, time.August, 12),
			now:      date(2025, time.August, 11),
			expected: 1,
		},
		{
			name:     "due today",
			due:      date(2025, time.August, 11),
			now:      date(2025, time.August, 11),
			expected: 0,
		},
		{
			name:     "overdue by three days",
			due:      date(2025, time.August, 8),
			now:      date(2025, time.August, 11),
			expected: -3,
		},
		{
			name:     "time of day does not matter",
			due:      time.Date(2025, time.August, 12, 1, 0, 0, 0, time.UTC),
			now:      time.Date(2025, time.August, 11, 23, 59, 0, 0, time.UTC),
			expected: 1,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := DaysUntil(tc.due, tc.now); got != tc.expected {
				t.Errorf("Expected %d days, got %d", tc.expected, got)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	t.Parallel()

	now := date(2025, time.August, 11)

	if IsOverdue(date(2025, time.August, 11), now) {
		t.Error("Expected a task due today not to be overdue")
	}
	if !IsOverdue(date(2025, time.August, 10), now) {
		t.Error("Expected a task due yesterday to be overdue")
	}
	if IsOverdue(date(2025, time.August, 12), now) {
		t.Error("Expected a task due tomorrow not to be overdue")
	}
}
