package schedule

import (
	"testing"
	"time"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDueDate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		competence domain.Competence
		dueDay     int
		adjust     bool
		expected   time.Time
	}{
		{
			name:       "plain month",
			competence: domain.Competence{Month: 3, Year: 2025},
			dueDay:     20,
			expected:   date(2025, time.April, 20),
		},
		{
			name:       "december competence rolls into next year",
			competence: domain.Competence{Month: 12, Year: 2024},
			dueDay:     10,
			expected:   date(2025, time.January, 10),
		},
		{
			name:       "day 31 clamped to 30-day month",
			competence: domain.Competence{Month: 3, Year: 2025},
			dueDay:     31,
			expected:   date(2025, time.April, 30),
		},
		{
			name:       "day 31 clamped to february in leap year",
			competence: domain.Competence{Month: 1, Year: 2024},
			dueDay:     31,
			expected:   date(2024, time.February, 29),
		},
		{
			name:       "day 31 clamped to february in common year",
			competence: domain.Competence{Month: 1, Year: 2023},
			dueDay:     31,
			expected:   date(2023, time.February, 28),
		},
		{
			name:       "day 30 clamped to february",
			competence: domain.Competence{Month: 1, Year: 2025},
			dueDay:     30,
			expected:   date(2025, time.February, 28),
		},
		{
			// 2025-08-10 is a Sunday; without adjustment it stays put.
			name:       "weekend without adjustment is kept",
			competence: domain.Competence{Month: 7, Year: 2025},
			dueDay:     10,
			expected:   date(2025, time.August, 10),
		},
		{
			// 2025-08-10 is a Sunday; adjustment shifts to Monday the 11th.
			name:       "sunday shifts to monday when adjusting",
			competence: domain.Competence{Month: 7, Year: 2025},
			dueDay:     10,
			adjust:     true,
			expected:   date(2025, time.August, 11),
		},
		{
			// 2025-08-09 is a Saturday.
			name:       "saturday shifts to monday when adjusting",
			competence: domain.Competence{Month: 7, Year: 2025},
			dueDay:     9,
			adjust:     true,
			expected:   date(2025, time.August, 11),
		},
		{
			// 2025-08-11 is a Monday; no shift needed.
			name:       "weekday is unchanged when adjusting",
			competence: domain.Competence{Month: 7, Year: 2025},
			dueDay:     11,
			adjust:     true,
			expected:   date(2025, time.August, 11),
		},
		{
			// Month 13 normalizes to January of the following year, so the
			// due month is February.
			name:       "out of range month is normalized",
			competence: domain.Competence{Month: 13, Year: 2024},
			dueDay:     5,
			expected:   date(2025, time.February, 5),
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := DueDate(tc.competence, tc.dueDay, tc.adjust)
			if !got.Equal(tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestDueDateIsMidnightUTC(t *testing.T) {
	t.Parallel()

	got := DueDate(domain.Competence{Month: 5, Year: 2025}, 15, false)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Errorf("Expected midnight due date, got %v", got)
	}
	if got.Location() != time.UTC {
		t.Errorf("Expected UTC due date, got %v", got.Location())
	}
}
