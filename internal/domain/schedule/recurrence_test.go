package schedule

import (
	"testing"
	"time"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
)

func TestCompetencesForRecurrence(t *testing.T) {
	t.Parallel()

	start := date(2025, time.June, 1)

	t.Run("monthly covers all twelve months", func(t *testing.T) {
		t.Parallel()

		periods := CompetencesForRecurrence(start, domain.RecurrenceMonthly)
		if len(periods) != 12 {
			t.Fatalf("Expected 12 periods, got %d", len(periods))
		}
		for i, p := range periods {
			if p.Month != i+1 || p.Year != 2025 {
				t.Errorf("Expected period %d to be %02d/2025, got %+v", i, i+1, p)
			}
		}
	})

	t.Run("quarterly covers quarter starts", func(t *testing.T) {
		t.Parallel()

		periods := CompetencesForRecurrence(start, domain.RecurrenceQuarterly)
		expected := []int{1, 4, 7, 10}
		if len(periods) != len(expected) {
			t.Fatalf("Expected %d periods, got %d", len(expected), len(periods))
		}
		for i, month := range expected {
			if periods[i].Month != month || periods[i].Year != 2025 {
				t.Errorf("Expected period %d to be %02d/2025, got %+v", i, month, periods[i])
			}
		}
	})

	t.Run("yearly covers january only", func(t *testing.T) {
		t.Parallel()

		periods := CompetencesForRecurrence(start, domain.RecurrenceYearly)
		if len(periods) != 1 {
			t.Fatalf("Expected 1 period, got %d", len(periods))
		}
		if periods[0].Month != 1 || periods[0].Year != 2025 {
			t.Errorf("Expected 01/2025, got %+v", periods[0])
		}
	})

	t.Run("unknown cadence yields nil", func(t *testing.T) {
		t.Parallel()

		if periods := CompetencesForRecurrence(start, domain.Recurrence("weekly")); periods != nil {
			t.Errorf("Expected nil, got %+v", periods)
		}
	})
}
