package schedule

import (
	"time"

	"github.com/fiscaldesk/fiscaldesk-api/internal/domain"
)

// CompetencesForRecurrence expands a recurrence cadence into the
// competence periods it covers within the calendar year of start:
// twelve for monthly, four for quarterly (January, April, July,
// October), one for yearly (January). Unknown cadences yield nil.
func CompetencesForRecurrence(start time.Time, r domain.Recurrence) []domain.Competence {
	year := start.Year()

	switch r {
	case domain.RecurrenceMonthly:
		periods := make([]domain.Competence, 0, 12)
		for month := 1; month <= 12; month++ {
			periods = append(periods, domain.Competence{Month: month, Year: year})
		}
		return periods

	case domain.RecurrenceQuarterly:
		periods := make([]domain.Competence, 0, 4)
		for month := 1; month <= 12; month += 3 {
			periods = append(periods, domain.Competence{Month: month, Year: year})
		}
		return periods

	case domain.RecurrenceYearly:
		return []domain.Competence{{Month: 1, Year: year}}

	default:
		return nil
	}
}
