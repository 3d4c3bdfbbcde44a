package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Competence-specific errors
var (
	// ErrCompetenceFormat is returned when a competence string does not
	// consist of exactly two numeric components separated by a slash.
	ErrCompetenceFormat = errors.New("competence must be in MM/YYYY format")
)

// Competence identifies the calendar month and year an obligation covers.
// It is distinct from the due date of the resulting task, which always
// falls in the month following the competence period.
//
// The canonical external representation is "MM/YYYY" with the month
// zero-padded to two digits (e.g. "01/2025").
type Competence struct {
	Month int
	Year  int
}

// CompetenceForDate returns the competence period for the given date,
// taking the date's own month and year. No timezone conversion is done
// beyond what the caller already resolved.
func CompetenceForDate(t time.Time) Competence {
	return Competence{
		Month: int(t.Month()),
		Year:  t.Year(),
	}
}

// ParseCompetence parses the canonical "MM/YYYY" representation.
//
// It requires exactly two numeric components separated by a slash but
// deliberately does not range-check the month or year: a value such as
// "13/2024" is carried forward and normalized by downstream calendar
// arithmetic. Pattern-level validation (two digits, slash, four digits)
// is the responsibility of the input boundary.
func ParseCompetence(s string) (Competence, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Competence{}, fmt.Errorf("%w: %q", ErrCompetenceFormat, s)
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return Competence{}, fmt.Errorf("%w: non-numeric month in %q", ErrCompetenceFormat, s)
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return Competence{}, fmt.Errorf("%w: non-numeric year in %q", ErrCompetenceFormat, s)
	}

	return Competence{Month: month, Year: year}, nil
}

// FormatCompetence returns the canonical competence string for the given date.
func FormatCompetence(t time.Time) string {
	return CompetenceForDate(t).String()
}

// String returns the canonical "MM/YYYY" representation.
func (c Competence) String() string {
	return fmt.Sprintf("%02d/%d", c.Month, c.Year)
}
