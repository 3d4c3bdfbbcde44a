// Package schedule implements the pure date arithmetic behind recurring
// task generation: business-day resolution, due-date calculation from a
// competence period, recurrence expansion and deadline helpers.
//
// Obligations are due in the month following the competence period they
// cover, so a "12/2024" competence always yields a due date in January
// 2025. Only weekends count as non-business days; no public holiday
// calendar is consulted, which is a deliberate simplification.
package schedule
