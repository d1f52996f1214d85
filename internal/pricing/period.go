package pricing

import (
	"github.com/google/uuid"

	"zombieland/internal/calendar"
)

// Period is a named date range with a flat per-ticket price. Bounds are
// inclusive.
type Period struct {
	ID             uuid.UUID
	Name           string
	Start          calendar.Date
	End            calendar.Date
	PricePerTicket float64
}

// Contains reports whether day lies within the period's inclusive bounds
func (p Period) Contains(day calendar.Date) bool {
	return !day.Before(p.Start) && !day.After(p.End)
}

// PeriodFor returns the first period containing day. Periods are expected
// not to overlap; when they do, list order decides.
func PeriodFor(day calendar.Date, periods []Period) (Period, bool) {
	for _, p := range periods {
		if p.Contains(day) {
			return p, true
		}
	}
	return Period{}, false
}
