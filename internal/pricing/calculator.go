package pricing

import (
	"github.com/google/uuid"

	"zombieland/internal/calendar"
)

// DayPrice is the per-ticket price applied to one day of a quote
type DayPrice struct {
	Date       calendar.Date `json:"date"`
	PeriodID   string        `json:"period_id,omitempty"`
	PeriodName string        `json:"period_name,omitempty"`
	Price      float64       `json:"price"`
	Covered    bool          `json:"covered"`
}

// Quote is the priced breakdown of a selection
type Quote struct {
	DateStart   calendar.Date   `json:"date_start"`
	DateEnd     calendar.Date   `json:"date_end"`
	TicketCount int             `json:"number_tickets"`
	PerTicket   float64         `json:"price_per_ticket"`
	Total       float64         `json:"total_price"`
	Days        []DayPrice      `json:"days"`
	Gaps        []calendar.Date `json:"gaps,omitempty"`
}

// HasGaps reports whether some day of the window matched no period
func (q Quote) HasGaps() bool {
	return len(q.Gaps) > 0
}

// Calculate prices every day of the selection at its own period and
// multiplies the sum by tickets. An empty selection yields a zero quote and
// a partial one is priced as a single day. Days outside every period cost
// nothing and are listed in Gaps. tickets is used as given.
func Calculate(sel calendar.Selection, tickets int, periods []Period) Quote {
	start, end, ok := sel.Bounds()
	if !ok {
		return Quote{TicketCount: tickets}
	}

	q := Quote{
		DateStart:   start,
		DateEnd:     end,
		TicketCount: tickets,
	}

	for _, day := range calendar.Days(start, end) {
		dp := DayPrice{Date: day}
		if p, found := PeriodFor(day, periods); found {
			dp.Covered = true
			dp.Price = p.PricePerTicket
			dp.PeriodName = p.Name
			if p.ID != uuid.Nil {
				dp.PeriodID = p.ID.String()
			}
		} else {
			q.Gaps = append(q.Gaps, day)
		}
		q.PerTicket += dp.Price
		q.Days = append(q.Days, dp)
	}

	q.Total = q.PerTicket * float64(tickets)
	return q
}

// Total is Calculate without the breakdown
func Total(sel calendar.Selection, tickets int, periods []Period) float64 {
	return Calculate(sel, tickets, periods).Total
}
