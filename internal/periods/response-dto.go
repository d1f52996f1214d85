package periods

import (
	"github.com/google/uuid"

	"zombieland/internal/calendar"
	"zombieland/internal/pricing"
)

// PeriodResponse is the wire shape read by the booking calendar
type PeriodResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	DateStart calendar.Date `json:"date_start"`
	DateEnd   calendar.Date `json:"date_end"`
	Price     float64       `json:"price"`
}

func (p PeriodResponse) Pricing() pricing.Period {
	return pricing.Period{
		ID:             p.ID,
		Name:           p.Name,
		Start:          p.DateStart,
		End:            p.DateEnd,
		PricePerTicket: p.Price,
	}
}
