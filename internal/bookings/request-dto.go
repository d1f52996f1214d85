package bookings

import (
	"zombieland/internal/calendar"
)

// QuoteRequest is a date window and a ticket count. A missing date_end
// means a single day; a missing number_tickets means one ticket.
type QuoteRequest struct {
	DateStart     calendar.Date  `json:"date_start"`
	DateEnd       *calendar.Date `json:"date_end"`
	NumberTickets *int           `json:"number_tickets" binding:"omitempty,min=1"`
}

// Selection converts the request into a calendar selection
func (q QuoteRequest) Selection() (calendar.Selection, error) {
	if q.DateStart.IsZero() {
		return calendar.Selection{}, ErrDateStartRequired
	}
	var end calendar.Date
	if q.DateEnd != nil {
		end = *q.DateEnd
	}
	return calendar.NewSelection(q.DateStart, end)
}

func (q QuoteRequest) Tickets() int {
	if q.NumberTickets == nil {
		return 1
	}
	return *q.NumberTickets
}

type CreateReservationRequest struct {
	QuoteRequest
}

// AdminCreateReservationRequest books on behalf of any user
type AdminCreateReservationRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	QuoteRequest
}

// AdminUpdateReservationRequest changes a reservation; any date or ticket
// change re-prices it
type AdminUpdateReservationRequest struct {
	DateStart     *calendar.Date `json:"date_start"`
	DateEnd       *calendar.Date `json:"date_end"`
	NumberTickets *int           `json:"number_tickets" binding:"omitempty,min=1"`
	Status        *Status        `json:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED COMPLETED"`
}

// ReservationListQuery filters the admin listing
type ReservationListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	PeriodID string `form:"period_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=CONFIRMED CANCELLED COMPLETED"`
}

func (q *ReservationListQuery) normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
}
