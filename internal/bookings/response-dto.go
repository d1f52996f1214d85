package bookings

import (
	"time"

	"github.com/google/uuid"

	"zombieland/internal/calendar"
	"zombieland/internal/shared/utils/response"
	"zombieland/internal/users"
)

type ReservationResponse struct {
	ID            uuid.UUID           `json:"id"`
	BookingRef    string              `json:"booking_ref"`
	UserID        uuid.UUID           `json:"user_id"`
	PeriodID      *uuid.UUID          `json:"period_id,omitempty"`
	PeriodName    string              `json:"period_name,omitempty"`
	DateStart     calendar.Date       `json:"date_start"`
	DateEnd       calendar.Date       `json:"date_end"`
	NumberTickets int                 `json:"number_tickets"`
	TotalPrice    float64             `json:"total_price"`
	Status        Status              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	CancelledAt   *time.Time          `json:"cancelled_at,omitempty"`
	User          *users.UserResponse `json:"user,omitempty"`
}

type PaginatedReservations struct {
	Reservations []ReservationResponse `json:"reservations"`
	Pagination   response.Pagination   `json:"pagination"`
}

// StatsResponse covers the previous day, month and year. Rates count
// tickets; revenues sum totals of reservations that were not cancelled.
type StatsResponse struct {
	DailyRate      int64   `json:"daily_rate"`
	MonthlyRate    int64   `json:"monthly_rate"`
	YearlyRate     int64   `json:"yearly_rate"`
	DailyRevenue   float64 `json:"daily_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	YearlyRevenue  float64 `json:"yearly_revenue"`
}
