package bookings

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"zombieland/internal/calendar"
	"zombieland/internal/periods"
	"zombieland/internal/users"
)

// Reservation is a visitor's booking of a date window
type Reservation struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingRef string    `gorm:"uniqueIndex;not null" json:"booking_ref"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	// PeriodID is the period of the first day; nil when that day has no period
	PeriodID      *uuid.UUID    `gorm:"type:uuid;index" json:"period_id,omitempty"`
	DateStart     calendar.Date `gorm:"type:date;not null;index" json:"date_start"`
	DateEnd       calendar.Date `gorm:"type:date;not null" json:"date_end"`
	NumberTickets int           `gorm:"not null;check:number_tickets >= 1" json:"number_tickets"`
	TotalPrice    float64       `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Status        Status        `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED', 'COMPLETED');default:'CONFIRMED'" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`

	// Relationships
	User   *users.User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Period *periods.Period `json:"period,omitempty" gorm:"foreignKey:PeriodID;constraint:OnDelete:SET NULL;"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) IsConfirmed() bool {
	return r.Status == StatusConfirmed
}

func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CancellableOn reports whether the reservation may be cancelled on day:
// it must still be confirmed and day must come before its first day
func (r *Reservation) CancellableOn(day calendar.Date) bool {
	return r.Status.CanBeCancelled() && day.Before(r.DateStart)
}

func (r *Reservation) Cancel(now time.Time) {
	r.Status = StatusCancelled
	r.CancelledAt = &now
	r.UpdatedAt = now
}

// TicketFilename is the download name of the reservation's PDF ticket
func (r *Reservation) TicketFilename() string {
	return fmt.Sprintf("zombieland-%s.pdf", strings.ToLower(r.BookingRef))
}

func (r *Reservation) ToResponse() ReservationResponse {
	resp := ReservationResponse{
		ID:            r.ID,
		BookingRef:    r.BookingRef,
		UserID:        r.UserID,
		PeriodID:      r.PeriodID,
		DateStart:     r.DateStart,
		DateEnd:       r.DateEnd,
		NumberTickets: r.NumberTickets,
		TotalPrice:    r.TotalPrice,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		CancelledAt:   r.CancelledAt,
	}
	if r.Period != nil {
		resp.PeriodName = r.Period.Name
	}
	if r.User != nil {
		u := r.User.ToResponse()
		resp.User = &u
	}
	return resp
}

// generateBookingRef returns a short human-readable reference such as ZL-3F9A1C0B
func generateBookingRef() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ZL-" + strings.ToUpper(id[:8])
}
