package periods

import (
	"time"

	"github.com/google/uuid"

	"zombieland/internal/calendar"
)

// Period is a pricing season as stored
type Period struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string        `json:"name" gorm:"not null"`
	DateStart calendar.Date `json:"date_start" gorm:"type:date;not null;index"`
	DateEnd   calendar.Date `json:"date_end" gorm:"type:date;not null"`
	Price     float64       `json:"price" gorm:"type:numeric(10,2);not null"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (p *Period) ToResponse() PeriodResponse {
	return PeriodResponse{
		ID:        p.ID,
		Name:      p.Name,
		DateStart: p.DateStart,
		DateEnd:   p.DateEnd,
		Price:     p.Price,
	}
}
