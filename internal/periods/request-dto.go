package periods

import "zombieland/internal/calendar"

type CreatePeriodRequest struct {
	Name      string        `json:"name" binding:"required,min=2,max=100"`
	DateStart calendar.Date `json:"date_start"`
	DateEnd   calendar.Date `json:"date_end"`
	Price     *float64      `json:"price" binding:"required,min=0"`
}

type UpdatePeriodRequest struct {
	Name      *string        `json:"name" binding:"omitempty,min=2,max=100"`
	DateStart *calendar.Date `json:"date_start"`
	DateEnd   *calendar.Date `json:"date_end"`
	Price     *float64       `json:"price" binding:"omitempty,min=0"`
}
