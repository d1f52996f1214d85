package users

import (
	"time"

	"github.com/google/uuid"

	"zombieland/internal/calendar"
	"zombieland/internal/shared/utils/response"
)

// UserResponse is a user without credentials
type UserResponse struct {
	ID          uuid.UUID     `json:"id"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phone_number,omitempty"`
	BirthDate   calendar.Date `json:"birth_date"`
	ImageURL    string        `json:"image_url,omitempty"`
	Role        Role          `json:"role"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type PaginatedUsers struct {
	Users      []UserResponse      `json:"users"`
	Pagination response.Pagination `json:"pagination"`
}

type RoleResponse struct {
	Name Role `json:"name"`
}
