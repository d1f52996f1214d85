package users

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"zombieland/internal/calendar"
	"zombieland/internal/shared/constants"
)

type Role string

const (
	RoleUser  Role = constants.RoleUser
	RoleAdmin Role = constants.RoleAdmin
)

// Roles lists every assignable role
var Roles = []Role{RoleUser, RoleAdmin}

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ParseRole normalizes case; ok is false for unknown roles
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.IsValid()
}

type User struct {
	ID          uuid.UUID     `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName   string        `json:"first_name" gorm:"not null"`
	LastName    string        `json:"last_name" gorm:"not null"`
	Email       string        `json:"email" gorm:"uniqueIndex;not null"`
	Password    string        `json:"-" gorm:"not null"`
	PhoneNumber string        `json:"phone_number"`
	BirthDate   calendar.Date `json:"birth_date"`
	ImageURL    string        `json:"image_url"`
	Role        Role          `json:"role" gorm:"type:varchar(10);not null;default:'USER'"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		BirthDate:   u.BirthDate,
		ImageURL:    u.ImageURL,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
