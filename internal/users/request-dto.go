package users

import "zombieland/internal/calendar"

type UpdateProfileRequest struct {
	FirstName   *string        `json:"first_name" binding:"omitempty,min=2,max=100"`
	LastName    *string        `json:"last_name" binding:"omitempty,min=2,max=100"`
	PhoneNumber *string        `json:"phone_number" binding:"omitempty,max=20"`
	BirthDate   *calendar.Date `json:"birth_date"`
	ImageURL    *string        `json:"image_url" binding:"omitempty,url"`
}

type CreateUserRequest struct {
	FirstName   string        `json:"first_name" binding:"required,min=2,max=100"`
	LastName    string        `json:"last_name" binding:"required,min=2,max=100"`
	Email       string        `json:"email" binding:"required,email"`
	Password    string        `json:"password" binding:"required,min=8"`
	PhoneNumber string        `json:"phone_number" binding:"omitempty,max=20"`
	BirthDate   calendar.Date `json:"birth_date"`
	ImageURL    string        `json:"image_url" binding:"omitempty,url"`
	Role        string        `json:"role" binding:"omitempty"`
}

// UpdateUserRequest is the admin variant of a profile update
type UpdateUserRequest struct {
	UpdateProfileRequest
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role"`
}

type UserListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Role   string `form:"role"`
}
