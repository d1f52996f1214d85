package activities

import (
	"time"

	"github.com/google/uuid"

	"zombieland/internal/shared/utils/response"
)

type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type MultimediaResponse struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

type ActivityResponse struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Slug        string               `json:"slug"`
	Description string               `json:"description"`
	CategoryID  *uuid.UUID           `json:"category_id,omitempty"`
	Category    *CategoryResponse    `json:"category,omitempty"`
	Multimedias []MultimediaResponse `json:"multimedias"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

type PaginatedActivities struct {
	Activities []ActivityResponse  `json:"activities"`
	Pagination response.Pagination `json:"pagination"`
}
