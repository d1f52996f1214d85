package activities

import (
	"time"

	"github.com/google/uuid"
)

// Category groups activities on the public site
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null;size:100"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Activity is an attraction of the park
type Activity struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string     `json:"title" gorm:"not null;size:150"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null;size:150"`
	Description string     `json:"description" gorm:"type:text"`
	CategoryID  *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`

	Category    *Category    `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Multimedias []Multimedia `json:"multimedias,omitempty" gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE;"`
}

// Multimedia is an image or video attached to an activity
type Multimedia struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	URL        string    `json:"url" gorm:"not null"`
	ActivityID uuid.UUID `json:"activity_id" gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Category) TableName() string   { return "categories" }
func (Activity) TableName() string   { return "activities" }
func (Multimedia) TableName() string { return "multimedias" }

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func (a *Activity) ToResponse() ActivityResponse {
	resp := ActivityResponse{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Description: a.Description,
		CategoryID:  a.CategoryID,
		Multimedias: make([]MultimediaResponse, len(a.Multimedias)),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Category != nil {
		c := a.Category.ToResponse()
		resp.Category = &c
	}
	for i, m := range a.Multimedias {
		resp.Multimedias[i] = MultimediaResponse{ID: m.ID, URL: m.URL}
	}
	return resp
}
