package activities

type CreateActivityRequest struct {
	Title       string   `json:"title" binding:"required,min=2,max=150"`
	Description string   `json:"description" binding:"max=5000"`
	CategoryID  string   `json:"category_id" binding:"omitempty,uuid"`
	Multimedias []string `json:"multimedias" binding:"omitempty,dive,url"`
}

// UpdateActivityRequest replaces the media list when multimedias is present
type UpdateActivityRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=2,max=150"`
	Description *string   `json:"description" binding:"omitempty,max=5000"`
	CategoryID  *string   `json:"category_id" binding:"omitempty,uuid"`
	Multimedias *[]string `json:"multimedias" binding:"omitempty,dive,url"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type ActivityListQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
}

func (q *ActivityListQuery) normalize() {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 12
	}
}
