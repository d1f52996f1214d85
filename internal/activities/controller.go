package activities

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zombieland/internal/shared/utils/response"
)

type Controller interface {
	ListActivities(c *gin.Context)
	GetActivity(c *gin.Context)
	CreateActivity(c *gin.Context)
	UpdateActivity(c *gin.Context)
	DeleteActivity(c *gin.Context)

	ListCategories(c *gin.Context)
	CreateCategory(c *gin.Context)
	DeleteCategory(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// ListActivities godoc
// @Summary  List activities
// @Tags     activities
// @Produce  json
// @Param    search      query string false "title or description"
// @Param    category_id query string false "category"
// @Param    page        query int    false "page"
// @Param    limit       query int    false "page size"
// @Success  200 {object} response.StandardApiResponse{data=PaginatedActivities}
// @Router   /activities [get]
func (ctrl *controller) ListActivities(c *gin.Context) {
	var query ActivityListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err)
		return
	}

	page, err := ctrl.service.ListActivities(c.Request.Context(), query)
	if err != nil {
		fail(c, err, "Failed to list activities")
		return
	}
	response.Success(c, http.StatusOK, "Activities retrieved successfully", page)
}

func (ctrl *controller) GetActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	activity, err := ctrl.service.GetActivity(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to get activity")
		return
	}
	response.Success(c, http.StatusOK, "Activity retrieved successfully", activity)
}

func (ctrl *controller) CreateActivity(c *gin.Context) {
	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	activity, err := ctrl.service.CreateActivity(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to create activity")
		return
	}
	response.Success(c, http.StatusCreated, "Activity created successfully", activity)
}

func (ctrl *controller) UpdateActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	activity, err := ctrl.service.UpdateActivity(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err, "Failed to update activity")
		return
	}
	response.Success(c, http.StatusOK, "Activity updated successfully", activity)
}

func (ctrl *controller) DeleteActivity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteActivity(c.Request.Context(), id); err != nil {
		fail(c, err, "Failed to delete activity")
		return
	}
	response.Success(c, http.StatusOK, "Activity deleted successfully", nil)
}

func (ctrl *controller) ListCategories(c *gin.Context) {
	list, err := ctrl.service.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, "Categories retrieved successfully", list)
}

func (ctrl *controller) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	category, err := ctrl.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to create category")
		return
	}
	response.Success(c, http.StatusCreated, "Category created successfully", category)
}

func (ctrl *controller) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteCategory(c.Request.Context(), id); err != nil {
		fail(c, err, "Failed to delete category")
		return
	}
	response.Success(c, http.StatusOK, "Category deleted successfully", nil)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Activity not found", nil, nil)
	case errors.Is(err, ErrCategoryNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Category not found", nil, nil)
	case errors.Is(err, ErrCategoryExists):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidTitle):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, err.Error())
	}
}
