package periods

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zombieland/internal/shared/utils/response"
)

type Controller interface {
	ListPeriods(c *gin.Context)
	GetPeriod(c *gin.Context)
	CreatePeriod(c *gin.Context)
	UpdatePeriod(c *gin.Context)
	DeletePeriod(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// ListPeriods godoc
// @Summary  List pricing periods
// @Tags     periods
// @Produce  json
// @Success  200 {object} response.StandardApiResponse{data=[]PeriodResponse}
// @Router   /periods [get]
func (ctrl *controller) ListPeriods(c *gin.Context) {
	list, err := ctrl.service.ListPeriods(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list periods", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Periods retrieved successfully", list, nil)
}

func (ctrl *controller) GetPeriod(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	period, err := ctrl.service.GetPeriod(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Failed to get period")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Period retrieved successfully", period, nil)
}

func (ctrl *controller) CreatePeriod(c *gin.Context) {
	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	period, err := ctrl.service.CreatePeriod(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to create period")
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Period created successfully", period, nil)
}

func (ctrl *controller) UpdatePeriod(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	period, err := ctrl.service.UpdatePeriod(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err, "Failed to update period")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Period updated successfully", period, nil)
}

func (ctrl *controller) DeletePeriod(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeletePeriod(c.Request.Context(), id); err != nil {
		fail(c, err, "Failed to delete period")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Period deleted successfully", nil, nil)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid period ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrPeriodNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Period not found", nil, nil)
	case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrDatesRequired):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, err.Error())
	}
}
