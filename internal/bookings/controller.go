package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zombieland/internal/calendar"
	"zombieland/internal/shared/middleware"
	"zombieland/internal/shared/utils/response"
	"zombieland/internal/users"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// Quote handles POST /api/v1/quotes
//
// @Summary  Price a date window
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    body body QuoteRequest true "window and tickets"
// @Success  200 {object} response.StandardApiResponse{data=pricing.Quote}
// @Router   /quotes [post]
func (ctrl *Controller) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	quote, err := ctrl.service.Quote(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to compute quote")
		return
	}
	response.Success(c, http.StatusOK, "Quote computed successfully", quote)
}

// CreateReservation handles POST /api/v1/bookings
//
// @Summary  Book a date window for the caller
// @Tags     bookings
// @Security BearerAuth
// @Accept   json
// @Produce  json
// @Param    body body CreateReservationRequest true "window and tickets"
// @Success  201 {object} response.StandardApiResponse{data=ReservationResponse}
// @Failure  422 {object} response.StandardApiResponse
// @Router   /bookings [post]
func (ctrl *Controller) CreateReservation(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	reservation, err := ctrl.service.CreateReservation(c.Request.Context(), userID, req)
	if err != nil {
		fail(c, err, "Failed to create reservation")
		return
	}
	response.Success(c, http.StatusCreated, "Reservation confirmed", reservation)
}

// ListMyReservations handles GET /api/v1/users/me/bookings
func (ctrl *Controller) ListMyReservations(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	list, err := ctrl.service.ListUserReservations(c.Request.Context(), userID)
	if err != nil {
		fail(c, err, "Failed to list reservations")
		return
	}
	response.Success(c, http.StatusOK, "Reservations retrieved successfully", list)
}

// GetReservation handles GET /api/v1/bookings/:id
func (ctrl *Controller) GetReservation(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	reservation, err := ctrl.service.GetReservation(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		fail(c, err, "Failed to get reservation")
		return
	}
	response.Success(c, http.StatusOK, "Reservation retrieved successfully", reservation)
}

// CancelReservation handles POST /api/v1/bookings/:id/cancel
func (ctrl *Controller) CancelReservation(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	reservation, err := ctrl.service.CancelReservation(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err, "Failed to cancel reservation")
		return
	}
	response.Success(c, http.StatusOK, "Reservation cancelled successfully", reservation)
}

// DownloadTicket handles GET /api/v1/bookings/:id/ticket
//
// @Summary  Download the PDF ticket
// @Tags     bookings
// @Security BearerAuth
// @Produce  application/pdf
// @Param    id path string true "reservation id"
// @Router   /bookings/{id}/ticket [get]
func (ctrl *Controller) DownloadTicket(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	pdf, filename, err := ctrl.service.Ticket(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		fail(c, err, "Failed to render ticket")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ListReservations handles GET /api/v1/admin/bookings
func (ctrl *Controller) ListReservations(c *gin.Context) {
	var query ReservationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err)
		return
	}

	page, err := ctrl.service.ListReservations(c.Request.Context(), query)
	if err != nil {
		fail(c, err, "Failed to list reservations")
		return
	}
	response.Success(c, http.StatusOK, "Reservations retrieved successfully", page)
}

// AdminCreateReservation handles POST /api/v1/admin/bookings
func (ctrl *Controller) AdminCreateReservation(c *gin.Context) {
	var req AdminCreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	reservation, err := ctrl.service.AdminCreateReservation(c.Request.Context(), req)
	if err != nil {
		fail(c, err, "Failed to create reservation")
		return
	}
	response.Success(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// UpdateReservation handles PUT /api/v1/admin/bookings/:id
func (ctrl *Controller) UpdateReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AdminUpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	reservation, err := ctrl.service.UpdateReservation(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err, "Failed to update reservation")
		return
	}
	response.Success(c, http.StatusOK, "Reservation updated successfully", reservation)
}

// DeleteReservation handles DELETE /api/v1/admin/bookings/:id
func (ctrl *Controller) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.service.DeleteReservation(c.Request.Context(), id); err != nil {
		fail(c, err, "Failed to delete reservation")
		return
	}
	response.Success(c, http.StatusOK, "Reservation deleted successfully", nil)
}

// Stats handles GET /api/v1/admin/bookings/stats
//
// @Summary  Tickets and revenue of the previous day, month and year
// @Tags     admin
// @Security BearerAuth
// @Produce  json
// @Success  200 {object} response.StandardApiResponse{data=StatsResponse}
// @Router   /admin/bookings/stats [get]
func (ctrl *Controller) Stats(c *gin.Context) {
	stats, err := ctrl.service.Stats(c.Request.Context())
	if err != nil {
		fail(c, err, "Failed to compute statistics")
		return
	}
	response.Success(c, http.StatusOK, "Statistics retrieved successfully", stats)
}

func caller(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid reservation ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrReservationNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Reservation not found", nil, nil)
	case errors.Is(err, users.ErrUserNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "User not found", nil, nil)
	case errors.Is(err, ErrForbidden):
		response.RespondJSON(c, "error", http.StatusForbidden, err.Error(), nil, nil)
	case errors.Is(err, ErrPricingGap):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, err.Error(), nil, nil)
	case errors.Is(err, ErrDateStartRequired),
		errors.Is(err, ErrDateInPast),
		errors.Is(err, ErrZeroTotal),
		errors.Is(err, ErrTooManyTickets),
		errors.Is(err, calendar.ErrInvalidRange):
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
	case errors.Is(err, ErrNotCancellable),
		errors.Is(err, ErrCancellationClosed),
		errors.Is(err, ErrTicketUnavailable):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, err.Error())
	}
}
