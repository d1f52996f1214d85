package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"zombieland/internal/shared/middleware"
	"zombieland/internal/shared/utils/response"
)

type Controller interface {
	GetMe(c *gin.Context)
	UpdateMe(c *gin.Context)
	ListRoles(c *gin.Context)

	ListUsers(c *gin.Context)
	GetUser(c *gin.Context)
	CreateUser(c *gin.Context)
	UpdateUser(c *gin.Context)
	DeleteUser(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	profile, err := ctrl.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		ctrl.fail(c, err, "Failed to get profile")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Profile retrieved successfully", profile, nil)
}

func (ctrl *controller) UpdateMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	profile, err := ctrl.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		ctrl.fail(c, err, "Failed to update profile")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Profile updated successfully", profile, nil)
}

func (ctrl *controller) ListRoles(c *gin.Context) {
	response.RespondJSON(c, "success", http.StatusOK, "Roles retrieved successfully", ctrl.service.ListRoles(), nil)
}

func (ctrl *controller) ListUsers(c *gin.Context) {
	var query UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := ctrl.service.ListUsers(c.Request.Context(), query)
	if err != nil {
		ctrl.fail(c, err, "Failed to list users")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Users retrieved successfully", result, nil)
}

func (ctrl *controller) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid user ID", nil, err.Error())
		return
	}

	user, err := ctrl.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		ctrl.fail(c, err, "Failed to get user")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "User retrieved successfully", user, nil)
}

func (ctrl *controller) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := ctrl.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		ctrl.fail(c, err, "Failed to create user")
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "User created successfully", user, nil)
}

func (ctrl *controller) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid user ID", nil, err.Error())
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err)
		return
	}

	user, err := ctrl.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		ctrl.fail(c, err, "Failed to update user")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "User updated successfully", user, nil)
}

func (ctrl *controller) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid user ID", nil, err.Error())
		return
	}

	if err := ctrl.service.DeleteUser(c.Request.Context(), id); err != nil {
		ctrl.fail(c, err, "Failed to delete user")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "User deleted successfully", nil, nil)
}

func (ctrl *controller) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "User not found", nil, nil)
	case errors.Is(err, ErrEmailTaken):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidRole):
		response.RespondJSON(c, "error", http.StatusBadRequest, "Role must be one of USER, ADMIN", nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, err.Error())
	}
}
