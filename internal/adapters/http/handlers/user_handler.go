package handlers

import (
	"errors"

	"tricount-api/internal/core/domain"
	"tricount-api/internal/core/services"
	"tricount-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// EmailAvailabilityRequest represents an email availability probe.
// UserID, when non-zero, lets a user keep their own email.
type EmailAvailabilityRequest struct {
	Email  string `json:"email"`
	UserID uint   `json:"user_id"`
}

// FullNameAvailabilityRequest represents a display name availability probe
type FullNameAvailabilityRequest struct {
	FullName string `json:"full_name"`
	UserID   uint   `json:"user_id"`
}

// GetAllUsers handles listing every user
// @Summary List all users
// @Description Get every user, ordered by name
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /rpc/get_all_users [get]
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", users)
}

// GetUserData handles fetching the authenticated user's profile
// @Summary Get current user data
// @Description Get the authenticated user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rpc/get_user_data [get]
func (h *UserHandler) GetUserData(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.userService.GetUser(c.Context(), actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", user)
}

// CheckEmailAvailable handles email availability probes
// @Summary Check email availability
// @Description Report whether the email is free, ignoring the probing user's own record
// @Tags Users
// @Accept json
// @Produce json
// @Param body body EmailAvailabilityRequest true "Email to probe"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /rpc/check_email_available [post]
func (h *UserHandler) CheckEmailAvailable(c *fiber.Ctx) error {
	var req EmailAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	available, err := h.userService.IsEmailAvailable(c.Context(), req.Email, req.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check email availability")
	}

	return response.Success(c, "Email availability checked", available)
}

// CheckFullNameAvailable handles display name availability probes
// @Summary Check full name availability
// @Description Report whether the display name is free, ignoring the probing user's own record
// @Tags Users
// @Accept json
// @Produce json
// @Param body body FullNameAvailabilityRequest true "Name to probe"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /rpc/check_full_name_available [post]
func (h *UserHandler) CheckFullNameAvailable(c *fiber.Ctx) error {
	var req FullNameAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	available, err := h.userService.IsFullNameAvailable(c.Context(), req.FullName, req.UserID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check name availability")
	}

	return response.Success(c, "Name availability checked", available)
}
