package handlers

import (
	"errors"
	"strconv"

	"tricount-api/internal/core/domain"
	"tricount-api/internal/core/services"
	"tricount-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TricountHandler handles tricount endpoints
type TricountHandler struct {
	tricountService *services.TricountService
}

// NewTricountHandler creates a new tricount handler
func NewTricountHandler(tricountService *services.TricountService) *TricountHandler {
	return &TricountHandler{
		tricountService: tricountService,
	}
}

// TitleAvailabilityRequest represents a title availability probe.
// TricountID zero means a new tricount.
type TitleAvailabilityRequest struct {
	Title      string `json:"title"`
	TricountID uint   `json:"tricount_id"`
}

// DeleteTricountRequest identifies the tricount to delete
type DeleteTricountRequest struct {
	TricountID uint `json:"tricount_id"`
}

// GetMyTricounts handles listing the caller's tricounts
// @Summary List my tricounts
// @Description Get every tricount the caller participates in, newest first (admins see all)
// @Tags Tricounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /rpc/get_my_tricounts [get]
func (h *TricountHandler) GetMyTricounts(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	tricounts, err := h.tricountService.GetMyTricounts(c.Context(), actor)
	if err != nil {
		return response.InternalServerError(c, "Failed to list tricounts")
	}

	return response.Success(c, "Tricounts retrieved successfully", tricounts)
}

// GetTricountBalance handles balance queries
// @Summary Get tricount balance
// @Description Compute paid, due and balance for every participant of one tricount
// @Tags Tricounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param tricount_id query int true "Tricount ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rpc/get_tricount_balance [get]
func (h *TricountHandler) GetTricountBalance(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	tricountID, err := strconv.ParseUint(c.Query("tricount_id"), 10, 32)
	if err != nil || tricountID == 0 {
		return response.BadRequest(c, "tricount_id is required")
	}

	balances, err := h.tricountService.GetBalance(c.Context(), actor, uint(tricountID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTricountNotFound):
			return response.NotFound(c, "Tricount not found")
		case errors.Is(err, domain.ErrAccessDenied):
			return response.Forbidden(c, "Access denied")
		default:
			return response.InternalServerError(c, "Failed to compute balance")
		}
	}

	return response.Success(c, "Balance computed successfully", balances)
}

// CheckTricountTitleAvailable handles title availability probes
// @Summary Check tricount title availability
// @Description Report whether the title is free among the creator's tricounts
// @Tags Tricounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body TitleAvailabilityRequest true "Title to probe"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /rpc/check_tricount_title_available [post]
func (h *TricountHandler) CheckTricountTitleAvailable(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req TitleAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	available, err := h.tricountService.IsTitleAvailable(c.Context(), actor.ID, req.Title, req.TricountID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check title availability")
	}

	return response.Success(c, "Title availability checked", available)
}

// SaveTricount handles tricount create/update
// @Summary Save tricount
// @Description Create a tricount (id zero) or update an existing one
// @Tags Tricounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SaveTricountInput true "Tricount data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rpc/save_tricount [post]
func (h *TricountHandler) SaveTricount(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.SaveTricountInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tricount, err := h.tricountService.SaveTricount(c.Context(), actor, &req)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Messages)
		}
		switch {
		case errors.Is(err, domain.ErrTricountNotFound):
			return response.NotFound(c, "Tricount not found")
		case errors.Is(err, domain.ErrAccessDenied):
			return response.Forbidden(c, "Access denied")
		default:
			return response.InternalServerError(c, "Failed to save tricount")
		}
	}

	return response.Success(c, "Tricount saved successfully", tricount)
}

// DeleteTricount handles tricount deletion
// @Summary Delete tricount
// @Description Delete a tricount with its operations and repartitions; creator or admin only
// @Tags Tricounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DeleteTricountRequest true "Tricount to delete"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rpc/delete_tricount [post]
func (h *TricountHandler) DeleteTricount(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req DeleteTricountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.tricountService.DeleteTricount(c.Context(), actor, req.TricountID); err != nil {
		switch {
		case errors.Is(err, domain.ErrTricountNotFound):
			return response.NotFound(c, "Tricount not found")
		case errors.Is(err, domain.ErrAccessDenied):
			return response.Forbidden(c, "Access denied")
		default:
			return response.InternalServerError(c, "Failed to delete tricount")
		}
	}

	return response.Success(c, "Tricount deleted successfully", nil)
}
