package handlers

import (
	"errors"

	"tricount-api/internal/core/domain"
	"tricount-api/internal/core/services"
	"tricount-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OperationHandler handles expense endpoints
type OperationHandler struct {
	operationService *services.OperationService
}

// NewOperationHandler creates a new operation handler
func NewOperationHandler(operationService *services.OperationService) *OperationHandler {
	return &OperationHandler{
		operationService: operationService,
	}
}

// DeleteOperationRequest identifies the operation to delete
type DeleteOperationRequest struct {
	OperationID uint `json:"operation_id"`
}

// SaveOperation handles expense create/update
// @Summary Save operation
// @Description Create an expense (id zero) or update an existing one inside a tricount
// @Tags Operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SaveOperationInput true "Operation data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rpc/save_operation [post]
func (h *OperationHandler) SaveOperation(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.SaveOperationInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	operation, err := h.operationService.SaveOperation(c.Context(), actor, &req)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Messages)
		}
		switch {
		case errors.Is(err, domain.ErrTricountNotFound), errors.Is(err, domain.ErrOperationNotFound):
			return response.NotFound(c, "Not found")
		case errors.Is(err, domain.ErrAccessDenied):
			return response.Forbidden(c, "Access denied")
		default:
			return response.InternalServerError(c, "Failed to save operation")
		}
	}

	return response.Success(c, "Operation saved successfully", operation)
}

// DeleteOperation handles expense deletion
// @Summary Delete operation
// @Description Delete one expense; any participant of the owning tricount or an admin
// @Tags Operations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DeleteOperationRequest true "Operation to delete"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rpc/delete_operation [post]
func (h *OperationHandler) DeleteOperation(c *fiber.Ctx) error {
	actor, ok := actorFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req DeleteOperationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.operationService.DeleteOperation(c.Context(), actor, req.OperationID); err != nil {
		switch {
		case errors.Is(err, domain.ErrOperationNotFound), errors.Is(err, domain.ErrTricountNotFound):
			return response.NotFound(c, "Operation not found")
		case errors.Is(err, domain.ErrAccessDenied):
			return response.Forbidden(c, "Access denied")
		default:
			return response.InternalServerError(c, "Failed to delete operation")
		}
	}

	return response.Success(c, "Operation deleted successfully", nil)
}
