package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-gateway/internal/api/dto"
	"github.com/spec-kit/crm-gateway/internal/auth"
	"github.com/spec-kit/crm-gateway/internal/service"
	apperrors "github.com/spec-kit/crm-gateway/pkg/util"
)

// StatusesHandler manages the per-agency status catalog.
type StatusesHandler struct {
	statuses *service.StatusService
}

// NewStatusesHandler constructs handler.
func NewStatusesHandler(statuses *service.StatusService) *StatusesHandler {
	return &StatusesHandler{statuses: statuses}
}

// List handles GET /statuses.
func (h *StatusesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	statuses, err := h.statuses.ListByAgency(c.Context(), principal.User.AgencyID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewStatusListResponse(statuses)})
}

// Upsert handles PUT /statuses. Managers and admins only.
func (h *StatusesHandler) Upsert(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.StatusUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	status, err := h.statuses.Upsert(c.Context(), principal.User.AgencyID, req.UpsertInput())
	if err != nil {
		return apperrors.MapError(err)
	}

	code := http.StatusOK
	if req.ID == "" {
		code = http.StatusCreated
	}
	return c.Status(code).JSON(fiber.Map{"data": dto.NewStatusResponse(status)})
}
