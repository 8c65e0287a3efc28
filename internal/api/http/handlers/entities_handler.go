package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-gateway/internal/api/dto"
	"github.com/spec-kit/crm-gateway/internal/auth"
	"github.com/spec-kit/crm-gateway/internal/service"
	apperrors "github.com/spec-kit/crm-gateway/pkg/util"
)

// EntitiesHandler backs the entity and contact pickers.
type EntitiesHandler struct {
	entities    *service.EntityService
	suggestions service.CompanySuggester
}

// NewEntitiesHandler constructs handler.
func NewEntitiesHandler(entities *service.EntityService, suggestions service.CompanySuggester) *EntitiesHandler {
	return &EntitiesHandler{entities: entities, suggestions: suggestions}
}

// Search handles GET /entities?q=term.
func (h *EntitiesHandler) Search(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	entities, err := h.entities.Search(c.Context(), principal.User.AgencyID, c.Query("q"), c.QueryInt("limit", 0))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewEntityListResponse(entities)})
}

// ListContacts handles GET /entities/:id/contacts.
func (h *EntitiesHandler) ListContacts(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	contacts, err := h.entities.ListContacts(c.Context(), principal.User.AgencyID, c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewContactListResponse(contacts)})
}

// Suggestions handles GET /entities/suggestions?q=prefix. It returns known
// company names for the agency, most used first.
func (h *EntitiesHandler) Suggestions(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	names, err := h.suggestions.SuggestCompanies(c.Context(), principal.User.AgencyID, c.Query("q"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": names})
}
