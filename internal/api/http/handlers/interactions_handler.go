package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-gateway/internal/api/dto"
	"github.com/spec-kit/crm-gateway/internal/auth"
	"github.com/spec-kit/crm-gateway/internal/repository"
	"github.com/spec-kit/crm-gateway/internal/service"
	apperrors "github.com/spec-kit/crm-gateway/pkg/util"
)

// InteractionsHandler exposes the interaction lifecycle endpoints.
type InteractionsHandler struct {
	interactions *service.InteractionService
}

// NewInteractionsHandler constructs handler.
func NewInteractionsHandler(interactions *service.InteractionService) *InteractionsHandler {
	return &InteractionsHandler{interactions: interactions}
}

// Preview handles POST /interactions/preview. It evaluates the gate and
// stepper for the submitted form state without persisting anything.
func (h *InteractionsHandler) Preview(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var payload dto.InteractionFormPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	gate, steps, mode := h.interactions.Preview(payload.FormValues())
	return c.JSON(fiber.Map{"data": dto.NewPreviewResponse(gate, steps, mode)})
}

// Submit handles POST /interactions.
func (h *InteractionsHandler) Submit(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var payload dto.InteractionFormPayload
	if err := c.BodyParser(&payload); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input, err := payload.SubmitInput()
	if err != nil {
		return err
	}

	interaction, err := h.interactions.SubmitInteraction(c.Context(), principal.User.AgencyID, principal.User.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewInteractionResponse(interaction)})
}

// Get handles GET /interactions/:id.
func (h *InteractionsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	interaction, err := h.interactions.GetInteraction(c.Context(), principal.User.AgencyID, c.Params("id"))
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewInteractionResponse(interaction)})
}

// List handles GET /interactions.
func (h *InteractionsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter, err := listFilterFromQuery(c)
	if err != nil {
		return err
	}

	interactions, err := h.interactions.ListInteractions(c.Context(), principal.User.AgencyID, filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewInteractionListResponse(interactions)})
}

// Update handles PATCH /interactions/:id.
func (h *InteractionsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input, err := req.UpdateInput()
	if err != nil {
		return err
	}

	interaction, err := h.interactions.UpdateInteraction(c.Context(), principal.User.AgencyID, principal.User.ID, c.Params("id"), input)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewInteractionResponse(interaction)})
}

func listFilterFromQuery(c *fiber.Ctx) (repository.InteractionFilter, error) {
	filter := repository.InteractionFilter{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}

	if statuses := strings.TrimSpace(c.Query("status_ids")); statuses != "" {
		filter.StatusIDs = strings.Split(statuses, ",")
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.SearchTerm = &search
	}
	switch c.Query("terminal") {
	case "":
	case "true":
		terminal := true
		filter.Terminal = &terminal
	case "false":
		terminal := false
		filter.Terminal = &terminal
	default:
		return filter, apperrors.NewValidationError("terminal must be true or false", nil)
	}

	for query, target := range map[string]**time.Time{
		"reminder_from": &filter.ReminderFrom,
		"reminder_to":   &filter.ReminderTo,
		"created_from":  &filter.CreatedFrom,
		"created_to":    &filter.CreatedTo,
	} {
		raw := strings.TrimSpace(c.Query(query))
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid timestamp, expected RFC 3339", map[string]any{
				"field": query,
			})
		}
		*target = &parsed
	}
	return filter, nil
}
