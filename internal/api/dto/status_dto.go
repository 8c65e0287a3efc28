package dto

import (
	"github.com/spec-kit/crm-gateway/internal/domain"
	"github.com/spec-kit/crm-gateway/internal/service"
)

// StatusUpsertRequest creates or updates an agency status.
type StatusUpsertRequest struct {
	ID         string `json:"id"`
	Label      string `json:"label" validate:"required"`
	Category   string `json:"category" validate:"required,oneof=todo in_progress done"`
	IsDefault  bool   `json:"is_default"`
	IsTerminal bool   `json:"is_terminal"`
	SortOrder  int    `json:"sort_order"`
}

// UpsertInput converts the request for the status service.
func (r StatusUpsertRequest) UpsertInput() service.StatusUpsertInput {
	return service.StatusUpsertInput{
		ID:         r.ID,
		Label:      r.Label,
		Category:   domain.StatusCategory(r.Category),
		IsDefault:  r.IsDefault,
		IsTerminal: r.IsTerminal,
		SortOrder:  r.SortOrder,
	}
}

// StatusResponse is the wire shape of an agency status.
type StatusResponse struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Category   string `json:"category"`
	IsDefault  bool   `json:"is_default"`
	IsTerminal bool   `json:"is_terminal"`
	SortOrder  int    `json:"sort_order"`
}

// NewStatusResponse maps a status to the wire shape.
func NewStatusResponse(status *domain.AgencyStatus) StatusResponse {
	return StatusResponse{
		ID:         status.ID,
		Label:      status.Label,
		Category:   string(status.Category),
		IsDefault:  status.IsDefault,
		IsTerminal: status.IsTerminal,
		SortOrder:  status.SortOrder,
	}
}

// NewStatusListResponse maps statuses to the wire shape.
func NewStatusListResponse(statuses []domain.AgencyStatus) []StatusResponse {
	responses := make([]StatusResponse, len(statuses))
	for i := range statuses {
		responses[i] = NewStatusResponse(&statuses[i])
	}
	return responses
}
