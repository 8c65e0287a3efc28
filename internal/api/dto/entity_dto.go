package dto

import (
	"time"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

// EntityResponse is the wire shape of an entity.
type EntityResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	City       string    `json:"city,omitempty"`
	EntityType string    `json:"entity_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewEntityListResponse maps entities to the wire shape.
func NewEntityListResponse(entities []domain.Entity) []EntityResponse {
	responses := make([]EntityResponse, len(entities))
	for i, entity := range entities {
		responses[i] = EntityResponse{
			ID:         entity.ID,
			Name:       entity.Name,
			City:       entity.City,
			EntityType: entity.EntityType,
			CreatedAt:  entity.CreatedAt,
		}
	}
	return responses
}

// ContactResponse is the wire shape of an entity contact.
type ContactResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Name      string `json:"name"`
	Position  string `json:"position,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// NewContactListResponse maps contacts to the wire shape.
func NewContactListResponse(contacts []domain.EntityContact) []ContactResponse {
	responses := make([]ContactResponse, len(contacts))
	for i, contact := range contacts {
		responses[i] = ContactResponse{
			ID:        contact.ID,
			FirstName: contact.FirstName,
			LastName:  contact.LastName,
			Name:      contact.Name,
			Position:  contact.Position,
			Phone:     contact.Phone,
			Email:     contact.Email,
		}
	}
	return responses
}
