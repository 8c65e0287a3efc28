package service

import (
	"context"
	"strings"

	"github.com/spec-kit/crm-gateway/internal/domain"
	"github.com/spec-kit/crm-gateway/internal/repository"
	apperrors "github.com/spec-kit/crm-gateway/pkg/util"
)

const defaultSearchLimit = 20

// EntityService backs the entity and contact pickers of the cockpit.
type EntityService struct {
	entities repository.EntityRepository
	contacts repository.ContactRepository
}

// NewEntityService constructs the service.
func NewEntityService(entities repository.EntityRepository, contacts repository.ContactRepository) *EntityService {
	return &EntityService{entities: entities, contacts: contacts}
}

// Search returns the agency's entities whose name matches the term.
func (s *EntityService) Search(ctx context.Context, agencyID, term string, limit int) ([]domain.Entity, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultSearchLimit
	}
	return s.entities.Search(ctx, agencyID, strings.TrimSpace(term), limit)
}

// Get loads a single entity, scoped to the agency.
func (s *EntityService) Get(ctx context.Context, agencyID, entityID string) (*domain.Entity, error) {
	entity, err := s.entities.GetByID(ctx, entityID)
	if err != nil {
		return nil, err
	}
	if entity.AgencyID != agencyID {
		return nil, apperrors.NewForbidden("entity belongs to another agency")
	}
	return entity, nil
}

// ListContacts returns the contacts attached to an entity, verifying the
// entity belongs to the agency first.
func (s *EntityService) ListContacts(ctx context.Context, agencyID, entityID string) ([]domain.EntityContact, error) {
	if _, err := s.Get(ctx, agencyID, entityID); err != nil {
		return nil, err
	}
	return s.contacts.ListByEntity(ctx, entityID)
}
