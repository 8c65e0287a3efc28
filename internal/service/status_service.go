package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-gateway/internal/domain"
	"github.com/spec-kit/crm-gateway/internal/repository"
	apperrors "github.com/spec-kit/crm-gateway/pkg/util"
)

// StatusService manages the per-agency status catalog.
type StatusService struct {
	statuses repository.StatusRepository
	logger   *zap.Logger
}

// NewStatusService constructs the service.
func NewStatusService(statuses repository.StatusRepository, logger *zap.Logger) *StatusService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusService{statuses: statuses, logger: logger}
}

// StatusUpsertInput carries the fields for a status create or update.
type StatusUpsertInput struct {
	ID         string
	Label      string
	Category   domain.StatusCategory
	IsDefault  bool
	IsTerminal bool
	SortOrder  int
}

// ListByAgency returns the agency's statuses ordered by sort order.
func (s *StatusService) ListByAgency(ctx context.Context, agencyID string) ([]domain.AgencyStatus, error) {
	return s.statuses.ListByAgency(ctx, agencyID)
}

// CatalogByAgency returns the agency's statuses keyed by id.
func (s *StatusService) CatalogByAgency(ctx context.Context, agencyID string) (domain.StatusCatalog, error) {
	statuses, err := s.statuses.ListByAgency(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	catalog := make(domain.StatusCatalog, len(statuses))
	for _, status := range statuses {
		catalog[status.ID] = status
	}
	return catalog, nil
}

// Upsert creates or updates a status. At most one status per agency may be
// the default: marking a status default clears the previous one.
func (s *StatusService) Upsert(ctx context.Context, agencyID string, input StatusUpsertInput) (*domain.AgencyStatus, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, apperrors.NewValidationError("status label is required", nil)
	}
	switch input.Category {
	case domain.StatusCategoryTodo, domain.StatusCategoryInProgress, domain.StatusCategoryDone:
	default:
		return nil, apperrors.NewValidationError("unknown status category", map[string]any{
			"category": string(input.Category),
		})
	}

	if input.IsDefault {
		if err := s.statuses.ClearDefault(ctx, agencyID); err != nil {
			return nil, err
		}
	}

	status := &domain.AgencyStatus{
		ID:         input.ID,
		AgencyID:   agencyID,
		Label:      label,
		Category:   input.Category,
		IsDefault:  input.IsDefault,
		IsTerminal: input.IsTerminal,
		SortOrder:  input.SortOrder,
	}

	if input.ID == "" {
		if err := s.statuses.Create(ctx, status); err != nil {
			return nil, err
		}
		s.logger.Info("status created", zap.String("agency_id", agencyID), zap.String("label", label))
		return status, nil
	}

	existing, err := s.statuses.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if existing.AgencyID != agencyID {
		return nil, apperrors.NewForbidden("status belongs to another agency")
	}
	if err := s.statuses.Update(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}
