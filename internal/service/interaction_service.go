package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-gateway/internal/domain"
	"github.com/spec-kit/crm-gateway/internal/events"
	"github.com/spec-kit/crm-gateway/internal/form"
	"github.com/spec-kit/crm-gateway/internal/repository"
	"github.com/spec-kit/crm-gateway/internal/timeline"
	apperrors "github.com/spec-kit/crm-gateway/pkg/util"
)

// Step failure messages shown to the user, distinct per stage so the client
// knows which step failed.
const (
	MsgEntityCreateFailed      = "impossible de créer l'entité"
	MsgContactCreateFailed     = "impossible d'enregistrer le contact"
	MsgInteractionCreateFailed = "impossible d'enregistrer l'interaction"
	MsgInteractionUpdateFailed = "impossible de mettre à jour l'interaction"
)

// CompanySuggester remembers company names for autocomplete suggestions.
type CompanySuggester interface {
	RememberCompany(ctx context.Context, agencyID, name string) error
	SuggestCompanies(ctx context.Context, agencyID, prefix string) ([]string, error)
}

// InteractionService coordinates interaction submission and edits.
type InteractionService struct {
	interactions repository.InteractionRepository
	timelineRepo repository.EventRepository
	entities     repository.EntityRepository
	contacts     repository.ContactRepository
	statuses     repository.StatusRepository
	suggestions  CompanySuggester
	dispatcher   events.Dispatcher
	logger       *zap.Logger

	internalCompany string
	now             func() time.Time
}

// InteractionDependencies bundles collaborators for the service.
type InteractionDependencies struct {
	InteractionRepo repository.InteractionRepository
	EventRepo       repository.EventRepository
	EntityRepo      repository.EntityRepository
	ContactRepo     repository.ContactRepository
	StatusRepo      repository.StatusRepository
	Suggestions     CompanySuggester
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
	InternalCompany string
}

// NewInteractionService constructs the service.
func NewInteractionService(deps InteractionDependencies) *InteractionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InteractionService{
		interactions:    deps.InteractionRepo,
		timelineRepo:    deps.EventRepo,
		entities:        deps.EntityRepo,
		contacts:        deps.ContactRepo,
		statuses:        deps.StatusRepo,
		suggestions:     deps.Suggestions,
		dispatcher:      deps.Dispatcher,
		logger:          logger,
		internalCompany: deps.InternalCompany,
		now:             time.Now,
	}
}

// SubmitInput carries the cockpit form values at submit time.
type SubmitInput struct {
	Channel          string
	EntityType       string
	ContactService   string
	InteractionType  string
	CompanyName      string
	CompanyCity      string
	ContactFirstName string
	ContactLastName  string
	ContactPosition  string
	ContactPhone     string
	ContactEmail     string
	Subject          string
	MegaFamilies     []string
	StatusID         string
	OrderRef         string
	ReminderAt       *time.Time
	Notes            string
	EntityID         string
	ContactID        string
}

func (in SubmitInput) formValues() form.Values {
	return form.Values{
		Channel:          in.Channel,
		EntityType:       in.EntityType,
		ContactService:   in.ContactService,
		InteractionType:  in.InteractionType,
		CompanyName:      in.CompanyName,
		CompanyCity:      in.CompanyCity,
		ContactFirstName: in.ContactFirstName,
		ContactLastName:  in.ContactLastName,
		ContactPosition:  in.ContactPosition,
		ContactPhone:     in.ContactPhone,
		ContactEmail:     in.ContactEmail,
		Subject:          in.Subject,
		MegaFamilies:     in.MegaFamilies,
		StatusID:         in.StatusID,
		OrderRef:         in.OrderRef,
		Notes:            in.Notes,
		EntityID:         in.EntityID,
		ContactID:        in.ContactID,
	}
}

// UpdateInput carries the proposed edits for an existing interaction. The
// edit form always submits the full proposed values for status, reminder and
// order reference.
type UpdateInput struct {
	StatusID   string
	ReminderAt *time.Time
	OrderRef   string
	Note       string
}

// SubmitInteraction validates the form, creates missing entity/contact
// records, assembles the draft and persists it. Creation steps are
// independent calls: a later failure aborts the remaining steps but leaves
// earlier side effects in place.
func (s *InteractionService) SubmitInteraction(ctx context.Context, agencyID, userID string, input SubmitInput) (*domain.Interaction, error) {
	mode := domain.ClassifyEntityType(input.EntityType)
	values := input.formValues()
	hasEntity := strings.TrimSpace(input.EntityID) != ""
	hasContact := strings.TrimSpace(input.ContactID) != ""

	gate := form.EvaluateGate(values, mode, hasEntity, hasContact)
	if !gate.CanSave {
		return nil, apperrors.NewValidationError(gate.GateMessage, map[string]any{
			"fields": missingFields(values, mode, hasEntity, hasContact),
		})
	}

	now := s.now()

	entityID := strings.TrimSpace(input.EntityID)
	if mode.RequiresRecordCreation() && entityID == "" {
		entity := &domain.Entity{
			AgencyID:   agencyID,
			Name:       strings.TrimSpace(input.CompanyName),
			City:       strings.TrimSpace(input.CompanyCity),
			EntityType: strings.TrimSpace(input.EntityType),
		}
		if err := s.entities.Create(ctx, entity); err != nil {
			return nil, apperrors.NewDependencyFailed(MsgEntityCreateFailed, err)
		}
		entityID = entity.ID
	}

	contactID := strings.TrimSpace(input.ContactID)
	if mode.RequiresRecordCreation() && contactID == "" {
		contact := &domain.EntityContact{
			EntityID:  entityID,
			FirstName: strings.TrimSpace(input.ContactFirstName),
			LastName:  strings.TrimSpace(input.ContactLastName),
			Name:      values.DerivedContactName(),
			Position:  strings.TrimSpace(input.ContactPosition),
			Phone:     strings.TrimSpace(input.ContactPhone),
			Email:     strings.TrimSpace(input.ContactEmail),
		}
		if err := s.contacts.Create(ctx, contact); err != nil {
			return nil, apperrors.NewDependencyFailed(MsgContactCreateFailed, err)
		}
		contactID = contact.ID
	}

	companyName := s.resolveCompanyName(input, mode)
	contactName := resolveContactName(values, mode, companyName)

	statusLabel := ""
	statusTerminal := false
	if catalog, err := s.statusCatalog(ctx, agencyID); err == nil {
		if status, ok := catalog[input.StatusID]; ok {
			statusLabel = status.Label
			statusTerminal = status.Terminal()
		}
	} else {
		s.logger.Warn("status catalog unavailable", zap.String("agency_id", agencyID), zap.Error(err))
	}

	interaction := &domain.Interaction{
		AgencyID:         agencyID,
		CreatedBy:        userID,
		Channel:          strings.TrimSpace(input.Channel),
		EntityType:       strings.TrimSpace(input.EntityType),
		RelationMode:     mode,
		CompanyName:      companyName,
		ContactName:      contactName,
		ContactService:   strings.TrimSpace(input.ContactService),
		InteractionType:  strings.TrimSpace(input.InteractionType),
		Subject:          strings.TrimSpace(input.Subject),
		MegaFamilies:     input.MegaFamilies,
		StatusID:         input.StatusID,
		StatusLabel:      statusLabel,
		StatusIsTerminal: statusTerminal,
		ReminderAt:       input.ReminderAt,
		OrderRef:         strings.TrimSpace(input.OrderRef),
		LastActionAt:     now,
	}
	if entityID != "" {
		interaction.EntityID = &entityID
	}
	if contactID != "" {
		interaction.ContactID = &contactID
	}

	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, apperrors.NewDependencyFailed(MsgInteractionCreateFailed, err)
	}

	draftEvents, err := s.appendDraftEvents(ctx, interaction.ID, now, input.Notes)
	if err != nil {
		return nil, apperrors.NewDependencyFailed(MsgInteractionCreateFailed, err)
	}
	interaction.Timeline = draftEvents

	if s.suggestions != nil && companyName != "" {
		if err := s.suggestions.RememberCompany(ctx, agencyID, companyName); err != nil {
			s.logger.Warn("remember company failed", zap.String("company", companyName), zap.Error(err))
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:          events.EventInteractionCreated,
		InteractionID: interaction.ID,
		Actor:         events.Actor{UserID: userID, AgencyID: agencyID},
		Payload: events.InteractionCreatedPayload{
			RelationMode: mode,
			Channel:      interaction.Channel,
			CompanyName:  companyName,
			Subject:      interaction.Subject,
			StatusID:     interaction.StatusID,
		},
	})
	return interaction, nil
}

// UpdateInteraction applies edits to an existing interaction through the
// timeline builder. A no-op edit returns the interaction unchanged.
func (s *InteractionService) UpdateInteraction(ctx context.Context, agencyID, userID, interactionID string, input UpdateInput) (*domain.Interaction, error) {
	interaction, err := s.getScoped(ctx, agencyID, interactionID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.statusCatalog(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	result := timeline.BuildEvents(timeline.BuildInput{
		Interaction: interaction,
		StatusID:    input.StatusID,
		ReminderAt:  input.ReminderAt,
		OrderRef:    input.OrderRef,
		Note:        input.Note,
		StatusByID:  catalog,
		Now:         s.now(),
	})
	if result.Updates == nil {
		return interaction, nil
	}

	if err := s.interactions.ApplyUpdate(ctx, interaction.ID, result.Updates); err != nil {
		return nil, apperrors.NewDependencyFailed(MsgInteractionUpdateFailed, err)
	}
	for i := range result.Events {
		if err := s.timelineRepo.Create(ctx, &result.Events[i]); err != nil {
			return nil, apperrors.NewDependencyFailed(MsgInteractionUpdateFailed, err)
		}
	}

	updated := applyUpdate(interaction, result)

	s.publishUpdateEvents(ctx, agencyID, userID, interaction, updated, result)
	return updated, nil
}

// GetInteraction loads an interaction with its timeline, scoped to an agency.
func (s *InteractionService) GetInteraction(ctx context.Context, agencyID, interactionID string) (*domain.Interaction, error) {
	interaction, err := s.getScoped(ctx, agencyID, interactionID)
	if err != nil {
		return nil, err
	}
	timelineEvents, err := s.timelineRepo.ListByInteraction(ctx, interaction.ID)
	if err != nil {
		return nil, err
	}
	interaction.Timeline = timelineEvents
	return interaction, nil
}

// ListInteractions returns interactions matching the filter for one agency.
func (s *InteractionService) ListInteractions(ctx context.Context, agencyID string, filter repository.InteractionFilter) ([]domain.Interaction, error) {
	filter.AgencyID = agencyID
	return s.interactions.ListWithFilter(ctx, filter)
}

// Preview evaluates the gate and stepper for the current form state without
// touching persistence. It backs the cockpit's live save-eligibility display.
func (s *InteractionService) Preview(values form.Values) (form.GateResult, []form.Step, domain.RelationMode) {
	mode := domain.ClassifyEntityType(values.EntityType)
	hasEntity := strings.TrimSpace(values.EntityID) != ""
	hasContact := strings.TrimSpace(values.ContactID) != ""
	gate := form.EvaluateGate(values, mode, hasEntity, hasContact)
	steps := form.BuildSteps(values, mode, hasEntity, hasContact)
	return gate, steps, mode
}

func (s *InteractionService) getScoped(ctx context.Context, agencyID, interactionID string) (*domain.Interaction, error) {
	interaction, err := s.interactions.GetByID(ctx, interactionID)
	if err != nil {
		return nil, err
	}
	if interaction.AgencyID != agencyID {
		return nil, apperrors.NewForbidden("interaction belongs to another agency")
	}
	return interaction, nil
}

func (s *InteractionService) statusCatalog(ctx context.Context, agencyID string) (domain.StatusCatalog, error) {
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

// appendDraftEvents writes the creation event and, when notes were provided,
// a note event, both sharing one timestamp. Every mutation must leave a
// timeline entry behind, so a failed append is an error, not a log line.
func (s *InteractionService) appendDraftEvents(ctx context.Context, interactionID string, now time.Time, notes string) ([]domain.TimelineEvent, error) {
	entries := []domain.TimelineEvent{{
		ID:            uuid.NewString(),
		InteractionID: interactionID,
		Date:          now,
		Type:          domain.EventCreation,
		Content:       "Interaction créée",
	}}
	if note := strings.TrimSpace(notes); note != "" {
		entries = append(entries, domain.TimelineEvent{
			ID:            uuid.NewString(),
			InteractionID: interactionID,
			Date:          now,
			Type:          domain.EventNote,
			Content:       note,
		})
	}
	for i := range entries {
		if err := s.timelineRepo.Create(ctx, &entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (s *InteractionService) resolveCompanyName(input SubmitInput, mode domain.RelationMode) string {
	if mode == domain.RelationInternal {
		return s.internalCompany
	}
	return strings.TrimSpace(input.CompanyName)
}

// resolveContactName falls back to the company name for solicitations, which
// carry no discrete contact record.
func resolveContactName(values form.Values, mode domain.RelationMode, companyName string) string {
	name := values.DerivedContactName()
	if name == "" && mode == domain.RelationSolicitation {
		return companyName
	}
	return name
}

// applyUpdate folds the builder result into a fresh copy of the interaction.
func applyUpdate(interaction *domain.Interaction, result timeline.BuildResult) *domain.Interaction {
	updated := *interaction
	updates := result.Updates
	if updates.StatusID != nil {
		updated.StatusID = *updates.StatusID
	}
	if updates.StatusLabel != nil {
		updated.StatusLabel = *updates.StatusLabel
	}
	if updates.StatusIsTerminal != nil {
		updated.StatusIsTerminal = *updates.StatusIsTerminal
	}
	if updates.ReminderChanged {
		updated.ReminderAt = updates.ReminderAt
	}
	if updates.OrderRef != nil {
		updated.OrderRef = *updates.OrderRef
	}
	if updates.LastActionAt != nil {
		updated.LastActionAt = *updates.LastActionAt
	}
	updated.Timeline = append(append([]domain.TimelineEvent{}, interaction.Timeline...), result.Events...)
	return &updated
}

func (s *InteractionService) publishUpdateEvents(ctx context.Context, agencyID, userID string, prev, updated *domain.Interaction, result timeline.BuildResult) {
	actor := events.Actor{UserID: userID, AgencyID: agencyID}

	eventTypes := make([]domain.TimelineEventType, 0, len(result.Events))
	for _, event := range result.Events {
		eventTypes = append(eventTypes, event.Type)
	}
	s.publishEvent(ctx, events.Event{
		Type:          events.EventInteractionUpdated,
		InteractionID: updated.ID,
		Actor:         actor,
		Payload:       events.InteractionUpdatedPayload{EventTypes: eventTypes},
	})

	if result.Updates.StatusID != nil {
		s.publishEvent(ctx, events.Event{
			Type:          events.EventStatusChanged,
			InteractionID: updated.ID,
			Actor:         actor,
			Payload: events.StatusChangedPayload{
				OldStatusID: prev.StatusID,
				NewStatusID: updated.StatusID,
				Terminal:    updated.StatusIsTerminal,
			},
		})
	}
	if result.Updates.ReminderChanged {
		s.publishEvent(ctx, events.Event{
			Type:          events.EventReminderSet,
			InteractionID: updated.ID,
			Actor:         actor,
			Payload:       events.ReminderSetPayload{ReminderAt: updated.ReminderAt},
		})
	}
}

func (s *InteractionService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// missingFields lists the unsatisfied required fields for per-field display.
func missingFields(values form.Values, mode domain.RelationMode, hasEntity, hasContact bool) map[string]string {
	fields := map[string]string{}
	mark := func(ok bool, name string) {
		if !ok {
			fields[name] = "requis"
		}
	}

	mark(strings.TrimSpace(values.Channel) != "", "channel")
	mark(strings.TrimSpace(values.EntityType) != "", "entity_type")
	mark(strings.TrimSpace(values.ContactService) != "", "contact_service")
	mark(strings.TrimSpace(values.InteractionType) != "", "interaction_type")
	mark(strings.TrimSpace(values.Subject) != "", "subject")
	mark(strings.TrimSpace(values.StatusID) != "", "status_id")

	req := form.EvaluateRequirements(values, mode, hasEntity, hasContact)
	if mode == domain.RelationClient {
		mark(req.EntitySelected, "entity_id")
		mark(req.ContactSelected, "contact_id")
		return fields
	}
	mark(req.CompanyName, "company_name")
	mark(req.CompanyCity, "company_city")
	mark(req.ContactFirstName, "contact_first_name")
	mark(req.ContactLastName, "contact_last_name")
	mark(req.ContactPosition, "contact_position")
	mark(req.ContactMethod, "contact_phone")
	return fields
}
