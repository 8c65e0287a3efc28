package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-gateway/internal/domain"
	"github.com/spec-kit/crm-gateway/internal/events"
	"github.com/spec-kit/crm-gateway/internal/repository"
	apperrors "github.com/spec-kit/crm-gateway/pkg/util"
)

type fakeInteractionRepo struct {
	created []*domain.Interaction
	byID    map[string]*domain.Interaction
	patches map[string]*domain.InteractionUpdate
	failure error
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{
		byID:    map[string]*domain.Interaction{},
		patches: map[string]*domain.InteractionUpdate{},
	}
}

func (f *fakeInteractionRepo) Create(_ context.Context, interaction *domain.Interaction) error {
	if f.failure != nil {
		return f.failure
	}
	interaction.ID = fmt.Sprintf("int-%d", len(f.created)+1)
	interaction.CreatedAt = interaction.LastActionAt
	f.created = append(f.created, interaction)
	f.byID[interaction.ID] = interaction
	return nil
}

func (f *fakeInteractionRepo) GetByID(_ context.Context, id string) (*domain.Interaction, error) {
	interaction, ok := f.byID[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	copied := *interaction
	return &copied, nil
}

func (f *fakeInteractionRepo) ListWithFilter(_ context.Context, filter repository.InteractionFilter) ([]domain.Interaction, error) {
	var result []domain.Interaction
	for _, interaction := range f.created {
		if interaction.AgencyID == filter.AgencyID {
			result = append(result, *interaction)
		}
	}
	return result, nil
}

func (f *fakeInteractionRepo) ApplyUpdate(_ context.Context, id string, update *domain.InteractionUpdate) error {
	if f.failure != nil {
		return f.failure
	}
	f.patches[id] = update
	return nil
}

type fakeEventRepo struct {
	events  []domain.TimelineEvent
	failure error
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.TimelineEvent) error {
	if f.failure != nil {
		return f.failure
	}
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEventRepo) ListByInteraction(_ context.Context, interactionID string) ([]domain.TimelineEvent, error) {
	var result []domain.TimelineEvent
	for _, event := range f.events {
		if event.InteractionID == interactionID {
			result = append(result, event)
		}
	}
	return result, nil
}

type fakeEntityRepo struct {
	created []*domain.Entity
	failure error
}

func (f *fakeEntityRepo) Create(_ context.Context, entity *domain.Entity) error {
	if f.failure != nil {
		return f.failure
	}
	entity.ID = fmt.Sprintf("ent-%d", len(f.created)+1)
	f.created = append(f.created, entity)
	return nil
}

func (f *fakeEntityRepo) Update(_ context.Context, _ *domain.Entity) error { return nil }

func (f *fakeEntityRepo) GetByID(_ context.Context, id string) (*domain.Entity, error) {
	for _, entity := range f.created {
		if entity.ID == id {
			return entity, nil
		}
	}
	return nil, errors.New("no rows")
}

func (f *fakeEntityRepo) Search(_ context.Context, _, _ string, _ int) ([]domain.Entity, error) {
	return nil, nil
}

type fakeContactRepo struct {
	created []*domain.EntityContact
	failure error
}

func (f *fakeContactRepo) Create(_ context.Context, contact *domain.EntityContact) error {
	if f.failure != nil {
		return f.failure
	}
	contact.ID = fmt.Sprintf("con-%d", len(f.created)+1)
	f.created = append(f.created, contact)
	return nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, _ string) (*domain.EntityContact, error) {
	return nil, errors.New("no rows")
}

func (f *fakeContactRepo) ListByEntity(_ context.Context, _ string) ([]domain.EntityContact, error) {
	return nil, nil
}

type fakeStatusRepo struct {
	statuses []domain.AgencyStatus
}

func (f *fakeStatusRepo) Create(_ context.Context, _ *domain.AgencyStatus) error { return nil }
func (f *fakeStatusRepo) Update(_ context.Context, _ *domain.AgencyStatus) error { return nil }
func (f *fakeStatusRepo) GetByID(_ context.Context, _ string) (*domain.AgencyStatus, error) {
	return nil, errors.New("no rows")
}
func (f *fakeStatusRepo) ClearDefault(_ context.Context, _ string) error { return nil }

func (f *fakeStatusRepo) ListByAgency(_ context.Context, _ string) ([]domain.AgencyStatus, error) {
	return f.statuses, nil
}

type fakeSuggester struct {
	remembered []string
	failure    error
}

func (f *fakeSuggester) RememberCompany(_ context.Context, _, name string) error {
	if f.failure != nil {
		return f.failure
	}
	f.remembered = append(f.remembered, name)
	return nil
}

func (f *fakeSuggester) SuggestCompanies(_ context.Context, _, _ string) ([]string, error) {
	return f.remembered, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

type serviceFixture struct {
	service      *InteractionService
	interactions *fakeInteractionRepo
	timeline     *fakeEventRepo
	entities     *fakeEntityRepo
	contacts     *fakeContactRepo
	statuses     *fakeStatusRepo
	suggester    *fakeSuggester
	dispatcher   *recordingDispatcher
	now          time.Time
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		interactions: newFakeInteractionRepo(),
		timeline:     &fakeEventRepo{},
		entities:     &fakeEntityRepo{},
		contacts:     &fakeContactRepo{},
		statuses: &fakeStatusRepo{statuses: []domain.AgencyStatus{
			{ID: "todo", AgencyID: "ag-1", Label: "À traiter", Category: domain.StatusCategoryTodo},
			{ID: "done", AgencyID: "ag-1", Label: "Traité", Category: domain.StatusCategoryDone},
		}},
		suggester:  &fakeSuggester{},
		dispatcher: &recordingDispatcher{},
		now:        time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
	}
	f.service = NewInteractionService(InteractionDependencies{
		InteractionRepo: f.interactions,
		EventRepo:       f.timeline,
		EntityRepo:      f.entities,
		ContactRepo:     f.contacts,
		StatusRepo:      f.statuses,
		Suggestions:     f.suggester,
		Dispatcher:      f.dispatcher,
		InternalCompany: "Interne CIR",
	})
	f.service.now = func() time.Time { return f.now }
	return f
}

func prospectInput() SubmitInput {
	return SubmitInput{
		Channel:          "téléphone",
		EntityType:       "prospect",
		ContactService:   "commerce",
		InteractionType:  "appel entrant",
		CompanyName:      "ACME",
		CompanyCity:      "Lyon",
		ContactFirstName: "Jean",
		ContactLastName:  "Durand",
		ContactPhone:     "0600000000",
		Subject:          "demande de devis",
		StatusID:         "todo",
	}
}

func TestSubmitInteractionProspectHappyPath(t *testing.T) {
	f := newServiceFixture()
	input := prospectInput()
	input.Notes = "premier contact"

	interaction, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", input)
	require.NoError(t, err)

	require.Len(t, f.entities.created, 1)
	assert.Equal(t, "ACME", f.entities.created[0].Name)
	assert.Equal(t, "Lyon", f.entities.created[0].City)

	require.Len(t, f.contacts.created, 1)
	assert.Equal(t, "ent-1", f.contacts.created[0].EntityID)
	assert.Equal(t, "Jean Durand", f.contacts.created[0].Name)

	assert.Equal(t, domain.RelationProspect, interaction.RelationMode)
	assert.Equal(t, "À traiter", interaction.StatusLabel)
	assert.Equal(t, f.now, interaction.LastActionAt)
	require.NotNil(t, interaction.EntityID)
	assert.Equal(t, "ent-1", *interaction.EntityID)

	// Creation and note events share the same timestamp.
	require.Len(t, interaction.Timeline, 2)
	assert.Equal(t, domain.EventCreation, interaction.Timeline[0].Type)
	assert.Equal(t, domain.EventNote, interaction.Timeline[1].Type)
	assert.Equal(t, interaction.Timeline[0].Date, interaction.Timeline[1].Date)
	assert.Equal(t, "premier contact", interaction.Timeline[1].Content)

	assert.Equal(t, []string{"ACME"}, f.suggester.remembered)

	require.Len(t, f.dispatcher.published, 1)
	assert.Equal(t, events.EventInteractionCreated, f.dispatcher.published[0].Type)
}

func TestSubmitInteractionGateFailure(t *testing.T) {
	f := newServiceFixture()
	input := prospectInput()
	input.CompanyCity = ""

	_, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", input)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "Renseignez la ville de la société.", domainErr.Message)
	assert.Empty(t, f.entities.created)
	assert.Empty(t, f.interactions.created)
}

func TestSubmitInteractionEntityFailureAborts(t *testing.T) {
	f := newServiceFixture()
	f.entities.failure = errors.New("db down")

	_, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", prospectInput())
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "impossible de créer l'entité", domainErr.Message)
	assert.Empty(t, f.contacts.created)
	assert.Empty(t, f.interactions.created)
}

func TestSubmitInteractionContactFailureKeepsEntity(t *testing.T) {
	f := newServiceFixture()
	f.contacts.failure = errors.New("db down")

	_, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", prospectInput())
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "impossible d'enregistrer le contact", domainErr.Message)
	// The entity created before the failure is not rolled back.
	assert.Len(t, f.entities.created, 1)
	assert.Empty(t, f.interactions.created)
}

func TestSubmitInteractionSaveFailure(t *testing.T) {
	f := newServiceFixture()
	f.interactions.failure = errors.New("db down")

	_, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", prospectInput())
	require.Error(t, err)
	assert.Equal(t, "impossible d'enregistrer l'interaction", apperrors.ToDomainError(err).Message)
}

func TestSubmitInteractionEventAppendFailure(t *testing.T) {
	f := newServiceFixture()
	f.timeline.failure = errors.New("db down")

	_, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", prospectInput())
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "DEPENDENCY_FAILED", domainErr.Code)
	assert.Equal(t, "impossible d'enregistrer l'interaction", domainErr.Message)
	assert.Empty(t, f.timeline.events)
}

func TestSubmitInteractionInternalUsesFixedCompany(t *testing.T) {
	f := newServiceFixture()
	input := prospectInput()
	input.EntityType = "interne CIR"
	input.CompanyName = ""
	input.CompanyCity = ""
	input.ContactPhone = ""

	interaction, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", input)
	require.NoError(t, err)

	assert.Equal(t, "Interne CIR", interaction.CompanyName)
	// Internal interactions never create entity or contact records.
	assert.Empty(t, f.entities.created)
	assert.Empty(t, f.contacts.created)
}

func TestSubmitInteractionSolicitationContactNameFallback(t *testing.T) {
	f := newServiceFixture()
	input := prospectInput()
	input.EntityType = "sollicitation"
	input.ContactFirstName = ""
	input.ContactLastName = ""

	interaction, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", input)
	require.NoError(t, err)

	assert.Equal(t, domain.RelationSolicitation, interaction.RelationMode)
	assert.Equal(t, "ACME", interaction.ContactName)
	assert.Empty(t, f.entities.created)
}

func TestSubmitInteractionSuggestionFailureIsNonFatal(t *testing.T) {
	f := newServiceFixture()
	f.suggester.failure = errors.New("redis down")

	_, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", prospectInput())
	require.NoError(t, err)
	assert.Len(t, f.interactions.created, 1)
}

func TestUpdateInteractionNoop(t *testing.T) {
	f := newServiceFixture()
	created, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", prospectInput())
	require.NoError(t, err)
	published := len(f.dispatcher.published)

	updated, err := f.service.UpdateInteraction(context.Background(), "ag-1", "user-1", created.ID, UpdateInput{
		StatusID: created.StatusID,
		OrderRef: created.OrderRef,
	})
	require.NoError(t, err)

	assert.Equal(t, created.StatusID, updated.StatusID)
	assert.Empty(t, f.interactions.patches)
	assert.Equal(t, published, len(f.dispatcher.published))
}

func TestUpdateInteractionStatusChange(t *testing.T) {
	f := newServiceFixture()
	created, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", prospectInput())
	require.NoError(t, err)

	updated, err := f.service.UpdateInteraction(context.Background(), "ag-1", "user-1", created.ID, UpdateInput{
		StatusID: "done",
		Note:     "affaire conclue",
	})
	require.NoError(t, err)

	assert.Equal(t, "done", updated.StatusID)
	assert.Equal(t, "Traité", updated.StatusLabel)
	assert.True(t, updated.StatusIsTerminal)

	patch, ok := f.interactions.patches[created.ID]
	require.True(t, ok)
	require.NotNil(t, patch.StatusID)
	assert.Equal(t, "done", *patch.StatusID)

	types := map[events.EventType]bool{}
	for _, event := range f.dispatcher.published {
		types[event.Type] = true
	}
	assert.True(t, types[events.EventInteractionUpdated])
	assert.True(t, types[events.EventStatusChanged])
}

func TestUpdateInteractionEventAppendFailure(t *testing.T) {
	f := newServiceFixture()
	created, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", prospectInput())
	require.NoError(t, err)

	f.timeline.failure = errors.New("db down")
	_, err = f.service.UpdateInteraction(context.Background(), "ag-1", "user-1", created.ID, UpdateInput{
		StatusID: "done",
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "DEPENDENCY_FAILED", domainErr.Code)
	assert.Equal(t, "impossible de mettre à jour l'interaction", domainErr.Message)
}

func TestUpdateInteractionAgencyScope(t *testing.T) {
	f := newServiceFixture()
	created, err := f.service.SubmitInteraction(context.Background(), "ag-1", "user-1", prospectInput())
	require.NoError(t, err)

	_, err = f.service.UpdateInteraction(context.Background(), "ag-2", "user-2", created.ID, UpdateInput{
		StatusID: "done",
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}
