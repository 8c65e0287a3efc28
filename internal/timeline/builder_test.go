package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

func testCatalog() domain.StatusCatalog {
	return domain.StatusCatalog{
		"todo": {ID: "todo", Label: "À traiter", Category: domain.StatusCategoryTodo},
		"done": {ID: "done", Label: "Traité", Category: domain.StatusCategoryDone},
		"won":  {ID: "won", Label: "Gagné", Category: domain.StatusCategoryInProgress, IsTerminal: true},
	}
}

func testInteraction() *domain.Interaction {
	return &domain.Interaction{
		ID:          "int-1",
		AgencyID:    "ag-1",
		StatusID:    "todo",
		StatusLabel: "À traiter",
		OrderRef:    "",
	}
}

func TestBuildEventsNoop(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	result := BuildEvents(BuildInput{
		Interaction: testInteraction(),
		StatusID:    "todo",
		StatusByID:  testCatalog(),
		Now:         now,
	})

	assert.Empty(t, result.Events)
	assert.Nil(t, result.Updates)
}

func TestBuildEventsNoopWhenStatusUnchanged(t *testing.T) {
	prev := testInteraction()
	result := BuildEvents(BuildInput{
		Interaction: prev,
		StatusID:    prev.StatusID,
		OrderRef:    prev.OrderRef,
		StatusByID:  testCatalog(),
		Now:         time.Now(),
	})
	assert.Nil(t, result.Updates)
}

func TestBuildEventsDimensionOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	reminder := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	result := BuildEvents(BuildInput{
		Interaction: testInteraction(),
		StatusID:    "done",
		ReminderAt:  &reminder,
		OrderRef:    "CMD-42",
		Note:        "rappelé le client",
		StatusByID:  testCatalog(),
		Now:         now,
	})

	require.Len(t, result.Events, 4)
	assert.Equal(t, domain.EventOrderRefChange, result.Events[0].Type)
	assert.Equal(t, domain.EventStatusChange, result.Events[1].Type)
	assert.Equal(t, domain.EventReminderChange, result.Events[2].Type)
	assert.Equal(t, domain.EventNote, result.Events[3].Type)

	for _, event := range result.Events {
		assert.Equal(t, now, event.Date)
		assert.Equal(t, "int-1", event.InteractionID)
		assert.NotEmpty(t, event.ID)
	}

	assert.Equal(t, "Référence commande : CMD-42", result.Events[0].Content)
	assert.Equal(t, `Statut modifié : "À traiter" → "Traité"`, result.Events[1].Content)
	assert.Equal(t, "Rappel planifié le 15/03/2026 09:00", result.Events[2].Content)
	assert.Equal(t, "rappelé le client", result.Events[3].Content)

	require.NotNil(t, result.Updates)
	require.NotNil(t, result.Updates.LastActionAt)
	assert.Equal(t, now, *result.Updates.LastActionAt)
}

func TestBuildEventsTerminalFromDoneCategory(t *testing.T) {
	result := BuildEvents(BuildInput{
		Interaction: testInteraction(),
		StatusID:    "done",
		StatusByID:  testCatalog(),
		Now:         time.Now(),
	})

	require.NotNil(t, result.Updates)
	require.NotNil(t, result.Updates.StatusIsTerminal)
	assert.True(t, *result.Updates.StatusIsTerminal)
	assert.Equal(t, "Traité", *result.Updates.StatusLabel)
}

func TestBuildEventsTerminalFromFlag(t *testing.T) {
	result := BuildEvents(BuildInput{
		Interaction: testInteraction(),
		StatusID:    "won",
		StatusByID:  testCatalog(),
		Now:         time.Now(),
	})

	require.NotNil(t, result.Updates)
	require.NotNil(t, result.Updates.StatusIsTerminal)
	assert.True(t, *result.Updates.StatusIsTerminal)
}

func TestBuildEventsStatusLabelFallback(t *testing.T) {
	prev := testInteraction()
	prev.StatusID = "legacy"
	prev.StatusLabel = "Ancien statut"

	result := BuildEvents(BuildInput{
		Interaction: prev,
		StatusID:    "unknown",
		StatusByID:  testCatalog(),
		Now:         time.Now(),
	})

	require.Len(t, result.Events, 1)
	assert.Equal(t, `Statut modifié : "Ancien statut" → "Ancien statut"`, result.Events[0].Content)
	// Unknown target id: status_id moves but label and terminal stay untouched.
	assert.Equal(t, "unknown", *result.Updates.StatusID)
	assert.Nil(t, result.Updates.StatusLabel)
	assert.Nil(t, result.Updates.StatusIsTerminal)
}

func TestBuildEventsReminderCleared(t *testing.T) {
	prev := testInteraction()
	reminder := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	prev.ReminderAt = &reminder

	result := BuildEvents(BuildInput{
		Interaction: prev,
		StatusID:    prev.StatusID,
		ReminderAt:  nil,
		StatusByID:  testCatalog(),
		Now:         time.Now(),
	})

	require.Len(t, result.Events, 1)
	assert.Equal(t, "Rappel supprimé", result.Events[0].Content)
	assert.True(t, result.Updates.ReminderChanged)
	assert.Nil(t, result.Updates.ReminderAt)
}

func TestBuildEventsOrderRefRemoved(t *testing.T) {
	prev := testInteraction()
	prev.OrderRef = "CMD-42"

	result := BuildEvents(BuildInput{
		Interaction: prev,
		StatusID:    prev.StatusID,
		OrderRef:    "  ",
		StatusByID:  testCatalog(),
		Now:         time.Now(),
	})

	require.Len(t, result.Events, 1)
	assert.Equal(t, "Référence commande retirée", result.Events[0].Content)
	assert.Equal(t, "", *result.Updates.OrderRef)
}

func TestBuildEventsNeverMutatesInput(t *testing.T) {
	prev := testInteraction()
	reminder := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	_ = BuildEvents(BuildInput{
		Interaction: prev,
		StatusID:    "done",
		ReminderAt:  &reminder,
		OrderRef:    "CMD-42",
		Note:        "note",
		StatusByID:  testCatalog(),
		Now:         time.Now(),
	})

	assert.Equal(t, "todo", prev.StatusID)
	assert.Equal(t, "À traiter", prev.StatusLabel)
	assert.Nil(t, prev.ReminderAt)
	assert.Equal(t, "", prev.OrderRef)
	assert.Empty(t, prev.Timeline)
}

func TestBuildEventsUniqueIDs(t *testing.T) {
	reminder := time.Now().Add(time.Hour)
	result := BuildEvents(BuildInput{
		Interaction: testInteraction(),
		StatusID:    "done",
		ReminderAt:  &reminder,
		OrderRef:    "CMD-1",
		Note:        "n",
		StatusByID:  testCatalog(),
		Now:         time.Now(),
	})

	seen := map[string]bool{}
	for _, event := range result.Events {
		assert.False(t, seen[event.ID])
		seen[event.ID] = true
	}
}
