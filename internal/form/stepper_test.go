package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

func stepStatuses(steps []Step) []StepStatus {
	statuses := make([]StepStatus, len(steps))
	for i, step := range steps {
		statuses[i] = step.Status
	}
	return statuses
}

func TestBuildStepsLabels(t *testing.T) {
	steps := BuildSteps(Values{}, domain.RelationOther, false, false)
	require.Len(t, steps, 5)
	assert.Equal(t, "Canal", steps[0].Label)
	assert.Equal(t, "Relation", steps[1].Label)
	assert.Equal(t, "Identité", steps[2].Label)
	assert.Equal(t, "Contact", steps[3].Label)
	assert.Equal(t, "Type & Service", steps[4].Label)
}

func TestBuildStepsFirstIncompleteIsCurrent(t *testing.T) {
	v := Values{
		Channel:     "téléphone",
		EntityType:  "prospect",
		CompanyName: "ACME",
		CompanyCity: "Lyon",
	}
	steps := BuildSteps(v, domain.RelationProspect, false, false)
	assert.Equal(t, []StepStatus{
		StepComplete, StepComplete, StepComplete, StepCurrent, StepUpcoming,
	}, stepStatuses(steps))
}

func TestBuildStepsEmptyForm(t *testing.T) {
	steps := BuildSteps(Values{}, domain.RelationOther, false, false)
	assert.Equal(t, []StepStatus{
		StepCurrent, StepUpcoming, StepUpcoming, StepUpcoming, StepUpcoming,
	}, stepStatuses(steps))
}

func TestBuildStepsAllComplete(t *testing.T) {
	v := Values{
		Channel:          "téléphone",
		EntityType:       "prospect",
		CompanyName:      "ACME",
		CompanyCity:      "Lyon",
		ContactFirstName: "Jean",
		ContactLastName:  "Durand",
		ContactPhone:     "0600000000",
		InteractionType:  "appel entrant",
		ContactService:   "commerce",
	}
	steps := BuildSteps(v, domain.RelationProspect, false, false)
	for _, step := range steps {
		assert.Equal(t, StepComplete, step.Status, step.Label)
	}
}

func TestBuildStepsClientUsesSelections(t *testing.T) {
	v := Values{
		Channel:    "email",
		EntityType: "client",
	}
	steps := BuildSteps(v, domain.RelationClient, true, false)
	assert.Equal(t, []StepStatus{
		StepComplete, StepComplete, StepComplete, StepCurrent, StepUpcoming,
	}, stepStatuses(steps))

	steps = BuildSteps(v, domain.RelationClient, false, false)
	assert.Equal(t, StepCurrent, steps[2].Status)
}

func TestBuildStepsSingleCurrent(t *testing.T) {
	partials := []Values{
		{},
		{Channel: "téléphone"},
		{Channel: "téléphone", EntityType: "prospect"},
		{Channel: "téléphone", EntityType: "prospect", CompanyName: "ACME", CompanyCity: "Lyon"},
	}
	for _, v := range partials {
		steps := BuildSteps(v, domain.RelationProspect, false, false)
		currents := 0
		for _, step := range steps {
			if step.Status == StepCurrent {
				currents++
			}
		}
		assert.Equal(t, 1, currents)
	}
}
