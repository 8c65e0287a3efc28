package form

import "github.com/spec-kit/crm-gateway/internal/domain"

// StepStatus tags each stepper entry.
type StepStatus string

const (
	StepComplete StepStatus = "complete"
	StepCurrent  StepStatus = "current"
	StepUpcoming StepStatus = "upcoming"
)

// Step is one entry of the cockpit progress indicator.
type Step struct {
	Label  string
	Status StepStatus
}

var stepLabels = [5]string{"Canal", "Relation", "Identité", "Contact", "Type & Service"}

// BuildSteps derives the five-step progress indicator. The first incomplete
// step becomes current, everything before it is complete and everything after
// is upcoming. When all five predicates hold there is no current step.
func BuildSteps(v Values, mode domain.RelationMode, hasEntity, hasContact bool) []Step {
	req := EvaluateRequirements(v, mode, hasEntity, hasContact)

	done := [5]bool{
		isSet(v.Channel),
		isSet(v.EntityType),
		identityComplete(mode, hasEntity, req),
		contactComplete(v, mode, hasContact, req),
		isSet(v.InteractionType) && isSet(v.ContactService),
	}

	current := -1
	for i, ok := range done {
		if !ok {
			current = i
			break
		}
	}

	steps := make([]Step, len(stepLabels))
	for i, label := range stepLabels {
		status := StepComplete
		switch {
		case current >= 0 && i == current:
			status = StepCurrent
		case current >= 0 && i > current:
			status = StepUpcoming
		}
		steps[i] = Step{Label: label, Status: status}
	}
	return steps
}

func identityComplete(mode domain.RelationMode, hasEntity bool, req RelationRequirements) bool {
	switch mode {
	case domain.RelationClient:
		return hasEntity
	case domain.RelationInternal:
		return true
	default:
		return req.CompanyName && req.CompanyCity
	}
}

func contactComplete(v Values, mode domain.RelationMode, hasContact bool, req RelationRequirements) bool {
	switch mode {
	case domain.RelationClient:
		return hasContact
	case domain.RelationSolicitation:
		return isSet(v.ContactPhone)
	default:
		return isSet(v.ContactFirstName) && isSet(v.ContactLastName) &&
			req.ContactMethod && req.ContactPosition
	}
}
