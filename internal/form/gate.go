package form

import "github.com/spec-kit/crm-gateway/internal/domain"

// Gate messages, in words the cockpit shows the advisor. Exactly one message
// is surfaced at a time; remaining failures stay hidden until the first one
// is fixed.
const (
	MsgSelectClient     = "Selectionnez un client."
	MsgSelectContact    = "Selectionnez un contact."
	MsgCompanyName      = "Renseignez le nom de la société."
	MsgCompanyCity      = "Renseignez la ville de la société."
	MsgContactIdentity  = "Renseignez le prénom et le nom du contact."
	MsgContactPosition  = "Renseignez la fonction du contact."
	MsgContactMethod    = "Renseignez un téléphone ou un email."
	MsgSolicitationTel  = "Renseignez un numéro de téléphone."
	MsgInteractionType  = "Sélectionnez un type d'interaction."
	MsgRequiredFallback = "Complétez les champs obligatoires."
)

// GateResult is the save-eligibility verdict for the current form state.
type GateResult struct {
	CanSave          bool
	GateMessage      string
	HasContactMethod bool
	HasBaseRequired  bool
}

// EvaluateGate decides whether the interaction can be saved and, if not,
// returns the single highest-priority missing-field message.
func EvaluateGate(v Values, mode domain.RelationMode, hasEntity, hasContact bool) GateResult {
	base := isSet(v.Channel) && isSet(v.EntityType) && isSet(v.ContactService) &&
		isSet(v.InteractionType) && isSet(v.Subject) && isSet(v.StatusID)
	method := HasContactMethod(v, mode)
	req := EvaluateRequirements(v, mode, hasEntity, hasContact)

	var branch bool
	if mode == domain.RelationClient {
		branch = hasEntity && hasContact
	} else {
		branch = req.CompanyName && req.CompanyCity &&
			req.ContactFirstName && req.ContactLastName &&
			req.ContactPosition && req.ContactMethod
	}

	result := GateResult{
		CanSave:          base && branch,
		HasContactMethod: method,
		HasBaseRequired:  base,
	}
	if !result.CanSave {
		result.GateMessage = gateMessage(v, mode, req)
	}
	return result
}

// gateMessage walks the failure conditions in fixed priority order and
// returns the first one that applies.
func gateMessage(v Values, mode domain.RelationMode, req RelationRequirements) string {
	if mode == domain.RelationClient {
		switch {
		case !req.EntitySelected:
			return MsgSelectClient
		case !req.ContactSelected:
			return MsgSelectContact
		default:
			return MsgRequiredFallback
		}
	}

	switch {
	case !req.CompanyName:
		return MsgCompanyName
	case !req.CompanyCity:
		return MsgCompanyCity
	case !req.ContactFirstName || !req.ContactLastName:
		return MsgContactIdentity
	case !req.ContactPosition:
		return MsgContactPosition
	case !req.ContactMethod:
		if mode == domain.RelationSolicitation {
			return MsgSolicitationTel
		}
		return MsgContactMethod
	case !isSet(v.InteractionType):
		return MsgInteractionType
	default:
		return MsgRequiredFallback
	}
}
