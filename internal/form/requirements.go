package form

import "github.com/spec-kit/crm-gateway/internal/domain"

// RelationRequirements is the per-field satisfaction map shared by the gate
// and the stepper. A field is satisfied when the relation mode does not
// require it, or when it is present. Keeping both consumers on this single
// evaluator prevents the two from drifting apart.
type RelationRequirements struct {
	EntitySelected   bool
	ContactSelected  bool
	CompanyName      bool
	CompanyCity      bool
	ContactFirstName bool
	ContactLastName  bool
	ContactPosition  bool
	ContactMethod    bool
}

// HasContactMethod reports whether the form carries a usable way to reach the
// contact. Solicitations insist on a phone number; every other relation
// accepts phone or email.
func HasContactMethod(v Values, mode domain.RelationMode) bool {
	if mode == domain.RelationSolicitation {
		return isSet(v.ContactPhone)
	}
	return isSet(v.ContactPhone) || isSet(v.ContactEmail)
}

// EvaluateRequirements computes the satisfaction map for the given relation.
func EvaluateRequirements(v Values, mode domain.RelationMode, hasEntity, hasContact bool) RelationRequirements {
	isClient := mode == domain.RelationClient
	isInternal := mode == domain.RelationInternal
	isSolicitation := mode == domain.RelationSolicitation

	return RelationRequirements{
		EntitySelected:   !isClient || hasEntity,
		ContactSelected:  !isClient || hasContact,
		CompanyName:      isClient || isInternal || isSet(v.CompanyName),
		CompanyCity:      mode != domain.RelationProspect || isSet(v.CompanyCity),
		ContactFirstName: isClient || isSolicitation || isSet(v.ContactFirstName),
		ContactLastName:  isClient || isSolicitation || isSet(v.ContactLastName),
		ContactPosition:  mode != domain.RelationSupplier || isSet(v.ContactPosition),
		ContactMethod:    isClient || isInternal || HasContactMethod(v, mode),
	}
}
