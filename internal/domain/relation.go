package domain

import "strings"

// RelationMode enumerates the classified category of the counterparty in an interaction.
type RelationMode string

const (
	RelationClient       RelationMode = "client"
	RelationProspect     RelationMode = "prospect"
	RelationSupplier     RelationMode = "supplier"
	RelationInternal     RelationMode = "internal"
	RelationSolicitation RelationMode = "solicitation"
	RelationOther        RelationMode = "other"
)

// ClassifyEntityType maps a free-text entity type to a RelationMode.
// Exact matches are checked before the broader substring rules so an ambiguous
// label always resolves to the more specific mode. Every input maps to exactly
// one mode; anything unrecognized falls through to RelationOther.
func ClassifyEntityType(entityType string) RelationMode {
	normalized := strings.ToLower(strings.TrimSpace(entityType))
	switch {
	case normalized == "client":
		return RelationClient
	case normalized == "fournisseur":
		return RelationSupplier
	case strings.HasPrefix(normalized, "interne") && strings.Contains(normalized, "cir"):
		return RelationInternal
	case normalized == "sollicitation":
		return RelationSolicitation
	case strings.Contains(normalized, "prospect") || strings.Contains(normalized, "particulier"):
		return RelationProspect
	default:
		return RelationOther
	}
}

// RequiresRecordCreation reports whether submitting an interaction under this
// mode creates entity and contact records when none are selected. Clients pick
// existing records, internal interactions use a fixed company label, and
// solicitations are kept contact-free.
func (m RelationMode) RequiresRecordCreation() bool {
	switch m {
	case RelationClient, RelationInternal, RelationSolicitation:
		return false
	default:
		return true
	}
}
