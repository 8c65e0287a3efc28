package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

func baseValues() Values {
	return Values{
		Channel:         "téléphone",
		EntityType:      "prospect",
		ContactService:  "commerce",
		InteractionType: "appel entrant",
		Subject:         "demande de devis",
		StatusID:        "status-1",
	}
}

func TestEvaluateGateClientBranch(t *testing.T) {
	v := baseValues()
	v.EntityType = "client"

	result := EvaluateGate(v, domain.RelationClient, false, false)
	assert.False(t, result.CanSave)
	assert.Equal(t, MsgSelectClient, result.GateMessage)

	result = EvaluateGate(v, domain.RelationClient, true, false)
	assert.False(t, result.CanSave)
	assert.Equal(t, MsgSelectContact, result.GateMessage)

	result = EvaluateGate(v, domain.RelationClient, true, true)
	assert.True(t, result.CanSave)
	assert.Empty(t, result.GateMessage)
}

func TestEvaluateGateSolicitation(t *testing.T) {
	v := baseValues()
	v.EntityType = "sollicitation"
	v.CompanyName = "ACME"

	result := EvaluateGate(v, domain.RelationSolicitation, false, false)
	assert.False(t, result.CanSave)
	assert.Equal(t, MsgSolicitationTel, result.GateMessage)

	// Email alone is not enough for a solicitation.
	v.ContactEmail = "contact@acme.fr"
	result = EvaluateGate(v, domain.RelationSolicitation, false, false)
	assert.False(t, result.CanSave)
	assert.False(t, result.HasContactMethod)

	v.ContactPhone = "0600000000"
	result = EvaluateGate(v, domain.RelationSolicitation, false, false)
	assert.True(t, result.CanSave)
	assert.True(t, result.HasContactMethod)
}

func TestEvaluateGateProspect(t *testing.T) {
	v := baseValues()
	v.CompanyName = "ACME"

	result := EvaluateGate(v, domain.RelationProspect, false, false)
	assert.Equal(t, MsgCompanyCity, result.GateMessage)

	v.CompanyCity = "Lyon"
	result = EvaluateGate(v, domain.RelationProspect, false, false)
	assert.Equal(t, MsgContactIdentity, result.GateMessage)

	v.ContactFirstName = "Jean"
	result = EvaluateGate(v, domain.RelationProspect, false, false)
	assert.Equal(t, MsgContactIdentity, result.GateMessage)

	v.ContactLastName = "Durand"
	result = EvaluateGate(v, domain.RelationProspect, false, false)
	assert.Equal(t, MsgContactMethod, result.GateMessage)

	v.ContactEmail = "jean@acme.fr"
	result = EvaluateGate(v, domain.RelationProspect, false, false)
	assert.True(t, result.CanSave)
	assert.Empty(t, result.GateMessage)
}

func TestEvaluateGateSupplierRequiresPosition(t *testing.T) {
	v := baseValues()
	v.EntityType = "fournisseur"
	v.CompanyName = "ACME"
	v.ContactFirstName = "Jean"
	v.ContactLastName = "Durand"
	v.ContactPhone = "0600000000"

	result := EvaluateGate(v, domain.RelationSupplier, false, false)
	assert.False(t, result.CanSave)
	assert.Equal(t, MsgContactPosition, result.GateMessage)

	v.ContactPosition = "acheteur"
	result = EvaluateGate(v, domain.RelationSupplier, false, false)
	assert.True(t, result.CanSave)
}

func TestEvaluateGateInternalSkipsCompanyAndMethod(t *testing.T) {
	v := baseValues()
	v.EntityType = "interne CIR"
	v.ContactFirstName = "Jean"
	v.ContactLastName = "Durand"

	result := EvaluateGate(v, domain.RelationInternal, false, false)
	assert.True(t, result.CanSave)
}

func TestEvaluateGateMissingBase(t *testing.T) {
	v := baseValues()
	v.EntityType = "client"
	v.Subject = "   "

	result := EvaluateGate(v, domain.RelationClient, true, true)
	assert.False(t, result.CanSave)
	assert.False(t, result.HasBaseRequired)
	assert.Equal(t, MsgRequiredFallback, result.GateMessage)
}

// Filling a field never turns a previously passing gate into a failing one.
func TestEvaluateGateMonotonicity(t *testing.T) {
	v := baseValues()
	v.CompanyName = "ACME"
	v.CompanyCity = "Lyon"
	v.ContactFirstName = "Jean"
	v.ContactLastName = "Durand"
	v.ContactPhone = "0600000000"

	before := EvaluateGate(v, domain.RelationProspect, false, false)
	assert.True(t, before.CanSave)

	v.ContactEmail = "jean@acme.fr"
	v.OrderRef = "CMD-12"
	v.Notes = "premier contact"
	after := EvaluateGate(v, domain.RelationProspect, false, false)
	assert.True(t, after.CanSave)
}

// Emptying any satisfied required field of a passing form must flip the gate.
func TestEvaluateGateBlankingRequiredFieldFails(t *testing.T) {
	passing := baseValues()
	passing.CompanyName = "ACME"
	passing.CompanyCity = "Lyon"
	passing.ContactFirstName = "Jean"
	passing.ContactLastName = "Durand"
	passing.ContactPhone = "0600000000"
	require.True(t, EvaluateGate(passing, domain.RelationProspect, false, false).CanSave)

	blankers := map[string]func(*Values){
		"channel":            func(v *Values) { v.Channel = "" },
		"entity_type":        func(v *Values) { v.EntityType = "  " },
		"contact_service":    func(v *Values) { v.ContactService = "" },
		"interaction_type":   func(v *Values) { v.InteractionType = "" },
		"subject":            func(v *Values) { v.Subject = "" },
		"status_id":          func(v *Values) { v.StatusID = "" },
		"company_name":       func(v *Values) { v.CompanyName = "" },
		"company_city":       func(v *Values) { v.CompanyCity = "" },
		"contact_first_name": func(v *Values) { v.ContactFirstName = "" },
		"contact_last_name":  func(v *Values) { v.ContactLastName = "" },
		"contact_phone":      func(v *Values) { v.ContactPhone = "" },
	}
	for field, blank := range blankers {
		v := passing
		blank(&v)
		result := EvaluateGate(v, domain.RelationProspect, false, false)
		assert.False(t, result.CanSave, "blanking %s should block saving", field)
		assert.NotEmpty(t, result.GateMessage, field)
	}
}

func TestGateMessageEmptyOnlyWhenSavable(t *testing.T) {
	modes := []domain.RelationMode{
		domain.RelationClient, domain.RelationProspect, domain.RelationSupplier,
		domain.RelationInternal, domain.RelationSolicitation, domain.RelationOther,
	}
	for _, mode := range modes {
		result := EvaluateGate(Values{}, mode, false, false)
		assert.False(t, result.CanSave)
		assert.NotEmpty(t, result.GateMessage, "mode %s", mode)
	}
}
