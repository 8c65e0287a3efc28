package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyEntityType(t *testing.T) {
	tests := []struct {
		name       string
		entityType string
		want       RelationMode
	}{
		{"exact client", "client", RelationClient},
		{"client uppercase with spaces", "  Client  ", RelationClient},
		{"exact supplier", "fournisseur", RelationSupplier},
		{"internal cir", "interne CIR", RelationInternal},
		{"internal cir compact", "interne-cir", RelationInternal},
		{"solicitation", "sollicitation", RelationSolicitation},
		{"prospect substring", "  Prospect / Particulier ", RelationProspect},
		{"particulier substring", "un particulier", RelationProspect},
		{"unknown", "association", RelationOther},
		{"empty", "", RelationOther},
		{"whitespace only", "   ", RelationOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyEntityType(tt.entityType))
		})
	}
}

func TestClassifyEntityTypeExactBeforeSubstring(t *testing.T) {
	// A label containing "prospect" that is exactly "client" can't happen,
	// but "interne cir prospect" must resolve to internal, not prospect.
	assert.Equal(t, RelationInternal, ClassifyEntityType("interne cir prospect"))
}

func TestRequiresRecordCreation(t *testing.T) {
	assert.False(t, RelationClient.RequiresRecordCreation())
	assert.False(t, RelationInternal.RequiresRecordCreation())
	assert.False(t, RelationSolicitation.RequiresRecordCreation())
	assert.True(t, RelationProspect.RequiresRecordCreation())
	assert.True(t, RelationSupplier.RequiresRecordCreation())
	assert.True(t, RelationOther.RequiresRecordCreation())
}
