package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/crm-gateway/pkg/util"
)

func TestSubmitInputReminderFormats(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339", "2026-03-15T09:00:00Z", time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)},
		{"local datetime without seconds", "2026-03-15T09:00", time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)},
		{"local datetime with seconds", "2026-03-15T09:00:30", time.Date(2026, 3, 15, 9, 0, 30, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := InteractionFormPayload{ReminderAt: tt.value}
			input, err := payload.SubmitInput()
			require.NoError(t, err)
			require.NotNil(t, input.ReminderAt)
			assert.True(t, input.ReminderAt.Equal(tt.want))
		})
	}
}

func TestSubmitInputReminderEmpty(t *testing.T) {
	input, err := InteractionFormPayload{ReminderAt: "   "}.SubmitInput()
	require.NoError(t, err)
	assert.Nil(t, input.ReminderAt)
}

func TestSubmitInputReminderInvalid(t *testing.T) {
	_, err := InteractionFormPayload{ReminderAt: "15/03/2026 09:00"}.SubmitInput()
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateInputReminderLocalDatetime(t *testing.T) {
	input, err := UpdateInteractionRequest{ReminderAt: "2026-03-15T09:00"}.UpdateInput()
	require.NoError(t, err)
	require.NotNil(t, input.ReminderAt)
	assert.True(t, input.ReminderAt.Equal(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)))
}

func TestUpdateInputReminderClears(t *testing.T) {
	input, err := UpdateInteractionRequest{ReminderAt: ""}.UpdateInput()
	require.NoError(t, err)
	assert.Nil(t, input.ReminderAt)
}
