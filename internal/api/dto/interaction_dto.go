package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/crm-gateway/internal/domain"
	"github.com/spec-kit/crm-gateway/internal/form"
	"github.com/spec-kit/crm-gateway/internal/service"
	apperrors "github.com/spec-kit/crm-gateway/pkg/util"
)

// InteractionFormPayload carries the cockpit form fields shared by the
// preview and submit endpoints.
type InteractionFormPayload struct {
	Channel          string   `json:"channel"`
	EntityType       string   `json:"entity_type"`
	ContactService   string   `json:"contact_service"`
	InteractionType  string   `json:"interaction_type"`
	CompanyName      string   `json:"company_name"`
	CompanyCity      string   `json:"company_city"`
	ContactFirstName string   `json:"contact_first_name"`
	ContactLastName  string   `json:"contact_last_name"`
	ContactPosition  string   `json:"contact_position"`
	ContactPhone     string   `json:"contact_phone"`
	ContactEmail     string   `json:"contact_email"`
	Subject          string   `json:"subject"`
	MegaFamilies     []string `json:"mega_families"`
	StatusID         string   `json:"status_id"`
	OrderRef         string   `json:"order_ref"`
	ReminderAt       string   `json:"reminder_at"`
	Notes            string   `json:"notes"`
	EntityID         string   `json:"entity_id"`
	ContactID        string   `json:"contact_id"`
}

// FormValues converts the payload for the gate and stepper evaluators.
func (p InteractionFormPayload) FormValues() form.Values {
	return form.Values{
		Channel:          p.Channel,
		EntityType:       p.EntityType,
		ContactService:   p.ContactService,
		InteractionType:  p.InteractionType,
		CompanyName:      p.CompanyName,
		CompanyCity:      p.CompanyCity,
		ContactFirstName: p.ContactFirstName,
		ContactLastName:  p.ContactLastName,
		ContactPosition:  p.ContactPosition,
		ContactPhone:     p.ContactPhone,
		ContactEmail:     p.ContactEmail,
		Subject:          p.Subject,
		MegaFamilies:     p.MegaFamilies,
		StatusID:         p.StatusID,
		OrderRef:         p.OrderRef,
		ReminderAt:       p.ReminderAt,
		Notes:            p.Notes,
		EntityID:         p.EntityID,
		ContactID:        p.ContactID,
	}
}

// SubmitInput converts the payload for the submission orchestrator,
// parsing the reminder timestamp at the boundary.
func (p InteractionFormPayload) SubmitInput() (service.SubmitInput, error) {
	reminderAt, err := parseOptionalTime(p.ReminderAt)
	if err != nil {
		return service.SubmitInput{}, err
	}
	return service.SubmitInput{
		Channel:          p.Channel,
		EntityType:       p.EntityType,
		ContactService:   p.ContactService,
		InteractionType:  p.InteractionType,
		CompanyName:      p.CompanyName,
		CompanyCity:      p.CompanyCity,
		ContactFirstName: p.ContactFirstName,
		ContactLastName:  p.ContactLastName,
		ContactPosition:  p.ContactPosition,
		ContactPhone:     p.ContactPhone,
		ContactEmail:     p.ContactEmail,
		Subject:          p.Subject,
		MegaFamilies:     p.MegaFamilies,
		StatusID:         p.StatusID,
		OrderRef:         p.OrderRef,
		ReminderAt:       reminderAt,
		Notes:            p.Notes,
		EntityID:         p.EntityID,
		ContactID:        p.ContactID,
	}, nil
}

// UpdateInteractionRequest carries the proposed edits for an interaction.
type UpdateInteractionRequest struct {
	StatusID   string `json:"status_id"`
	ReminderAt string `json:"reminder_at"`
	OrderRef   string `json:"order_ref"`
	Note       string `json:"note"`
}

// UpdateInput converts the request for the service layer. An empty
// reminder_at clears the reminder.
func (r UpdateInteractionRequest) UpdateInput() (service.UpdateInput, error) {
	reminderAt, err := parseOptionalTime(r.ReminderAt)
	if err != nil {
		return service.UpdateInput{}, err
	}
	return service.UpdateInput{
		StatusID:   r.StatusID,
		ReminderAt: reminderAt,
		OrderRef:   r.OrderRef,
		Note:       r.Note,
	}, nil
}

// StepResponse is one stepper entry.
type StepResponse struct {
	Label  string `json:"label"`
	Status string `json:"status"`
}

// PreviewResponse reports save eligibility and progression for the current
// form state.
type PreviewResponse struct {
	CanSave          bool           `json:"can_save"`
	GateMessage      string         `json:"gate_message,omitempty"`
	HasContactMethod bool           `json:"has_contact_method"`
	RelationMode     string         `json:"relation_mode"`
	Steps            []StepResponse `json:"steps"`
}

// NewPreviewResponse maps evaluator output to the wire shape.
func NewPreviewResponse(gate form.GateResult, steps []form.Step, mode domain.RelationMode) PreviewResponse {
	stepResponses := make([]StepResponse, len(steps))
	for i, step := range steps {
		stepResponses[i] = StepResponse{Label: step.Label, Status: string(step.Status)}
	}
	return PreviewResponse{
		CanSave:          gate.CanSave,
		GateMessage:      gate.GateMessage,
		HasContactMethod: gate.HasContactMethod,
		RelationMode:     string(mode),
		Steps:            stepResponses,
	}
}

// TimelineEventResponse is one timeline entry.
type TimelineEventResponse struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Type    string    `json:"type"`
	Content string    `json:"content"`
}

// InteractionResponse is the wire shape of an interaction.
type InteractionResponse struct {
	ID               string                  `json:"id"`
	AgencyID         string                  `json:"agency_id"`
	CreatedBy        string                  `json:"created_by"`
	Channel          string                  `json:"channel"`
	EntityType       string                  `json:"entity_type"`
	RelationMode     string                  `json:"relation_mode"`
	EntityID         *string                 `json:"entity_id,omitempty"`
	ContactID        *string                 `json:"contact_id,omitempty"`
	CompanyName      string                  `json:"company_name"`
	ContactName      string                  `json:"contact_name"`
	ContactService   string                  `json:"contact_service"`
	InteractionType  string                  `json:"interaction_type"`
	Subject          string                  `json:"subject"`
	MegaFamilies     []string                `json:"mega_families"`
	StatusID         string                  `json:"status_id"`
	StatusLabel      string                  `json:"status_label"`
	StatusIsTerminal bool                    `json:"status_is_terminal"`
	ReminderAt       *time.Time              `json:"reminder_at,omitempty"`
	OrderRef         string                  `json:"order_ref,omitempty"`
	LastActionAt     time.Time               `json:"last_action_at"`
	CreatedAt        time.Time               `json:"created_at"`
	Timeline         []TimelineEventResponse `json:"timeline,omitempty"`
}

// NewInteractionResponse maps a domain interaction to the wire shape.
func NewInteractionResponse(interaction *domain.Interaction) InteractionResponse {
	timeline := make([]TimelineEventResponse, len(interaction.Timeline))
	for i, event := range interaction.Timeline {
		timeline[i] = TimelineEventResponse{
			ID:      event.ID,
			Date:    event.Date,
			Type:    string(event.Type),
			Content: event.Content,
		}
	}
	return InteractionResponse{
		ID:               interaction.ID,
		AgencyID:         interaction.AgencyID,
		CreatedBy:        interaction.CreatedBy,
		Channel:          interaction.Channel,
		EntityType:       interaction.EntityType,
		RelationMode:     string(interaction.RelationMode),
		EntityID:         interaction.EntityID,
		ContactID:        interaction.ContactID,
		CompanyName:      interaction.CompanyName,
		ContactName:      interaction.ContactName,
		ContactService:   interaction.ContactService,
		InteractionType:  interaction.InteractionType,
		Subject:          interaction.Subject,
		MegaFamilies:     interaction.MegaFamilies,
		StatusID:         interaction.StatusID,
		StatusLabel:      interaction.StatusLabel,
		StatusIsTerminal: interaction.StatusIsTerminal,
		ReminderAt:       interaction.ReminderAt,
		OrderRef:         interaction.OrderRef,
		LastActionAt:     interaction.LastActionAt,
		CreatedAt:        interaction.CreatedAt,
		Timeline:         timeline,
	}
}

// NewInteractionListResponse maps a slice of interactions.
func NewInteractionListResponse(interactions []domain.Interaction) []InteractionResponse {
	responses := make([]InteractionResponse, len(interactions))
	for i := range interactions {
		responses[i] = NewInteractionResponse(&interactions[i])
	}
	return responses
}

// timestampLayouts are tried in order: full RFC 3339 first, then the
// zoneless local-datetime forms the cockpit's datetime input produces.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseOptionalTime(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed, nil
		}
	}
	return nil, apperrors.NewValidationError("invalid timestamp, expected an ISO datetime", map[string]any{
		"value": value,
	})
}
