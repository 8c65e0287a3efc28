package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

// BuildInput bundles a previous interaction snapshot with the proposed edits.
// StatusID, ReminderAt and OrderRef carry the full proposed values, as the
// edit form submits them; Note is a free-text addition.
type BuildInput struct {
	Interaction *domain.Interaction
	StatusID    string
	ReminderAt  *time.Time
	OrderRef    string
	Note        string
	StatusByID  domain.StatusCatalog
	Now         time.Time
}

// BuildResult carries the ordered timeline entries and the sparse update
// patch. A nil Updates with an empty Events slice means nothing changed.
type BuildResult struct {
	Events  []domain.TimelineEvent
	Updates *domain.InteractionUpdate
}

// BuildEvents computes the timeline entries and update patch for an edit.
// Changed dimensions are always appended in the fixed order order_ref,
// status, reminder, note, all stamped with the single Now value. The
// interaction input is never mutated.
func BuildEvents(in BuildInput) BuildResult {
	prev := in.Interaction

	note := strings.TrimSpace(in.Note)
	orderRef := strings.TrimSpace(in.OrderRef)
	orderChanged := orderRef != strings.TrimSpace(prev.OrderRef)
	statusChanged := in.StatusID != "" && in.StatusID != prev.StatusID
	reminderChanged := !sameReminder(in.ReminderAt, prev.ReminderAt)

	if note == "" && !orderChanged && !statusChanged && !reminderChanged {
		return BuildResult{Events: []domain.TimelineEvent{}, Updates: nil}
	}

	updates := &domain.InteractionUpdate{}
	var events []domain.TimelineEvent
	appendEvent := func(kind domain.TimelineEventType, content string) {
		events = append(events, domain.TimelineEvent{
			ID:            uuid.NewString(),
			InteractionID: prev.ID,
			Date:          in.Now,
			Type:          kind,
			Content:       content,
		})
	}

	if orderChanged {
		appendEvent(domain.EventOrderRefChange, orderRefContent(orderRef))
		updates.OrderRef = &orderRef
	}

	if statusChanged {
		oldLabel := statusLabel(in.StatusByID, prev.StatusID, prev.StatusLabel)
		newLabel := statusLabel(in.StatusByID, in.StatusID, prev.StatusLabel)
		appendEvent(domain.EventStatusChange,
			fmt.Sprintf("Statut modifié : \"%s\" → \"%s\"", oldLabel, newLabel))
		statusID := in.StatusID
		updates.StatusID = &statusID
		if next, ok := in.StatusByID[in.StatusID]; ok {
			label := next.Label
			terminal := next.Terminal()
			updates.StatusLabel = &label
			updates.StatusIsTerminal = &terminal
		}
	}

	if reminderChanged {
		appendEvent(domain.EventReminderChange, reminderContent(in.ReminderAt))
		updates.ReminderChanged = true
		if in.ReminderAt != nil {
			at := *in.ReminderAt
			updates.ReminderAt = &at
		}
	}

	if note != "" {
		appendEvent(domain.EventNote, note)
	}

	if len(events) > 0 {
		now := in.Now
		updates.LastActionAt = &now
	}

	return BuildResult{Events: events, Updates: updates}
}

// statusLabel resolves a status id to its label, falling back to the
// interaction's stored label when the id is not in the catalog.
func statusLabel(catalog domain.StatusCatalog, statusID, fallback string) string {
	if status, ok := catalog[statusID]; ok {
		return status.Label
	}
	return fallback
}

func orderRefContent(ref string) string {
	if ref == "" {
		return "Référence commande retirée"
	}
	return fmt.Sprintf("Référence commande : %s", ref)
}

func reminderContent(at *time.Time) string {
	if at == nil {
		return "Rappel supprimé"
	}
	return fmt.Sprintf("Rappel planifié le %s", at.Format("02/01/2006 15:04"))
}

func sameReminder(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
