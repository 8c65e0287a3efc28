package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

// EventRepository stores append-only timeline entries.
type EventRepository interface {
	Create(ctx context.Context, event *domain.TimelineEvent) error
	ListByInteraction(ctx context.Context, interactionID string) ([]domain.TimelineEvent, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository builds repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.TimelineEvent) error {
	const query = `
        INSERT INTO interaction_events (id, interaction_id, event_date, event_type, content)
        VALUES ($1,$2,$3,$4,$5)`
	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.InteractionID,
		event.Date,
		event.Type,
		event.Content,
	)
	return err
}

func (r *eventRepository) ListByInteraction(ctx context.Context, interactionID string) ([]domain.TimelineEvent, error) {
	const query = `
        SELECT id, interaction_id, event_date, event_type, content
        FROM interaction_events WHERE interaction_id=$1 ORDER BY event_date ASC, seq ASC`
	rows, err := r.pool.Query(ctx, query, interactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TimelineEvent
	for rows.Next() {
		var event domain.TimelineEvent
		if err := rows.Scan(
			&event.ID,
			&event.InteractionID,
			&event.Date,
			&event.Type,
			&event.Content,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
