package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

// InteractionFilter captures listing parameters for the cockpit views.
type InteractionFilter struct {
	AgencyID     string
	CreatedBy    *string
	StatusIDs    []string
	Terminal     *bool
	ReminderFrom *time.Time
	ReminderTo   *time.Time
	SearchTerm   *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// InteractionRepository encapsulates interaction persistence.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *domain.Interaction) error
	GetByID(ctx context.Context, id string) (*domain.Interaction, error)
	ListWithFilter(ctx context.Context, filter InteractionFilter) ([]domain.Interaction, error)
	ApplyUpdate(ctx context.Context, id string, update *domain.InteractionUpdate) error
}

type interactionRepository struct {
	pool *pgxpool.Pool
}

// NewInteractionRepository instantiates repository.
func NewInteractionRepository(pool *pgxpool.Pool) InteractionRepository {
	return &interactionRepository{pool: pool}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *domain.Interaction) error {
	const query = `
        INSERT INTO interactions (agency_id, created_by, channel, entity_type, relation_mode,
            entity_id, contact_id, company_name, contact_name, contact_service, interaction_type,
            subject, mega_families, status_id, status_label, status_is_terminal, reminder_at,
            order_ref, last_action_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		interaction.AgencyID,
		interaction.CreatedBy,
		interaction.Channel,
		interaction.EntityType,
		interaction.RelationMode,
		interaction.EntityID,
		interaction.ContactID,
		interaction.CompanyName,
		interaction.ContactName,
		interaction.ContactService,
		interaction.InteractionType,
		interaction.Subject,
		interaction.MegaFamilies,
		interaction.StatusID,
		interaction.StatusLabel,
		interaction.StatusIsTerminal,
		interaction.ReminderAt,
		interaction.OrderRef,
		interaction.LastActionAt,
	).Scan(&interaction.ID, &interaction.CreatedAt)
}

func (r *interactionRepository) GetByID(ctx context.Context, id string) (*domain.Interaction, error) {
	const query = selectColumns + ` FROM interactions WHERE id=$1`
	var interaction domain.Interaction
	if err := r.pool.QueryRow(ctx, query, id).Scan(scanTargets(&interaction)...); err != nil {
		return nil, err
	}
	return &interaction, nil
}

func (r *interactionRepository) ListWithFilter(ctx context.Context, filter InteractionFilter) ([]domain.Interaction, error) {
	clauses := []string{"agency_id=$1"}
	args := []any{filter.AgencyID}

	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if len(filter.StatusIDs) > 0 {
		placeholders := make([]string, len(filter.StatusIDs))
		for i, statusID := range filter.StatusIDs {
			args = append(args, statusID)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status_id IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.Terminal != nil {
		args = append(args, *filter.Terminal)
		clauses = append(clauses, fmt.Sprintf("status_is_terminal=$%d", len(args)))
	}
	if filter.ReminderFrom != nil {
		args = append(args, *filter.ReminderFrom)
		clauses = append(clauses, fmt.Sprintf("reminder_at >= $%d", len(args)))
	}
	if filter.ReminderTo != nil {
		args = append(args, *filter.ReminderTo)
		clauses = append(clauses, fmt.Sprintf("reminder_at <= $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(subject) LIKE %s OR LOWER(company_name) LIKE %s OR LOWER(contact_name) LIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s FROM interactions WHERE %s ORDER BY last_action_at DESC LIMIT %d OFFSET %d`,
		selectColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInteractions(rows)
}

// ApplyUpdate writes the sparse patch computed by the timeline builder.
func (r *interactionRepository) ApplyUpdate(ctx context.Context, id string, update *domain.InteractionUpdate) error {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.StatusID != nil {
		addSet("status_id", *update.StatusID)
	}
	if update.StatusLabel != nil {
		addSet("status_label", *update.StatusLabel)
	}
	if update.StatusIsTerminal != nil {
		addSet("status_is_terminal", *update.StatusIsTerminal)
	}
	if update.ReminderChanged {
		addSet("reminder_at", update.ReminderAt)
	}
	if update.OrderRef != nil {
		addSet("order_ref", *update.OrderRef)
	}
	if update.LastActionAt != nil {
		addSet("last_action_at", *update.LastActionAt)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE interactions SET %s WHERE id=$%d", strings.Join(sets, ", "), len(args))
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const selectColumns = `
        SELECT id, agency_id, created_by, channel, entity_type, relation_mode, entity_id, contact_id,
               company_name, contact_name, contact_service, interaction_type, subject, mega_families,
               status_id, status_label, status_is_terminal, reminder_at, order_ref, last_action_at, created_at`

func scanTargets(interaction *domain.Interaction) []any {
	return []any{
		&interaction.ID,
		&interaction.AgencyID,
		&interaction.CreatedBy,
		&interaction.Channel,
		&interaction.EntityType,
		&interaction.RelationMode,
		&interaction.EntityID,
		&interaction.ContactID,
		&interaction.CompanyName,
		&interaction.ContactName,
		&interaction.ContactService,
		&interaction.InteractionType,
		&interaction.Subject,
		&interaction.MegaFamilies,
		&interaction.StatusID,
		&interaction.StatusLabel,
		&interaction.StatusIsTerminal,
		&interaction.ReminderAt,
		&interaction.OrderRef,
		&interaction.LastActionAt,
		&interaction.CreatedAt,
	}
}

func scanInteractions(rows pgx.Rows) ([]domain.Interaction, error) {
	var result []domain.Interaction
	for rows.Next() {
		var interaction domain.Interaction
		if err := rows.Scan(scanTargets(&interaction)...); err != nil {
			return nil, err
		}
		result = append(result, interaction)
	}
	return result, rows.Err()
}
