package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

// StatusRepository manages the per-agency status catalog.
type StatusRepository interface {
	Create(ctx context.Context, status *domain.AgencyStatus) error
	Update(ctx context.Context, status *domain.AgencyStatus) error
	GetByID(ctx context.Context, id string) (*domain.AgencyStatus, error)
	ListByAgency(ctx context.Context, agencyID string) ([]domain.AgencyStatus, error)
	ClearDefault(ctx context.Context, agencyID string) error
}

type statusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository builds the repository.
func NewStatusRepository(pool *pgxpool.Pool) StatusRepository {
	return &statusRepository{pool: pool}
}

func (r *statusRepository) Create(ctx context.Context, status *domain.AgencyStatus) error {
	const query = `
        INSERT INTO agency_statuses (agency_id, label, category, is_default, is_terminal, sort_order)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		status.AgencyID,
		status.Label,
		status.Category,
		status.IsDefault,
		status.IsTerminal,
		status.SortOrder,
	).Scan(&status.ID, &status.CreatedAt, &status.UpdatedAt)
}

func (r *statusRepository) Update(ctx context.Context, status *domain.AgencyStatus) error {
	const query = `
        UPDATE agency_statuses SET label=$1, category=$2, is_default=$3, is_terminal=$4, sort_order=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		status.Label,
		status.Category,
		status.IsDefault,
		status.IsTerminal,
		status.SortOrder,
		status.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *statusRepository) GetByID(ctx context.Context, id string) (*domain.AgencyStatus, error) {
	const query = `
        SELECT id, agency_id, label, category, is_default, is_terminal, sort_order, created_at, updated_at
        FROM agency_statuses WHERE id=$1`
	var status domain.AgencyStatus
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&status.ID,
		&status.AgencyID,
		&status.Label,
		&status.Category,
		&status.IsDefault,
		&status.IsTerminal,
		&status.SortOrder,
		&status.CreatedAt,
		&status.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) ListByAgency(ctx context.Context, agencyID string) ([]domain.AgencyStatus, error) {
	const query = `
        SELECT id, agency_id, label, category, is_default, is_terminal, sort_order, created_at, updated_at
        FROM agency_statuses WHERE agency_id=$1 ORDER BY sort_order ASC, label ASC`
	rows, err := r.pool.Query(ctx, query, agencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AgencyStatus
	for rows.Next() {
		var status domain.AgencyStatus
		if err := rows.Scan(
			&status.ID,
			&status.AgencyID,
			&status.Label,
			&status.Category,
			&status.IsDefault,
			&status.IsTerminal,
			&status.SortOrder,
			&status.CreatedAt,
			&status.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, status)
	}
	return result, rows.Err()
}

// ClearDefault drops the default flag across an agency, used before
// promoting another status to default.
func (r *statusRepository) ClearDefault(ctx context.Context, agencyID string) error {
	const query = `UPDATE agency_statuses SET is_default=FALSE, updated_at=NOW() WHERE agency_id=$1 AND is_default=TRUE`
	_, err := r.pool.Exec(ctx, query, agencyID)
	return err
}
