package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

// AgencyRepository manages agency persistence.
type AgencyRepository interface {
	Create(ctx context.Context, agency *domain.Agency) error
	Update(ctx context.Context, agency *domain.Agency) error
	GetByID(ctx context.Context, id string) (*domain.Agency, error)
	ListActive(ctx context.Context) ([]domain.Agency, error)
}

type agencyRepository struct {
	pool *pgxpool.Pool
}

// NewAgencyRepository builds the repository.
func NewAgencyRepository(pool *pgxpool.Pool) AgencyRepository {
	return &agencyRepository{pool: pool}
}

func (r *agencyRepository) Create(ctx context.Context, agency *domain.Agency) error {
	const query = `
        INSERT INTO agencies (name, code, is_active)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		agency.Name,
		agency.Code,
		agency.IsActive,
	).Scan(&agency.ID, &agency.CreatedAt, &agency.UpdatedAt)
}

func (r *agencyRepository) Update(ctx context.Context, agency *domain.Agency) error {
	const query = `
        UPDATE agencies SET name=$1, code=$2, is_active=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		agency.Name,
		agency.Code,
		agency.IsActive,
		agency.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *agencyRepository) GetByID(ctx context.Context, id string) (*domain.Agency, error) {
	const query = `
        SELECT id, name, code, is_active, created_at, updated_at
        FROM agencies WHERE id=$1`
	var agency domain.Agency
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&agency.ID,
		&agency.Name,
		&agency.Code,
		&agency.IsActive,
		&agency.CreatedAt,
		&agency.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &agency, nil
}

func (r *agencyRepository) ListActive(ctx context.Context) ([]domain.Agency, error) {
	const query = `
        SELECT id, name, code, is_active, created_at, updated_at
        FROM agencies WHERE is_active = TRUE ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Agency
	for rows.Next() {
		var agency domain.Agency
		if err := rows.Scan(&agency.ID, &agency.Name, &agency.Code, &agency.IsActive, &agency.CreatedAt, &agency.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, agency)
	}
	return result, rows.Err()
}
