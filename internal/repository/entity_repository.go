package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

// EntityRepository manages counterparty company persistence.
type EntityRepository interface {
	Create(ctx context.Context, entity *domain.Entity) error
	Update(ctx context.Context, entity *domain.Entity) error
	GetByID(ctx context.Context, id string) (*domain.Entity, error)
	Search(ctx context.Context, agencyID, term string, limit int) ([]domain.Entity, error)
}

type entityRepository struct {
	pool *pgxpool.Pool
}

// NewEntityRepository builds the repository.
func NewEntityRepository(pool *pgxpool.Pool) EntityRepository {
	return &entityRepository{pool: pool}
}

func (r *entityRepository) Create(ctx context.Context, entity *domain.Entity) error {
	const query = `
        INSERT INTO entities (agency_id, name, city, entity_type)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		entity.AgencyID,
		entity.Name,
		entity.City,
		entity.EntityType,
	).Scan(&entity.ID, &entity.CreatedAt, &entity.UpdatedAt)
}

func (r *entityRepository) Update(ctx context.Context, entity *domain.Entity) error {
	const query = `
        UPDATE entities SET name=$1, city=$2, entity_type=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		entity.Name,
		entity.City,
		entity.EntityType,
		entity.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *entityRepository) GetByID(ctx context.Context, id string) (*domain.Entity, error) {
	const query = `
        SELECT id, agency_id, name, city, entity_type, created_at, updated_at
        FROM entities WHERE id=$1`
	var entity domain.Entity
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&entity.ID,
		&entity.AgencyID,
		&entity.Name,
		&entity.City,
		&entity.EntityType,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *entityRepository) Search(ctx context.Context, agencyID, term string, limit int) ([]domain.Entity, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
        SELECT id, agency_id, name, city, entity_type, created_at, updated_at
        FROM entities WHERE agency_id=$1 AND LOWER(name) LIKE $2
        ORDER BY name ASC LIMIT $3`
	search := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	rows, err := r.pool.Query(ctx, query, agencyID, search, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Entity
	for rows.Next() {
		var entity domain.Entity
		if err := rows.Scan(&entity.ID, &entity.AgencyID, &entity.Name, &entity.City, &entity.EntityType, &entity.CreatedAt, &entity.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, rows.Err()
}
