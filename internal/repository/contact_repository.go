package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-gateway/internal/domain"
)

// ContactRepository manages entity contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.EntityContact) error
	GetByID(ctx context.Context, id string) (*domain.EntityContact, error)
	ListByEntity(ctx context.Context, entityID string) ([]domain.EntityContact, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository builds the repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.EntityContact) error {
	const query = `
        INSERT INTO entity_contacts (entity_id, first_name, last_name, name, position, phone, email)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		contact.EntityID,
		contact.FirstName,
		contact.LastName,
		contact.Name,
		contact.Position,
		contact.Phone,
		contact.Email,
	).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.EntityContact, error) {
	const query = `
        SELECT id, entity_id, first_name, last_name, name, position, phone, email, created_at, updated_at
        FROM entity_contacts WHERE id=$1`
	var contact domain.EntityContact
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&contact.ID,
		&contact.EntityID,
		&contact.FirstName,
		&contact.LastName,
		&contact.Name,
		&contact.Position,
		&contact.Phone,
		&contact.Email,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) ListByEntity(ctx context.Context, entityID string) ([]domain.EntityContact, error) {
	const query = `
        SELECT id, entity_id, first_name, last_name, name, position, phone, email, created_at, updated_at
        FROM entity_contacts WHERE entity_id=$1 ORDER BY last_name ASC, first_name ASC`
	rows, err := r.pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EntityContact
	for rows.Next() {
		var contact domain.EntityContact
		if err := rows.Scan(
			&contact.ID,
			&contact.EntityID,
			&contact.FirstName,
			&contact.LastName,
			&contact.Name,
			&contact.Position,
			&contact.Phone,
			&contact.Email,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}
