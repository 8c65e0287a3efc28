package domain

import "time"

// Agency represents one branch of the organization. Interactions, entities
// and status catalogs are all scoped to an agency.
type Agency struct {
	ID        string
	Name      string
	Code      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
