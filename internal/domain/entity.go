package domain

import "time"

// Entity represents a counterparty company (client, prospect, supplier...)
// recorded under an agency.
type Entity struct {
	ID         string
	AgencyID   string
	Name       string
	City       string
	EntityType string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EntityContact is a person attached to an entity.
type EntityContact struct {
	ID        string
	EntityID  string
	FirstName string
	LastName  string
	Name      string
	Position  string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
