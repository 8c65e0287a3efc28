package domain

import "time"

// UserRole enumerates operator roles within an agency.
type UserRole string

const (
	RoleAdvisor UserRole = "ADVISOR"
	RoleManager UserRole = "MANAGER"
	RoleAdmin   UserRole = "ADMIN"
)

// UserStatus represents lifecycle states for an advisor account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is an advisor who records interactions for an agency.
type User struct {
	ID           string
	AgencyID     string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
