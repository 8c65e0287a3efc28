package domain

import "time"

// StatusCategory buckets agency statuses for reporting and terminal detection.
type StatusCategory string

const (
	StatusCategoryTodo       StatusCategory = "todo"
	StatusCategoryInProgress StatusCategory = "in_progress"
	StatusCategoryDone       StatusCategory = "done"
)

// AgencyStatus is one entry of an agency's configurable status catalog.
type AgencyStatus struct {
	ID         string
	AgencyID   string
	Label      string
	Category   StatusCategory
	IsDefault  bool
	IsTerminal bool
	SortOrder  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Terminal reports whether landing on this status ends the interaction's
// follow-up cycle: either the explicit flag or the done category.
func (s AgencyStatus) Terminal() bool {
	return s.IsTerminal || s.Category == StatusCategoryDone
}

// StatusCatalog is a read-only lookup of an agency's statuses by id.
type StatusCatalog map[string]AgencyStatus
