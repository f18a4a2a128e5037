package models

import "time"

// CowStatus represents the single mutable status on a cow.
type CowStatus string

const (
	CowStatusHealthy     CowStatus = "healthy"
	CowStatusInHeat      CowStatus = "in_heat"
	CowStatusInseminated CowStatus = "inseminated"
	CowStatusPregnant    CowStatus = "pregnant"
	CowStatusLactating   CowStatus = "lactating"
	CowStatusSick        CowStatus = "sick"
)

// Valid returns true when the status is a supported value.
func (s CowStatus) Valid() bool {
	switch s {
	case CowStatusHealthy, CowStatusInHeat, CowStatusInseminated, CowStatusPregnant, CowStatusLactating, CowStatusSick:
		return true
	default:
		return false
	}
}

// statusTransitions lists the expected reproductive cycle moves. Writes
// outside the table are logged and applied anyway: every trigger path
// (heat detection, breeding events, manual edits) overwrites the status
// last-writer-wins, and rejecting would change observed behaviour.
var statusTransitions = map[CowStatus][]CowStatus{
	CowStatusHealthy:     {CowStatusInHeat, CowStatusSick},
	CowStatusInHeat:      {CowStatusInseminated, CowStatusHealthy, CowStatusSick},
	CowStatusInseminated: {CowStatusPregnant, CowStatusInHeat, CowStatusHealthy, CowStatusSick},
	CowStatusPregnant:    {CowStatusLactating, CowStatusSick},
	CowStatusLactating:   {CowStatusInHeat, CowStatusHealthy, CowStatusSick},
	CowStatusSick:        {CowStatusHealthy},
}

// ValidTransition reports whether moving from one status to the next is
// part of the expected cycle.
func ValidTransition(from, to CowStatus) bool {
	if from == to {
		return true
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Cow represents a tracked animal in the herd registry.
type Cow struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	TagNumber string     `db:"tag_number" json:"tag_number"`
	Name      *string    `db:"name" json:"name,omitempty"`
	Breed     *string    `db:"breed" json:"breed,omitempty"`
	Weight    *float64   `db:"weight" json:"weight,omitempty"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Status    CowStatus  `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// DisplayName prefers the cow's name, falling back to the tag number.
func (c *Cow) DisplayName() string {
	if c == nil {
		return "Cow"
	}
	if c.Name != nil && *c.Name != "" {
		return *c.Name
	}
	if c.TagNumber != "" {
		return c.TagNumber
	}
	return "Cow"
}

// CowFilter captures filtering criteria for listing cows.
type CowFilter struct {
	UserID    string
	Status    *CowStatus
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
