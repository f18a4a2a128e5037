package models

import "time"

// BreedingEventType enumerates calendar entry kinds.
type BreedingEventType string

const (
	BreedingEventHeatDetected       BreedingEventType = "heat_detected"
	BreedingEventInsemination       BreedingEventType = "insemination"
	BreedingEventPregnancyCheck     BreedingEventType = "pregnancy_check"
	BreedingEventPregnancyConfirmed BreedingEventType = "pregnancy_confirmed"
	BreedingEventExpectedCalving    BreedingEventType = "expected_calving"
	BreedingEventCalving            BreedingEventType = "calving"
)

// Valid returns true when the event type is a supported value.
func (t BreedingEventType) Valid() bool {
	switch t {
	case BreedingEventHeatDetected, BreedingEventInsemination, BreedingEventPregnancyCheck,
		BreedingEventPregnancyConfirmed, BreedingEventExpectedCalving, BreedingEventCalving:
		return true
	default:
		return false
	}
}

// breedingStatusEffects is the static lookup mapping certain calendar
// entries to a cow status overwrite. It is not a state machine.
var breedingStatusEffects = map[BreedingEventType]CowStatus{
	BreedingEventInsemination:       CowStatusInseminated,
	BreedingEventPregnancyConfirmed: CowStatusPregnant,
	BreedingEventCalving:            CowStatusLactating,
}

// StatusEffect returns the cow status written when an event of this type
// is created, if any.
func (t BreedingEventType) StatusEffect() (CowStatus, bool) {
	status, ok := breedingStatusEffects[t]
	return status, ok
}

// BreedingEvent is a free-form calendar entry tied to a cow.
type BreedingEvent struct {
	ID           string            `db:"id" json:"id"`
	CowID        string            `db:"cow_id" json:"cow_id"`
	UserID       string            `db:"user_id" json:"user_id"`
	EventType    BreedingEventType `db:"event_type" json:"event_type"`
	Title        string            `db:"title" json:"title"`
	Description  *string           `db:"description" json:"description,omitempty"`
	EventDate    time.Time         `db:"event_date" json:"event_date"`
	EndDate      *time.Time        `db:"end_date" json:"end_date,omitempty"`
	ReminderDate *time.Time        `db:"reminder_date" json:"reminder_date,omitempty"`
	ReminderSent bool              `db:"reminder_sent" json:"reminder_sent"`
	Notes        *string           `db:"notes" json:"notes,omitempty"`
	Status       string            `db:"status" json:"status"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at" json:"updated_at"`
}

// BreedingEventFilter scopes calendar listing queries.
type BreedingEventFilter struct {
	CowID     string
	UserID    string
	EventType *BreedingEventType
	Status    string
	FromDate  *time.Time
	ToDate    *time.Time
	Page      int
	PageSize  int
}
