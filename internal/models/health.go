package models

import "time"

// HealthRecordType enumerates veterinary record kinds.
type HealthRecordType string

const (
	HealthRecordCheckup     HealthRecordType = "checkup"
	HealthRecordVaccination HealthRecordType = "vaccination"
	HealthRecordIllness     HealthRecordType = "illness"
	HealthRecordInjury      HealthRecordType = "injury"
	HealthRecordTreatment   HealthRecordType = "treatment"
)

// Valid returns true when the record type is a supported value.
func (t HealthRecordType) Valid() bool {
	switch t {
	case HealthRecordCheckup, HealthRecordVaccination, HealthRecordIllness, HealthRecordInjury, HealthRecordTreatment:
		return true
	default:
		return false
	}
}

// MarksSick reports whether creating a record of this type flips the cow
// status to sick.
func (t HealthRecordType) MarksSick() bool {
	return t == HealthRecordIllness || t == HealthRecordInjury
}

// HealthRecord is a veterinary entry for a cow.
type HealthRecord struct {
	ID             string           `db:"id" json:"id"`
	CowID          string           `db:"cow_id" json:"cow_id"`
	UserID         string           `db:"user_id" json:"user_id"`
	RecordType     HealthRecordType `db:"record_type" json:"record_type"`
	Diagnosis      *string          `db:"diagnosis" json:"diagnosis,omitempty"`
	Treatment      *string          `db:"treatment" json:"treatment,omitempty"`
	Medications    *string          `db:"medications" json:"medications,omitempty"`
	Veterinarian   *string          `db:"veterinarian" json:"veterinarian,omitempty"`
	Cost           *float64         `db:"cost" json:"cost,omitempty"`
	Notes          *string          `db:"notes" json:"notes,omitempty"`
	FollowUpDate   *time.Time       `db:"follow_up_date" json:"follow_up_date,omitempty"`
	FollowUpNotified bool           `db:"follow_up_notified" json:"follow_up_notified"`
	RecordDate     time.Time        `db:"record_date" json:"record_date"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`
}

// HealthRecordFilter scopes health record listing queries.
type HealthRecordFilter struct {
	CowID  string
	UserID string
	Limit  int
}
