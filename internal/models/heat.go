package models

import (
	"time"

	"github.com/lib/pq"
)

// HeatIntensity classifies a detected heat event.
type HeatIntensity string

const (
	HeatIntensityLow    HeatIntensity = "low"
	HeatIntensityMedium HeatIntensity = "medium"
	HeatIntensityHigh   HeatIntensity = "high"
)

// Valid returns true when the intensity is a supported value.
func (i HeatIntensity) Valid() bool {
	switch i {
	case HeatIntensityLow, HeatIntensityMedium, HeatIntensityHigh:
		return true
	default:
		return false
	}
}

// AlertSeverity mirrors heat intensity on the derived alert.
type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "low"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

// SeverityForIntensity maps intensity to severity one-to-one, defaulting
// to medium for anything unrecognised.
func SeverityForIntensity(i HeatIntensity) AlertSeverity {
	switch i {
	case HeatIntensityLow:
		return SeverityLow
	case HeatIntensityHigh:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// HeatRecord is an immutable detection row. Only InseminationDone is
// ever flipped after creation.
type HeatRecord struct {
	ID               string         `db:"id" json:"id"`
	CowID            string         `db:"cow_id" json:"cow_id"`
	UserID           string         `db:"user_id" json:"user_id"`
	SensorType       string         `db:"sensor_type" json:"sensor_type"`
	SensorReading    *float64       `db:"sensor_reading" json:"sensor_reading,omitempty"`
	Intensity        HeatIntensity  `db:"intensity" json:"intensity"`
	Symptoms         pq.StringArray `db:"symptoms" json:"symptoms"`
	AIConfidence     *float64       `db:"ai_confidence" json:"ai_confidence,omitempty"`
	DetectedAt       time.Time      `db:"detected_at" json:"detected_at"`
	InseminationDone bool           `db:"insemination_done" json:"insemination_done"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

// BreedingWindow is the recommended insemination interval derived from a
// heat record.
type BreedingWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// HeatAlert is the user-facing notification derived 1:1 from a heat
// record. IsRead and IsDismissed are the only fields mutated later.
type HeatAlert struct {
	ID                   string        `db:"id" json:"id"`
	CowID                string        `db:"cow_id" json:"cow_id"`
	UserID               string        `db:"user_id" json:"user_id"`
	HeatRecordID         string        `db:"heat_record_id" json:"heat_record_id"`
	Title                string        `db:"title" json:"title"`
	Message              string        `db:"message" json:"message"`
	AlertType            string        `db:"alert_type" json:"alert_type"`
	Severity             AlertSeverity `db:"severity" json:"severity"`
	SensorType           *string       `db:"sensor_type" json:"sensor_type,omitempty"`
	SensorReading        *float64      `db:"sensor_reading" json:"sensor_reading,omitempty"`
	OptimalBreedingStart time.Time     `db:"optimal_breeding_start" json:"optimal_breeding_start"`
	OptimalBreedingEnd   time.Time     `db:"optimal_breeding_end" json:"optimal_breeding_end"`
	IsRead               bool          `db:"is_read" json:"is_read"`
	IsDismissed          bool          `db:"is_dismissed" json:"is_dismissed"`
	CreatedAt            time.Time     `db:"created_at" json:"created_at"`
}

// Window returns the alert's breeding window.
func (a *HeatAlert) Window() BreedingWindow {
	return BreedingWindow{Start: a.OptimalBreedingStart, End: a.OptimalBreedingEnd}
}

// HeatAlertFilter scopes alert listing queries.
type HeatAlertFilter struct {
	UserID     string
	CowID      string
	UnreadOnly bool
	Page       int
	PageSize   int
}
