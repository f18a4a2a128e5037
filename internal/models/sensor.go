package models

import "time"

// SensorEventType identifies the payload variant on the ingest endpoint.
type SensorEventType string

const (
	SensorEventMilkProduction SensorEventType = "milk_production"
	SensorEventWeight         SensorEventType = "weight"
	SensorEventAttendance     SensorEventType = "biometric_attendance"
)

// MilkProductionRecord is an append-only milk measurement.
type MilkProductionRecord struct {
	ID                string    `db:"id" json:"id"`
	CowID             string    `db:"cow_id" json:"cow_id"`
	UserID            string    `db:"user_id" json:"user_id"`
	QuantityLiters    float64   `db:"quantity_liters" json:"quantity_liters"`
	SensorID          *string   `db:"sensor_id" json:"sensor_id,omitempty"`
	FatPercentage     *float64  `db:"fat_percentage" json:"fat_percentage,omitempty"`
	ProteinPercentage *float64  `db:"protein_percentage" json:"protein_percentage,omitempty"`
	QualityGrade      *string   `db:"quality_grade" json:"quality_grade,omitempty"`
	IsAutomatic       bool      `db:"is_automatic" json:"is_automatic"`
	RecordedAt        time.Time `db:"recorded_at" json:"recorded_at"`
}

// WeightReading is an append-only body weight measurement.
type WeightReading struct {
	ID          string    `db:"id" json:"id"`
	CowID       string    `db:"cow_id" json:"cow_id"`
	UserID      string    `db:"user_id" json:"user_id"`
	WeightKg    float64   `db:"weight_kg" json:"weight_kg"`
	SensorID    *string   `db:"sensor_id" json:"sensor_id,omitempty"`
	IsAutomatic bool      `db:"is_automatic" json:"is_automatic"`
	RecordedAt  time.Time `db:"recorded_at" json:"recorded_at"`
}

// MilkProductionFilter scopes milk listing queries.
type MilkProductionFilter struct {
	CowID    string
	UserID   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// MilkDailyTotal aggregates milk volume per calendar day.
type MilkDailyTotal struct {
	Day         time.Time `db:"day" json:"day"`
	TotalLiters float64   `db:"total_liters" json:"total_liters"`
	Readings    int       `db:"readings" json:"readings"`
}
