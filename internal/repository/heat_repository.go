package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/farmtrack/farmtrack-api/internal/models"
)

// HeatRepository handles persistence for heat records and their derived
// alerts.
type HeatRepository struct {
	db *sqlx.DB
}

// NewHeatRepository constructs the repository.
func NewHeatRepository(db *sqlx.DB) *HeatRepository {
	return &HeatRepository{db: db}
}

const heatRecordColumns = "id, cow_id, user_id, sensor_type, sensor_reading, intensity, symptoms, ai_confidence, detected_at, insemination_done, created_at"

const heatAlertColumns = "id, cow_id, user_id, heat_record_id, title, message, alert_type, severity, sensor_type, sensor_reading, optimal_breeding_start, optimal_breeding_end, is_read, is_dismissed, created_at"

// CreateWithAlert inserts the heat record, its derived alert, and the
// cow status overwrite in a single transaction so the three facts become
// visible together or not at all.
func (r *HeatRepository) CreateWithAlert(ctx context.Context, record *models.HeatRecord, alert *models.HeatAlert, status models.CowStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin heat detection: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = now
	recordQuery := `INSERT INTO heat_records (id, cow_id, user_id, sensor_type, sensor_reading, intensity, symptoms, ai_confidence, detected_at, insemination_done, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := tx.ExecContext(ctx, recordQuery, record.ID, record.CowID, record.UserID, record.SensorType, record.SensorReading,
		record.Intensity, record.Symptoms, record.AIConfidence, record.DetectedAt, record.InseminationDone, record.CreatedAt); err != nil {
		return fmt.Errorf("insert heat record: %w", err)
	}

	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	alert.HeatRecordID = record.ID
	alert.CreatedAt = now
	alertQuery := `INSERT INTO heat_alerts (id, cow_id, user_id, heat_record_id, title, message, alert_type, severity, sensor_type, sensor_reading, optimal_breeding_start, optimal_breeding_end, is_read, is_dismissed, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	if _, err := tx.ExecContext(ctx, alertQuery, alert.ID, alert.CowID, alert.UserID, alert.HeatRecordID, alert.Title, alert.Message,
		alert.AlertType, alert.Severity, alert.SensorType, alert.SensorReading, alert.OptimalBreedingStart, alert.OptimalBreedingEnd,
		alert.IsRead, alert.IsDismissed, alert.CreatedAt); err != nil {
		return fmt.Errorf("insert heat alert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE cows SET status = $2, updated_at = $3 WHERE id = $1`, record.CowID, status, now); err != nil {
		return fmt.Errorf("update cow status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit heat detection: %w", err)
	}
	committed = true
	return nil
}

// ListByCow returns heat records for a cow, newest first.
func (r *HeatRepository) ListByCow(ctx context.Context, cowID string, limit int) ([]models.HeatRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := fmt.Sprintf("SELECT %s FROM heat_records WHERE cow_id = $1 ORDER BY detected_at DESC LIMIT %d", heatRecordColumns, limit)
	var records []models.HeatRecord
	if err := r.db.SelectContext(ctx, &records, query, cowID); err != nil {
		return nil, fmt.Errorf("list heat records: %w", err)
	}
	return records, nil
}

// MarkInseminationDone flips the only mutable flag on a heat record.
func (r *HeatRepository) MarkInseminationDone(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE heat_records SET insemination_done = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark insemination done: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
