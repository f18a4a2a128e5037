package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/farmtrack/farmtrack-api/internal/models"
)

// SensorRepository handles append-only sensor readings (milk, weight).
type SensorRepository struct {
	db *sqlx.DB
}

// NewSensorRepository constructs the repository.
func NewSensorRepository(db *sqlx.DB) *SensorRepository {
	return &SensorRepository{db: db}
}

// InsertMilk appends a milk production reading. Each call adds a new
// row; readings are never deduplicated.
func (r *SensorRepository) InsertMilk(ctx context.Context, record *models.MilkProductionRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now().UTC()
	}
	query := `INSERT INTO milk_production (id, cow_id, user_id, quantity_liters, sensor_id, fat_percentage, protein_percentage, quality_grade, is_automatic, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.CowID, record.UserID, record.QuantityLiters, record.SensorID,
		record.FatPercentage, record.ProteinPercentage, record.QualityGrade, record.IsAutomatic, record.RecordedAt); err != nil {
		return fmt.Errorf("insert milk production: %w", err)
	}
	return nil
}

// InsertWeight appends a weight reading and overwrites the cow's
// denormalized weight in the same transaction.
func (r *SensorRepository) InsertWeight(ctx context.Context, reading *models.WeightReading) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin weight ingest: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = time.Now().UTC()
	}
	insertQuery := `INSERT INTO weight_sensor_readings (id, cow_id, user_id, weight_kg, sensor_id, is_automatic, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.ExecContext(ctx, insertQuery, reading.ID, reading.CowID, reading.UserID, reading.WeightKg,
		reading.SensorID, reading.IsAutomatic, reading.RecordedAt); err != nil {
		return fmt.Errorf("insert weight reading: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE cows SET weight = $2, updated_at = $3 WHERE id = $1`,
		reading.CowID, reading.WeightKg, time.Now().UTC()); err != nil {
		return fmt.Errorf("update cow weight: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit weight ingest: %w", err)
	}
	committed = true
	return nil
}

// ListMilk returns milk readings matching the filter, newest first.
func (r *SensorRepository) ListMilk(ctx context.Context, filter models.MilkProductionFilter) ([]models.MilkProductionRecord, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.CowID != "" {
		where = append(where, fmt.Sprintf("cow_id = $%d", len(args)+1))
		args = append(args, filter.CowID)
	}
	if filter.UserID != "" {
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)+1))
		args = append(args, filter.UserID)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("recorded_at >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("recorded_at <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, cow_id, user_id, quantity_liters, sensor_id, fat_percentage, protein_percentage, quality_grade, is_automatic, recorded_at
FROM milk_production WHERE %s ORDER BY recorded_at DESC LIMIT %d OFFSET %d`, whereClause, size, offset)
	var records []models.MilkProductionRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list milk production: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM milk_production WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count milk production: %w", err)
	}
	return records, total, nil
}

// MilkDailyTotals aggregates production per calendar day for the owner.
func (r *SensorRepository) MilkDailyTotals(ctx context.Context, userID string, from, to time.Time) ([]models.MilkDailyTotal, error) {
	query := `SELECT DATE_TRUNC('day', recorded_at) AS day, COALESCE(SUM(quantity_liters), 0) AS total_liters, COUNT(*) AS readings
FROM milk_production
WHERE user_id = $1 AND recorded_at >= $2 AND recorded_at < $3
GROUP BY 1 ORDER BY 1`
	var rows []models.MilkDailyTotal
	if err := r.db.SelectContext(ctx, &rows, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("milk daily totals: %w", err)
	}
	return rows, nil
}

// MilkTotalSince sums production recorded at or after the given instant.
func (r *SensorRepository) MilkTotalSince(ctx context.Context, userID string, since time.Time) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(quantity_liters), 0) FROM milk_production WHERE user_id = $1 AND recorded_at >= $2`
	if err := r.db.GetContext(ctx, &total, query, userID, since); err != nil {
		return 0, fmt.Errorf("milk total since: %w", err)
	}
	return total, nil
}
