package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/farmtrack/farmtrack-api/internal/models"
)

// HealthRepository handles persistence for veterinary records.
type HealthRepository struct {
	db *sqlx.DB
}

// NewHealthRepository constructs the repository.
func NewHealthRepository(db *sqlx.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

const healthColumns = "id, cow_id, user_id, record_type, diagnosis, treatment, medications, veterinarian, cost, notes, follow_up_date, follow_up_notified, record_date, created_at, updated_at"

// List returns health records matching the filter, newest first.
func (r *HealthRepository) List(ctx context.Context, filter models.HealthRecordFilter) ([]models.HealthRecord, error) {
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
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := fmt.Sprintf("SELECT %s FROM health_records WHERE %s ORDER BY record_date DESC LIMIT %d",
		healthColumns, strings.Join(where, " AND "), limit)
	var records []models.HealthRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list health records: %w", err)
	}
	return records, nil
}

// FindByID returns a single health record.
func (r *HealthRepository) FindByID(ctx context.Context, id string) (*models.HealthRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM health_records WHERE id = $1", healthColumns)
	var record models.HealthRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find health record %s: %w", id, err)
	}
	return &record, nil
}

// Create inserts a health record.
func (r *HealthRepository) Create(ctx context.Context, record *models.HealthRecord) error {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.RecordDate.IsZero() {
		record.RecordDate = now
	}
	record.CreatedAt = now
	record.UpdatedAt = now
	query := `INSERT INTO health_records (id, cow_id, user_id, record_type, diagnosis, treatment, medications, veterinarian, cost, notes, follow_up_date, follow_up_notified, record_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.CowID, record.UserID, record.RecordType, record.Diagnosis,
		record.Treatment, record.Medications, record.Veterinarian, record.Cost, record.Notes, record.FollowUpDate,
		record.FollowUpNotified, record.RecordDate, record.CreatedAt, record.UpdatedAt); err != nil {
		return fmt.Errorf("create health record: %w", err)
	}
	return nil
}

// Update overwrites mutable fields of a health record.
func (r *HealthRepository) Update(ctx context.Context, record *models.HealthRecord) error {
	record.UpdatedAt = time.Now().UTC()
	query := `UPDATE health_records SET record_type = $2, diagnosis = $3, treatment = $4, medications = $5, veterinarian = $6, cost = $7, notes = $8, follow_up_date = $9, updated_at = $10
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, record.ID, record.RecordType, record.Diagnosis, record.Treatment,
		record.Medications, record.Veterinarian, record.Cost, record.Notes, record.FollowUpDate, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update health record: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a health record.
func (r *HealthRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM health_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete health record: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DueFollowUps returns records whose follow-up date passed without a
// notification.
func (r *HealthRepository) DueFollowUps(ctx context.Context, now time.Time, limit int) ([]models.HealthRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	query := fmt.Sprintf(`SELECT %s FROM health_records
WHERE follow_up_date IS NOT NULL AND follow_up_notified = FALSE AND follow_up_date <= $1
ORDER BY follow_up_date ASC LIMIT %d`, healthColumns, limit)
	var records []models.HealthRecord
	if err := r.db.SelectContext(ctx, &records, query, now); err != nil {
		return nil, fmt.Errorf("due health follow-ups: %w", err)
	}
	return records, nil
}

// MarkFollowUpNotified flags a follow-up as delivered.
func (r *HealthRepository) MarkFollowUpNotified(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE health_records SET follow_up_notified = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark follow-up notified: %w", err)
	}
	return nil
}
