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

// AttendanceRepository handles persistence for staff attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = "id, staff_id, user_id, biometric_id, biometric_type, check_in, check_out, location, status, created_at"

// CheckIn inserts an open attendance record.
func (r *AttendanceRepository) CheckIn(ctx context.Context, record *models.AttendanceRecord) error {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CheckIn.IsZero() {
		record.CheckIn = now
	}
	record.CreatedAt = now
	query := `INSERT INTO attendance_records (id, staff_id, user_id, biometric_id, biometric_type, check_in, check_out, location, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NULL, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.StaffID, record.UserID, record.BiometricID,
		record.BiometricType, record.CheckIn, record.Location, record.Status, record.CreatedAt); err != nil {
		return fmt.Errorf("insert attendance check-in: %w", err)
	}
	return nil
}

// CloseOpen closes the most recent open record for the staff member that
// was opened on or after dayStart. The conditional update claims exactly
// one open row, so concurrent check-outs cannot double-process it; a nil
// result means nothing was open.
func (r *AttendanceRepository) CloseOpen(ctx context.Context, staffID string, dayStart, checkOut time.Time) (*models.AttendanceRecord, error) {
	query := fmt.Sprintf(`UPDATE attendance_records SET check_out = $3
WHERE id = (
    SELECT id FROM attendance_records
    WHERE staff_id = $1 AND check_out IS NULL AND check_in >= $2
    ORDER BY check_in DESC LIMIT 1
    FOR UPDATE SKIP LOCKED
)
RETURNING %s`, attendanceColumns)
	var record models.AttendanceRecord
	err := r.db.GetContext(ctx, &record, query, staffID, dayStart, checkOut)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("close attendance record: %w", err)
	}
	return &record, nil
}

// List returns attendance records matching the filter, newest first.
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.StaffID != "" {
		where = append(where, fmt.Sprintf("staff_id = $%d", len(args)+1))
		args = append(args, filter.StaffID)
	}
	if filter.UserID != "" {
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)+1))
		args = append(args, filter.UserID)
	}
	if filter.OpenOnly {
		where = append(where, "check_out IS NULL")
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("check_in >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("check_in <= $%d", len(args)+1))
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

	query := fmt.Sprintf("SELECT %s FROM attendance_records WHERE %s ORDER BY check_in DESC LIMIT %d OFFSET %d",
		attendanceColumns, whereClause, size, offset)
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list attendance records: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM attendance_records WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count attendance records: %w", err)
	}
	return records, total, nil
}

// CountOpen counts currently open shifts for the owner.
func (r *AttendanceRepository) CountOpen(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM attendance_records WHERE user_id = $1 AND check_out IS NULL`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count open attendance: %w", err)
	}
	return count, nil
}

// StaffSummaries aggregates presence per staff member within a range.
func (r *AttendanceRepository) StaffSummaries(ctx context.Context, userID string, from, to time.Time) ([]models.StaffAttendanceSummary, error) {
	query := `SELECT a.staff_id, s.full_name AS staff_name,
COUNT(DISTINCT DATE_TRUNC('day', a.check_in)) AS days,
COALESCE(SUM(EXTRACT(EPOCH FROM (a.check_out - a.check_in)) / 3600.0) FILTER (WHERE a.check_out IS NOT NULL), 0) AS total_hours,
COUNT(*) FILTER (WHERE a.check_out IS NULL) AS open_shifts
FROM attendance_records a
JOIN staff s ON s.id = a.staff_id
WHERE a.user_id = $1 AND a.check_in >= $2 AND a.check_in < $3
GROUP BY a.staff_id, s.full_name
ORDER BY s.full_name`
	var rows []models.StaffAttendanceSummary
	if err := r.db.SelectContext(ctx, &rows, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("staff attendance summaries: %w", err)
	}
	return rows, nil
}
