package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/farmtrack/farmtrack-api/internal/models"
)

// AlertRepository handles reads and flag updates on heat alerts. Alert
// creation happens alongside its heat record in HeatRepository.
type AlertRepository struct {
	db *sqlx.DB
}

// NewAlertRepository constructs the repository.
func NewAlertRepository(db *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// List returns alerts matching the filter, newest first.
func (r *AlertRepository) List(ctx context.Context, filter models.HeatAlertFilter) ([]models.HeatAlert, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.UserID != "" {
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)+1))
		args = append(args, filter.UserID)
	}
	if filter.CowID != "" {
		where = append(where, fmt.Sprintf("cow_id = $%d", len(args)+1))
		args = append(args, filter.CowID)
	}
	if filter.UnreadOnly {
		where = append(where, "is_read = FALSE AND is_dismissed = FALSE")
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

	query := fmt.Sprintf("SELECT %s FROM heat_alerts WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		heatAlertColumns, whereClause, size, offset)
	var alerts []models.HeatAlert
	if err := r.db.SelectContext(ctx, &alerts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list heat alerts: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM heat_alerts WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count heat alerts: %w", err)
	}
	return alerts, total, nil
}

// MarkRead sets the is_read flag.
func (r *AlertRepository) MarkRead(ctx context.Context, id string) error {
	return r.setFlag(ctx, id, "is_read")
}

// Dismiss sets the is_dismissed flag.
func (r *AlertRepository) Dismiss(ctx context.Context, id string) error {
	return r.setFlag(ctx, id, "is_dismissed")
}

func (r *AlertRepository) setFlag(ctx context.Context, id, column string) error {
	query := fmt.Sprintf("UPDATE heat_alerts SET %s = TRUE WHERE id = $1", column)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("set alert %s: %w", column, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountActive counts alerts neither read nor dismissed for the owner.
func (r *AlertRepository) CountActive(ctx context.Context, userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM heat_alerts WHERE user_id = $1 AND is_read = FALSE AND is_dismissed = FALSE`
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count active alerts: %w", err)
	}
	return count, nil
}

// CountActiveSince counts recent active alerts, used by the dashboard.
func (r *AlertRepository) CountActiveSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM heat_alerts WHERE user_id = $1 AND is_read = FALSE AND is_dismissed = FALSE AND created_at >= $2`
	if err := r.db.GetContext(ctx, &count, query, userID, since); err != nil {
		return 0, fmt.Errorf("count recent alerts: %w", err)
	}
	return count, nil
}
