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

// BreedingRepository handles persistence for breeding calendar entries.
type BreedingRepository struct {
	db *sqlx.DB
}

// NewBreedingRepository constructs the repository.
func NewBreedingRepository(db *sqlx.DB) *BreedingRepository {
	return &BreedingRepository{db: db}
}

const breedingColumns = "id, cow_id, user_id, event_type, title, description, event_date, end_date, reminder_date, reminder_sent, notes, status, created_at, updated_at"

// List returns events matching the filter ordered by event date.
func (r *BreedingRepository) List(ctx context.Context, filter models.BreedingEventFilter) ([]models.BreedingEvent, int, error) {
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
	if filter.EventType != nil && filter.EventType.Valid() {
		where = append(where, fmt.Sprintf("event_type = $%d", len(args)+1))
		args = append(args, *filter.EventType)
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.FromDate != nil {
		where = append(where, fmt.Sprintf("event_date >= $%d", len(args)+1))
		args = append(args, *filter.FromDate)
	}
	if filter.ToDate != nil {
		where = append(where, fmt.Sprintf("event_date <= $%d", len(args)+1))
		args = append(args, *filter.ToDate)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM breeding_events WHERE %s ORDER BY event_date ASC LIMIT %d OFFSET %d",
		breedingColumns, whereClause, size, offset)
	var events []models.BreedingEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list breeding events: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM breeding_events WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count breeding events: %w", err)
	}
	return events, total, nil
}

// FindByID returns a single calendar entry.
func (r *BreedingRepository) FindByID(ctx context.Context, id string) (*models.BreedingEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM breeding_events WHERE id = $1", breedingColumns)
	var event models.BreedingEvent
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find breeding event %s: %w", id, err)
	}
	return &event, nil
}

// Create inserts a calendar entry.
func (r *BreedingRepository) Create(ctx context.Context, event *models.BreedingEvent) error {
	now := time.Now().UTC()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.CreatedAt = now
	event.UpdatedAt = now
	query := `INSERT INTO breeding_events (id, cow_id, user_id, event_type, title, description, event_date, end_date, reminder_date, reminder_sent, notes, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	if _, err := r.db.ExecContext(ctx, query, event.ID, event.CowID, event.UserID, event.EventType, event.Title, event.Description,
		event.EventDate, event.EndDate, event.ReminderDate, event.ReminderSent, event.Notes, event.Status, event.CreatedAt, event.UpdatedAt); err != nil {
		return fmt.Errorf("create breeding event: %w", err)
	}
	return nil
}

// Update overwrites mutable fields of a calendar entry.
func (r *BreedingRepository) Update(ctx context.Context, event *models.BreedingEvent) error {
	event.UpdatedAt = time.Now().UTC()
	query := `UPDATE breeding_events SET event_type = $2, title = $3, description = $4, event_date = $5, end_date = $6, reminder_date = $7, notes = $8, status = $9, updated_at = $10
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, event.ID, event.EventType, event.Title, event.Description, event.EventDate,
		event.EndDate, event.ReminderDate, event.Notes, event.Status, event.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update breeding event: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a calendar entry.
func (r *BreedingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM breeding_events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete breeding event: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DueReminders returns entries whose reminder date has passed and was
// not notified yet.
func (r *BreedingRepository) DueReminders(ctx context.Context, now time.Time, limit int) ([]models.BreedingEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	query := fmt.Sprintf(`SELECT %s FROM breeding_events
WHERE reminder_date IS NOT NULL AND reminder_sent = FALSE AND reminder_date <= $1
ORDER BY reminder_date ASC LIMIT %d`, breedingColumns, limit)
	var events []models.BreedingEvent
	if err := r.db.SelectContext(ctx, &events, query, now); err != nil {
		return nil, fmt.Errorf("due breeding reminders: %w", err)
	}
	return events, nil
}

// MarkReminderSent flags a reminder as delivered.
func (r *BreedingRepository) MarkReminderSent(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE breeding_events SET reminder_sent = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark breeding reminder sent: %w", err)
	}
	return nil
}
