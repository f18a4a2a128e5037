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

// CowRepository handles persistence for the herd registry.
type CowRepository struct {
	db *sqlx.DB
}

// NewCowRepository constructs the repository.
func NewCowRepository(db *sqlx.DB) *CowRepository {
	return &CowRepository{db: db}
}

const cowColumns = "id, user_id, tag_number, name, breed, weight, birth_date, status, created_at, updated_at"

// List returns cows matching the provided filter.
func (r *CowRepository) List(ctx context.Context, filter models.CowFilter) ([]models.Cow, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.UserID != "" {
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)+1))
		args = append(args, filter.UserID)
	}
	if filter.Status != nil && filter.Status.Valid() {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(tag_number ILIKE $%d OR name ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	whereClause := strings.Join(where, " AND ")

	sortBy := filter.SortBy
	allowedSort := map[string]string{
		"tag_number": "tag_number",
		"name":       "name",
		"status":     "status",
		"created_at": "created_at",
	}
	sortColumn, ok := allowedSort[sortBy]
	if !ok {
		sortColumn = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s FROM cows WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d",
		cowColumns, whereClause, sortColumn, order, size, offset)

	var cows []models.Cow
	if err := r.db.SelectContext(ctx, &cows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list cows: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM cows WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count cows: %w", err)
	}
	return cows, total, nil
}

// FindByID returns a single cow.
func (r *CowRepository) FindByID(ctx context.Context, id string) (*models.Cow, error) {
	query := fmt.Sprintf("SELECT %s FROM cows WHERE id = $1", cowColumns)
	var cow models.Cow
	if err := r.db.GetContext(ctx, &cow, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find cow %s: %w", id, err)
	}
	return &cow, nil
}

// ExistsByTag reports whether a tag number is already registered for the
// owner, optionally excluding one cow.
func (r *CowRepository) ExistsByTag(ctx context.Context, userID, tagNumber, excludeID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM cows WHERE user_id = $1 AND tag_number = $2 AND ($3 = '' OR id <> $3))`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, tagNumber, excludeID); err != nil {
		return false, fmt.Errorf("cow tag exists: %w", err)
	}
	return exists, nil
}

// Create inserts a cow row.
func (r *CowRepository) Create(ctx context.Context, cow *models.Cow) error {
	now := time.Now().UTC()
	if cow.ID == "" {
		cow.ID = uuid.NewString()
	}
	cow.CreatedAt = now
	cow.UpdatedAt = now
	query := `INSERT INTO cows (id, user_id, tag_number, name, breed, weight, birth_date, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query, cow.ID, cow.UserID, cow.TagNumber, cow.Name, cow.Breed, cow.Weight, cow.BirthDate, cow.Status, cow.CreatedAt, cow.UpdatedAt); err != nil {
		return fmt.Errorf("create cow: %w", err)
	}
	return nil
}

// Update overwrites mutable cow fields.
func (r *CowRepository) Update(ctx context.Context, cow *models.Cow) error {
	cow.UpdatedAt = time.Now().UTC()
	query := `UPDATE cows SET tag_number = $2, name = $3, breed = $4, weight = $5, birth_date = $6, status = $7, updated_at = $8
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, cow.ID, cow.TagNumber, cow.Name, cow.Breed, cow.Weight, cow.BirthDate, cow.Status, cow.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cow: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus overwrites the cow's status flag.
func (r *CowRepository) UpdateStatus(ctx context.Context, id string, status models.CowStatus) error {
	query := `UPDATE cows SET status = $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update cow status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the cow row. Dependent rows follow the store's foreign
// keys; no cascade logic lives here.
func (r *CowRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cows WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete cow: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// StatusCounts groups the herd by status for the owner.
func (r *CowRepository) StatusCounts(ctx context.Context, userID string) ([]models.HerdStatusCount, error) {
	query := `SELECT status, COUNT(*) AS count FROM cows WHERE user_id = $1 GROUP BY status ORDER BY status`
	var rows []models.HerdStatusCount
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("herd status counts: %w", err)
	}
	return rows, nil
}
