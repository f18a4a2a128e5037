package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmtrack/farmtrack-api/internal/models"
)

func newCowMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCowRepositoryList(t *testing.T) {
	db, mock, cleanup := newCowMock(t)
	defer cleanup()
	repo := NewCowRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "tag_number", "name", "breed", "weight", "birth_date", "status", "created_at", "updated_at"}).
		AddRow("cow-1", "user-1", "A-001", "Bella", "Holstein", 520.5, time.Now(), "healthy", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, tag_number, name, breed, weight, birth_date, status, created_at, updated_at FROM cows WHERE 1=1 AND user_id = $1 ORDER BY created_at DESC LIMIT 50 OFFSET 0")).
		WithArgs("user-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM cows WHERE 1=1 AND user_id = $1")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	cows, total, err := repo.List(context.Background(), models.CowFilter{UserID: "user-1"})
	require.NoError(t, err)
	assert.Len(t, cows, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "A-001", cows[0].TagNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCowRepositoryListFiltersByStatus(t *testing.T) {
	db, mock, cleanup := newCowMock(t)
	defer cleanup()
	repo := NewCowRepository(db)

	status := models.CowStatusInHeat
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, tag_number, name, breed, weight, birth_date, status, created_at, updated_at FROM cows WHERE 1=1 AND status = $1 ORDER BY created_at DESC LIMIT 50 OFFSET 0")).
		WithArgs(status).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM cows WHERE 1=1 AND status = $1")).
		WithArgs(status).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	cows, total, err := repo.List(context.Background(), models.CowFilter{Status: &status})
	require.NoError(t, err)
	assert.Empty(t, cows)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCowRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newCowMock(t)
	defer cleanup()
	repo := NewCowRepository(db)

	mock.ExpectExec("INSERT INTO cows").
		WithArgs(sqlmock.AnyArg(), "user-1", "A-002", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), "healthy", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	cow := &models.Cow{UserID: "user-1", TagNumber: "A-002", Status: models.CowStatusHealthy}
	err := repo.Create(context.Background(), cow)
	require.NoError(t, err)
	assert.NotEmpty(t, cow.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCowRepositoryExistsByTag(t *testing.T) {
	db, mock, cleanup := newCowMock(t)
	defer cleanup()
	repo := NewCowRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("user-1", "A-001", "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByTag(context.Background(), "user-1", "A-001", "")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCowRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := newCowMock(t)
	defer cleanup()
	repo := NewCowRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE cows SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("missing", models.CowStatusSick, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.CowStatusSick)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCowRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newCowMock(t)
	defer cleanup()
	repo := NewCowRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cows WHERE id = $1")).
		WithArgs("cow-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "cow-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
