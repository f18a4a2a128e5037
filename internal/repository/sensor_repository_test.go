package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmtrack/farmtrack-api/internal/models"
)

func newSensorMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSensorRepositoryInsertMilk(t *testing.T) {
	db, mock, cleanup := newSensorMock(t)
	defer cleanup()
	repo := NewSensorRepository(db)

	mock.ExpectExec("INSERT INTO milk_production").
		WithArgs(sqlmock.AnyArg(), "cow-1", "user-1", 12.5, sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.MilkProductionRecord{CowID: "cow-1", UserID: "user-1", QuantityLiters: 12.5, IsAutomatic: true}
	err := repo.InsertMilk(context.Background(), record)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.RecordedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSensorRepositoryInsertWeight(t *testing.T) {
	db, mock, cleanup := newSensorMock(t)
	defer cleanup()
	repo := NewSensorRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO weight_sensor_readings").
		WithArgs(sqlmock.AnyArg(), "cow-1", "user-1", 525.0, sqlmock.AnyArg(), true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cows SET weight = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("cow-1", 525.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reading := &models.WeightReading{CowID: "cow-1", UserID: "user-1", WeightKg: 525.0, IsAutomatic: true}
	err := repo.InsertWeight(context.Background(), reading)
	require.NoError(t, err)
	assert.NotEmpty(t, reading.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSensorRepositoryInsertWeightRollsBack(t *testing.T) {
	db, mock, cleanup := newSensorMock(t)
	defer cleanup()
	repo := NewSensorRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO weight_sensor_readings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE cows SET weight").
		WillReturnError(errors.New("cow gone"))
	mock.ExpectRollback()

	reading := &models.WeightReading{CowID: "cow-1", UserID: "user-1", WeightKg: 510.0}
	err := repo.InsertWeight(context.Background(), reading)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update cow weight")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSensorRepositoryMilkDailyTotals(t *testing.T) {
	db, mock, cleanup := newSensorMock(t)
	defer cleanup()
	repo := NewSensorRepository(db)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	rows := sqlmock.NewRows([]string{"day", "total_liters", "readings"}).
		AddRow(from, 120.5, 10).
		AddRow(from.AddDate(0, 0, 1), 98.0, 8)
	mock.ExpectQuery("SELECT DATE_TRUNC").
		WithArgs("user-1", from, to).
		WillReturnRows(rows)

	totals, err := repo.MilkDailyTotals(context.Background(), "user-1", from, to)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, 120.5, totals[0].TotalLiters)
	assert.Equal(t, 8, totals[1].Readings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSensorRepositoryMilkTotalSince(t *testing.T) {
	db, mock, cleanup := newSensorMock(t)
	defer cleanup()
	repo := NewSensorRepository(db)

	since := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(quantity_liters), 0) FROM milk_production WHERE user_id = $1 AND recorded_at >= $2")).
		WithArgs("user-1", since).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(42.75))

	total, err := repo.MilkTotalSince(context.Background(), "user-1", since)
	require.NoError(t, err)
	assert.Equal(t, 42.75, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
