package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmtrack/farmtrack-api/internal/models"
)

func newAttendanceMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAttendanceRepositoryCheckIn(t *testing.T) {
	db, mock, cleanup := newAttendanceMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec("INSERT INTO attendance_records").
		WithArgs(sqlmock.AnyArg(), "staff-1", "user-1", "bio-1", "fingerprint", sqlmock.AnyArg(), nil, "present", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.AttendanceRecord{
		StaffID:       "staff-1",
		UserID:        "user-1",
		BiometricID:   "bio-1",
		BiometricType: "fingerprint",
		Status:        "present",
	}
	err := repo.CheckIn(context.Background(), record)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CheckIn.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCloseOpen(t *testing.T) {
	db, mock, cleanup := newAttendanceMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := dayStart.Add(17 * time.Hour)
	checkIn := dayStart.Add(8 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "staff_id", "user_id", "biometric_id", "biometric_type", "check_in", "check_out", "location", "status", "created_at"}).
		AddRow("att-1", "staff-1", "user-1", "bio-1", "fingerprint", checkIn, checkOut, nil, "present", checkIn)
	mock.ExpectQuery("UPDATE attendance_records SET check_out").
		WithArgs("staff-1", dayStart, checkOut).
		WillReturnRows(rows)

	record, err := repo.CloseOpen(context.Background(), "staff-1", dayStart, checkOut)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "att-1", record.ID)
	require.NotNil(t, record.CheckOut)
	assert.True(t, record.CheckOut.Equal(checkOut))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCloseOpenNothingOpen(t *testing.T) {
	db, mock, cleanup := newAttendanceMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	dayStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("UPDATE attendance_records SET check_out").
		WithArgs("staff-1", dayStart, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	record, err := repo.CloseOpen(context.Background(), "staff-1", dayStart, dayStart.Add(17*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryList(t *testing.T) {
	db, mock, cleanup := newAttendanceMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "staff_id", "user_id", "biometric_id", "biometric_type", "check_in", "check_out", "location", "status", "created_at"}).
		AddRow("att-1", "staff-1", "user-1", "bio-1", "fingerprint", time.Now(), nil, nil, "present", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, staff_id, user_id, biometric_id, biometric_type, check_in, check_out, location, status, created_at FROM attendance_records WHERE 1=1 AND user_id = $1 AND check_out IS NULL ORDER BY check_in DESC LIMIT 50 OFFSET 0")).
		WithArgs("user-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM attendance_records WHERE 1=1 AND user_id = $1 AND check_out IS NULL")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	records, total, err := repo.List(context.Background(), models.AttendanceFilter{UserID: "user-1", OpenOnly: true})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
