package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	"github.com/farmtrack/farmtrack-api/internal/service"
)

type stubSensorRepo struct {
	milk    []models.MilkProductionRecord
	weights []models.WeightReading
}

func (r *stubSensorRepo) InsertMilk(_ context.Context, record *models.MilkProductionRecord) error {
	if record.ID == "" {
		record.ID = "milk-generated"
	}
	r.milk = append(r.milk, *record)
	return nil
}

func (r *stubSensorRepo) InsertWeight(_ context.Context, reading *models.WeightReading) error {
	if reading.ID == "" {
		reading.ID = "weight-generated"
	}
	r.weights = append(r.weights, *reading)
	return nil
}

func (r *stubSensorRepo) ListMilk(context.Context, models.MilkProductionFilter) ([]models.MilkProductionRecord, int, error) {
	return r.milk, len(r.milk), nil
}

type stubAttendanceRepo struct {
	open map[string]*models.AttendanceRecord
}

func (r *stubAttendanceRepo) CheckIn(_ context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = "att-generated"
	}
	r.open[record.StaffID] = record
	return nil
}

func (r *stubAttendanceRepo) CloseOpen(_ context.Context, staffID string, _, checkOut time.Time) (*models.AttendanceRecord, error) {
	record, ok := r.open[staffID]
	if !ok {
		return nil, nil
	}
	delete(r.open, staffID)
	record.CheckOut = &checkOut
	return record, nil
}

func (r *stubAttendanceRepo) List(context.Context, models.AttendanceFilter) ([]models.AttendanceRecord, int, error) {
	return nil, 0, nil
}

func newSensorHandlerForTest(sensors *stubSensorRepo, attendance *stubAttendanceRepo) *SensorHandler {
	return NewSensorHandler(service.NewIngestService(sensors, attendance, nil, zap.NewNop()))
}

func TestSensorHandlerIngestMilk(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sensors := &stubSensorRepo{}
	handler := newSensorHandlerForTest(sensors, &stubAttendanceRepo{open: map[string]*models.AttendanceRecord{}})

	body := bytes.NewBufferString(`{"type":"milk_production","data":{"cow_id":"cow-1","user_id":"user-1","quantity_liters":14.2}}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/sensor-events", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Ingest(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, sensors.milk, 1)
	assert.Equal(t, 14.2, sensors.milk[0].QuantityLiters)
	assert.True(t, sensors.milk[0].IsAutomatic)
}

func TestSensorHandlerIngestUnknownType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSensorHandlerForTest(&stubSensorRepo{}, &stubAttendanceRepo{open: map[string]*models.AttendanceRecord{}})

	body := bytes.NewBufferString(`{"type":"humidity","data":{}}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/sensor-events", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Ingest(c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "UNKNOWN_SENSOR_TYPE", envelope.Error["code"])
}

func TestSensorHandlerIngestCheckOutWithoutCheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSensorHandlerForTest(&stubSensorRepo{}, &stubAttendanceRepo{open: map[string]*models.AttendanceRecord{}})

	body := bytes.NewBufferString(`{"type":"biometric_attendance","data":{"staff_id":"staff-1","user_id":"user-1","biometric_id":"bio-1","action":"check_out"}}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/sensor-events", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Ingest(c)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NO_OPEN_CHECK_IN", envelope.Error["code"])
}

func TestSensorHandlerListMilk(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sensors := &stubSensorRepo{milk: []models.MilkProductionRecord{
		{ID: "milk-1", CowID: "cow-1", UserID: "user-1", QuantityLiters: 12.0},
	}}
	handler := newSensorHandlerForTest(sensors, &stubAttendanceRepo{open: map[string]*models.AttendanceRecord{}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/milk-production?user_id=user-1", nil)

	handler.ListMilk(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data       []models.MilkProductionRecord `json:"data"`
		Pagination *models.Pagination            `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "milk-1", envelope.Data[0].ID)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 1, envelope.Pagination.TotalCount)
}
