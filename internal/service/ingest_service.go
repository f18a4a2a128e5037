package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
)

type sensorRepository interface {
	InsertMilk(ctx context.Context, record *models.MilkProductionRecord) error
	InsertWeight(ctx context.Context, reading *models.WeightReading) error
	ListMilk(ctx context.Context, filter models.MilkProductionFilter) ([]models.MilkProductionRecord, int, error)
}

type attendanceRepository interface {
	CheckIn(ctx context.Context, record *models.AttendanceRecord) error
	CloseOpen(ctx context.Context, staffID string, dayStart, checkOut time.Time) (*models.AttendanceRecord, error)
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, int, error)
}

// IngestService accepts sensor-style events and appends them to the
// corresponding append-only tables.
type IngestService struct {
	sensors    sensorRepository
	attendance attendanceRepository
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
}

// NewIngestService constructs the ingestion service.
func NewIngestService(sensors sensorRepository, attendance attendanceRepository, metrics *MetricsService, logger *zap.Logger) *IngestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestService{
		sensors:    sensors,
		attendance: attendance,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// SensorEventRequest is the ingestion envelope.
type SensorEventRequest struct {
	Type models.SensorEventType `json:"type"`
	Data json.RawMessage        `json:"data"`
}

// MilkEventData is the milk_production payload.
type MilkEventData struct {
	CowID             string   `json:"cow_id"`
	UserID            string   `json:"user_id"`
	QuantityLiters    *float64 `json:"quantity_liters"`
	SensorID          *string  `json:"sensor_id"`
	FatPercentage     *float64 `json:"fat_percentage"`
	ProteinPercentage *float64 `json:"protein_percentage"`
	QualityGrade      *string  `json:"quality_grade"`
}

// WeightEventData is the weight payload.
type WeightEventData struct {
	CowID    string   `json:"cow_id"`
	UserID   string   `json:"user_id"`
	WeightKg *float64 `json:"weight_kg"`
	SensorID *string  `json:"sensor_id"`
}

// AttendanceEventData is the biometric_attendance payload.
type AttendanceEventData struct {
	StaffID     string  `json:"staff_id"`
	UserID      string  `json:"user_id"`
	BiometricID string  `json:"biometric_id"`
	Action      string  `json:"action"`
	Location    *string `json:"location"`
}

// Ingest dispatches a sensor event to its handler and returns the
// resulting record.
func (s *IngestService) Ingest(ctx context.Context, req SensorEventRequest) (interface{}, error) {
	if req.Type == "" || len(req.Data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Missing 'type' or 'data' in request body")
	}

	var (
		record interface{}
		err    error
	)
	switch req.Type {
	case models.SensorEventMilkProduction:
		record, err = s.ingestMilk(ctx, req.Data)
	case models.SensorEventWeight:
		record, err = s.ingestWeight(ctx, req.Data)
	case models.SensorEventAttendance:
		record, err = s.ingestAttendance(ctx, req.Data)
	default:
		return nil, appErrors.Clone(appErrors.ErrUnknownSensor,
			fmt.Sprintf("Unknown type: %s. Valid types: milk_production, weight, biometric_attendance", req.Type))
	}
	if err != nil {
		return nil, err
	}

	s.metrics.RecordSensorEvent(string(req.Type))
	return record, nil
}

// ListMilk returns stored milk production records.
func (s *IngestService) ListMilk(ctx context.Context, filter models.MilkProductionFilter) ([]models.MilkProductionRecord, int, error) {
	return s.sensors.ListMilk(ctx, filter)
}

// ListAttendance returns stored attendance records.
func (s *IngestService) ListAttendance(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, int, error) {
	return s.attendance.List(ctx, filter)
}

func (s *IngestService) ingestMilk(ctx context.Context, raw json.RawMessage) (*models.MilkProductionRecord, error) {
	var data MilkEventData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid milk_production data")
	}
	if data.CowID == "" || data.UserID == "" || data.QuantityLiters == nil {
		return nil, appErrors.MissingFields("cow_id", "user_id", "quantity_liters")
	}

	record := models.MilkProductionRecord{
		CowID:             data.CowID,
		UserID:            data.UserID,
		QuantityLiters:    *data.QuantityLiters,
		SensorID:          data.SensorID,
		FatPercentage:     data.FatPercentage,
		ProteinPercentage: data.ProteinPercentage,
		QualityGrade:      data.QualityGrade,
		IsAutomatic:       true,
		RecordedAt:        s.now().UTC(),
	}
	if err := s.sensors.InsertMilk(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *IngestService) ingestWeight(ctx context.Context, raw json.RawMessage) (*models.WeightReading, error) {
	var data WeightEventData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid weight data")
	}
	if data.CowID == "" || data.UserID == "" || data.WeightKg == nil {
		return nil, appErrors.MissingFields("cow_id", "user_id", "weight_kg")
	}

	reading := models.WeightReading{
		CowID:       data.CowID,
		UserID:      data.UserID,
		WeightKg:    *data.WeightKg,
		SensorID:    data.SensorID,
		IsAutomatic: true,
		RecordedAt:  s.now().UTC(),
	}
	if err := s.sensors.InsertWeight(ctx, &reading); err != nil {
		return nil, err
	}
	return &reading, nil
}

func (s *IngestService) ingestAttendance(ctx context.Context, raw json.RawMessage) (*models.AttendanceRecord, error) {
	var data AttendanceEventData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid biometric_attendance data")
	}
	if data.StaffID == "" || data.UserID == "" || data.BiometricID == "" || data.Action == "" {
		return nil, appErrors.MissingFields("staff_id", "user_id", "biometric_id", "action")
	}

	switch data.Action {
	case "check_in":
		record := models.AttendanceRecord{
			StaffID:       data.StaffID,
			UserID:        data.UserID,
			BiometricID:   data.BiometricID,
			BiometricType: "fingerprint",
			CheckIn:       s.now().UTC(),
			Location:      data.Location,
			Status:        "present",
		}
		if err := s.attendance.CheckIn(ctx, &record); err != nil {
			return nil, err
		}
		return &record, nil
	case "check_out":
		now := s.now().UTC()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		record, err := s.attendance.CloseOpen(ctx, data.StaffID, dayStart, now)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return nil, appErrors.ErrNoOpenCheckIn
		}
		return record, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown attendance action: %s", data.Action))
	}
}
