package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
)

// The optimal breeding window is a fixed policy offset from the
// detection time. The source constants are not configurable and not
// derived from historical cycle data.
const (
	BreedingWindowStartOffset = 12 * time.Hour
	BreedingWindowEndOffset   = 18 * time.Hour
)

const defaultSensorType = "activity_sensor"

type heatRepository interface {
	CreateWithAlert(ctx context.Context, record *models.HeatRecord, alert *models.HeatAlert, status models.CowStatus) error
	ListByCow(ctx context.Context, cowID string, limit int) ([]models.HeatRecord, error)
	MarkInseminationDone(ctx context.Context, id string) error
}

type heatCowRepository interface {
	FindByID(ctx context.Context, id string) (*models.Cow, error)
}

type heatNotifier interface {
	EnqueueHeatAlert(alert models.HeatAlert, cowName string) error
}

// HeatService derives breeding-window alerts from detected heat events.
type HeatService struct {
	repo      heatRepository
	cows      heatCowRepository
	notifier  heatNotifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewHeatService constructs the heat detection service.
func NewHeatService(repo heatRepository, cows heatCowRepository, notifier heatNotifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *HeatService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeatService{
		repo:      repo,
		cows:      cows,
		notifier:  notifier,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// DetectHeatRequest is the heat detection payload.
type DetectHeatRequest struct {
	CowID         string   `json:"cow_id" validate:"required"`
	UserID        string   `json:"user_id" validate:"required"`
	SensorType    string   `json:"sensor_type"`
	SensorReading *float64 `json:"sensor_reading"`
	Intensity     string   `json:"intensity"`
	Symptoms      []string `json:"symptoms"`
	AIConfidence  *float64 `json:"ai_confidence"`
}

// HeatDetectionResult bundles everything written for one detection.
type HeatDetectionResult struct {
	HeatRecord            models.HeatRecord     `json:"heat_record"`
	Alert                 models.HeatAlert      `json:"alert"`
	OptimalBreedingWindow models.BreedingWindow `json:"optimal_breeding_window"`
}

// Detect appends a heat record, derives its alert with the fixed
// breeding window, and overwrites the cow's status to in_heat.
func (s *HeatService) Detect(ctx context.Context, req DetectHeatRequest) (*HeatDetectionResult, error) {
	if req.CowID == "" || req.UserID == "" {
		return nil, appErrors.MissingFields("cow_id", "user_id")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid heat detection payload")
	}

	cow, err := s.cows.FindByID(ctx, req.CowID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cow not found")
		}
		return nil, err
	}

	intensity := models.HeatIntensity(req.Intensity)
	if !intensity.Valid() {
		intensity = models.HeatIntensityMedium
	}
	sensorType := req.SensorType
	if sensorType == "" {
		sensorType = defaultSensorType
	}
	symptoms := req.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}

	detectedAt := s.now().UTC()
	window := models.BreedingWindow{
		Start: detectedAt.Add(BreedingWindowStartOffset),
		End:   detectedAt.Add(BreedingWindowEndOffset),
	}

	record := models.HeatRecord{
		CowID:         req.CowID,
		UserID:        req.UserID,
		SensorType:    sensorType,
		SensorReading: req.SensorReading,
		Intensity:     intensity,
		Symptoms:      pq.StringArray(symptoms),
		AIConfidence:  req.AIConfidence,
		DetectedAt:    detectedAt,
	}

	var alertSensorType *string
	if req.SensorType != "" {
		alertSensorType = &req.SensorType
	}
	alert := models.HeatAlert{
		CowID:      req.CowID,
		UserID:     req.UserID,
		Title:      fmt.Sprintf("Heat Detected: %s", cow.DisplayName()),
		Message: fmt.Sprintf("Heat detected with %s intensity. Optimal breeding window: %s - %s",
			intensity, window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339)),
		AlertType:            "heat_detected",
		Severity:             models.SeverityForIntensity(intensity),
		SensorType:           alertSensorType,
		SensorReading:        req.SensorReading,
		OptimalBreedingStart: window.Start,
		OptimalBreedingEnd:   window.End,
	}

	// The status overwrite is unconditional even over pregnant; the
	// transition table only flags it.
	if !models.ValidTransition(cow.Status, models.CowStatusInHeat) {
		s.logger.Warn("unexpected status transition on heat detection",
			zap.String("cow_id", cow.ID),
			zap.String("from", string(cow.Status)),
			zap.String("to", string(models.CowStatusInHeat)))
	}

	if err := s.repo.CreateWithAlert(ctx, &record, &alert, models.CowStatusInHeat); err != nil {
		return nil, err
	}

	s.metrics.RecordHeatDetection()
	s.logger.Info("heat detection processed",
		zap.String("cow_id", req.CowID),
		zap.String("alert_id", alert.ID),
		zap.String("intensity", string(intensity)))

	if s.notifier != nil {
		if err := s.notifier.EnqueueHeatAlert(alert, cow.DisplayName()); err != nil {
			s.logger.Warn("heat alert notification enqueue failed", zap.String("alert_id", alert.ID), zap.Error(err))
		}
	}

	return &HeatDetectionResult{HeatRecord: record, Alert: alert, OptimalBreedingWindow: window}, nil
}

// History lists heat records for a cow.
func (s *HeatService) History(ctx context.Context, cowID string, limit int) ([]models.HeatRecord, error) {
	if cowID == "" {
		return nil, appErrors.MissingFields("cow_id")
	}
	return s.repo.ListByCow(ctx, cowID, limit)
}

// MarkInseminated flags a heat record once insemination occurred.
func (s *HeatService) MarkInseminated(ctx context.Context, recordID string) error {
	if recordID == "" {
		return appErrors.MissingFields("id")
	}
	if err := s.repo.MarkInseminationDone(ctx, recordID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "heat record not found")
		}
		return err
	}
	return nil
}
