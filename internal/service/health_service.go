package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
)

type healthRepository interface {
	List(ctx context.Context, filter models.HealthRecordFilter) ([]models.HealthRecord, error)
	FindByID(ctx context.Context, id string) (*models.HealthRecord, error)
	Create(ctx context.Context, record *models.HealthRecord) error
	Update(ctx context.Context, record *models.HealthRecord) error
	Delete(ctx context.Context, id string) error
}

type healthCowRepository interface {
	FindByID(ctx context.Context, id string) (*models.Cow, error)
	UpdateStatus(ctx context.Context, id string, status models.CowStatus) error
}

// HealthService manages veterinary records.
type HealthService struct {
	repo   healthRepository
	cows   healthCowRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewHealthService constructs the health record service.
func NewHealthService(repo healthRepository, cows healthCowRepository, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{repo: repo, cows: cows, logger: logger, now: time.Now}
}

// CreateHealthRecordRequest is the POST payload.
type CreateHealthRecordRequest struct {
	CowID        string     `json:"cow_id"`
	UserID       string     `json:"user_id"`
	RecordType   string     `json:"record_type"`
	Diagnosis    *string    `json:"diagnosis"`
	Treatment    *string    `json:"treatment"`
	Medications  *string    `json:"medications"`
	Veterinarian *string    `json:"veterinarian"`
	Cost         *float64   `json:"cost"`
	Notes        *string    `json:"notes"`
	FollowUpDate *time.Time `json:"follow_up_date"`
	RecordDate   *time.Time `json:"record_date"`
}

// UpdateHealthRecordRequest is the PUT payload. Nil fields keep their
// stored value.
type UpdateHealthRecordRequest struct {
	RecordType   *string    `json:"record_type"`
	Diagnosis    *string    `json:"diagnosis"`
	Treatment    *string    `json:"treatment"`
	Medications  *string    `json:"medications"`
	Veterinarian *string    `json:"veterinarian"`
	Cost         *float64   `json:"cost"`
	Notes        *string    `json:"notes"`
	FollowUpDate *time.Time `json:"follow_up_date"`
	RecordDate   *time.Time `json:"record_date"`
}

// List returns health records matching the filter.
func (s *HealthService) List(ctx context.Context, filter models.HealthRecordFilter) ([]models.HealthRecord, error) {
	return s.repo.List(ctx, filter)
}

// Get returns a single health record.
func (s *HealthService) Get(ctx context.Context, id string) (*models.HealthRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "health record not found")
		}
		return nil, err
	}
	return record, nil
}

// Create stores a health record. Illness and injury records flip the
// cow's status to sick.
func (s *HealthService) Create(ctx context.Context, req CreateHealthRecordRequest) (*models.HealthRecord, error) {
	if req.CowID == "" || req.UserID == "" || req.RecordType == "" {
		return nil, appErrors.MissingFields("cow_id", "user_id", "record_type")
	}
	recordType := models.HealthRecordType(req.RecordType)
	if !recordType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown record_type: %s", req.RecordType))
	}

	cow, err := s.cows.FindByID(ctx, req.CowID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cow not found")
		}
		return nil, err
	}

	recordDate := s.now().UTC()
	if req.RecordDate != nil {
		recordDate = req.RecordDate.UTC()
	}
	record := models.HealthRecord{
		CowID:        req.CowID,
		UserID:       req.UserID,
		RecordType:   recordType,
		Diagnosis:    req.Diagnosis,
		Treatment:    req.Treatment,
		Medications:  req.Medications,
		Veterinarian: req.Veterinarian,
		Cost:         req.Cost,
		Notes:        req.Notes,
		FollowUpDate: req.FollowUpDate,
		RecordDate:   recordDate,
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}

	if recordType.MarksSick() {
		if !models.ValidTransition(cow.Status, models.CowStatusSick) {
			s.logger.Warn("unexpected status transition on health record",
				zap.String("cow_id", cow.ID),
				zap.String("record_type", string(recordType)),
				zap.String("from", string(cow.Status)))
		}
		if err := s.cows.UpdateStatus(ctx, cow.ID, models.CowStatusSick); err != nil {
			return nil, fmt.Errorf("mark cow sick: %w", err)
		}
	}

	s.logger.Info("health record created",
		zap.String("record_id", record.ID),
		zap.String("cow_id", record.CowID),
		zap.String("record_type", string(record.RecordType)))
	return &record, nil
}

// Update overwrites the provided fields of a health record.
func (s *HealthService) Update(ctx context.Context, id string, req UpdateHealthRecordRequest) (*models.HealthRecord, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RecordType != nil {
		recordType := models.HealthRecordType(*req.RecordType)
		if !recordType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown record_type: %s", *req.RecordType))
		}
		record.RecordType = recordType
	}
	if req.Diagnosis != nil {
		record.Diagnosis = req.Diagnosis
	}
	if req.Treatment != nil {
		record.Treatment = req.Treatment
	}
	if req.Medications != nil {
		record.Medications = req.Medications
	}
	if req.Veterinarian != nil {
		record.Veterinarian = req.Veterinarian
	}
	if req.Cost != nil {
		record.Cost = req.Cost
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}
	if req.FollowUpDate != nil {
		record.FollowUpDate = req.FollowUpDate
		record.FollowUpNotified = false
	}
	if req.RecordDate != nil {
		record.RecordDate = req.RecordDate.UTC()
	}

	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "health record not found")
		}
		return nil, err
	}
	return record, nil
}

// Delete removes a health record.
func (s *HealthService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "health record not found")
		}
		return err
	}
	return nil
}
