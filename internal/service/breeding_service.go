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

type breedingRepository interface {
	List(ctx context.Context, filter models.BreedingEventFilter) ([]models.BreedingEvent, int, error)
	FindByID(ctx context.Context, id string) (*models.BreedingEvent, error)
	Create(ctx context.Context, event *models.BreedingEvent) error
	Update(ctx context.Context, event *models.BreedingEvent) error
	Delete(ctx context.Context, id string) error
}

type breedingCowRepository interface {
	FindByID(ctx context.Context, id string) (*models.Cow, error)
	UpdateStatus(ctx context.Context, id string, status models.CowStatus) error
}

// BreedingService manages the breeding calendar.
type BreedingService struct {
	repo   breedingRepository
	cows   breedingCowRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewBreedingService constructs the breeding calendar service.
func NewBreedingService(repo breedingRepository, cows breedingCowRepository, logger *zap.Logger) *BreedingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BreedingService{repo: repo, cows: cows, logger: logger, now: time.Now}
}

// CreateBreedingEventRequest is the POST payload.
type CreateBreedingEventRequest struct {
	CowID        string     `json:"cow_id"`
	UserID       string     `json:"user_id"`
	EventType    string     `json:"event_type"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	EventDate    *time.Time `json:"event_date"`
	EndDate      *time.Time `json:"end_date"`
	ReminderDate *time.Time `json:"reminder_date"`
	Notes        *string    `json:"notes"`
	Status       string     `json:"status"`
}

// UpdateBreedingEventRequest is the PUT payload. Nil fields keep their
// stored value.
type UpdateBreedingEventRequest struct {
	EventType    *string    `json:"event_type"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	EventDate    *time.Time `json:"event_date"`
	EndDate      *time.Time `json:"end_date"`
	ReminderDate *time.Time `json:"reminder_date"`
	Notes        *string    `json:"notes"`
	Status       *string    `json:"status"`
}

// List returns calendar entries matching the filter.
func (s *BreedingService) List(ctx context.Context, filter models.BreedingEventFilter) ([]models.BreedingEvent, int, error) {
	return s.repo.List(ctx, filter)
}

// Get returns a single calendar entry.
func (s *BreedingService) Get(ctx context.Context, id string) (*models.BreedingEvent, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "breeding event not found")
		}
		return nil, err
	}
	return event, nil
}

// Create stores a calendar entry and applies the event type's cow
// status side-effect when it has one.
func (s *BreedingService) Create(ctx context.Context, req CreateBreedingEventRequest) (*models.BreedingEvent, error) {
	if req.CowID == "" || req.UserID == "" || req.EventType == "" || req.Title == "" || req.EventDate == nil {
		return nil, appErrors.MissingFields("cow_id", "user_id", "event_type", "title", "event_date")
	}
	eventType := models.BreedingEventType(req.EventType)
	if !eventType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown event_type: %s", req.EventType))
	}

	cow, err := s.cows.FindByID(ctx, req.CowID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cow not found")
		}
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "scheduled"
	}
	event := models.BreedingEvent{
		CowID:        req.CowID,
		UserID:       req.UserID,
		EventType:    eventType,
		Title:        req.Title,
		Description:  req.Description,
		EventDate:    req.EventDate.UTC(),
		EndDate:      req.EndDate,
		ReminderDate: req.ReminderDate,
		Notes:        req.Notes,
		Status:       status,
	}
	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, err
	}

	if newStatus, ok := eventType.StatusEffect(); ok {
		if !models.ValidTransition(cow.Status, newStatus) {
			s.logger.Warn("unexpected status transition on breeding event",
				zap.String("cow_id", cow.ID),
				zap.String("event_type", string(eventType)),
				zap.String("from", string(cow.Status)),
				zap.String("to", string(newStatus)))
		}
		if err := s.cows.UpdateStatus(ctx, cow.ID, newStatus); err != nil {
			return nil, fmt.Errorf("apply status effect: %w", err)
		}
	}

	s.logger.Info("breeding event created",
		zap.String("event_id", event.ID),
		zap.String("cow_id", event.CowID),
		zap.String("event_type", string(event.EventType)))
	return &event, nil
}

// Update overwrites the provided fields of a calendar entry.
func (s *BreedingService) Update(ctx context.Context, id string, req UpdateBreedingEventRequest) (*models.BreedingEvent, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EventType != nil {
		eventType := models.BreedingEventType(*req.EventType)
		if !eventType.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown event_type: %s", *req.EventType))
		}
		event.EventType = eventType
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.EventDate != nil {
		event.EventDate = req.EventDate.UTC()
	}
	if req.EndDate != nil {
		event.EndDate = req.EndDate
	}
	if req.ReminderDate != nil {
		event.ReminderDate = req.ReminderDate
	}
	if req.Notes != nil {
		event.Notes = req.Notes
	}
	if req.Status != nil {
		event.Status = *req.Status
	}

	if err := s.repo.Update(ctx, event); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "breeding event not found")
		}
		return nil, err
	}
	return event, nil
}

// Delete removes a calendar entry.
func (s *BreedingService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "breeding event not found")
		}
		return err
	}
	return nil
}
