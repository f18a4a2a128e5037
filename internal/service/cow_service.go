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

type cowRepository interface {
	List(ctx context.Context, filter models.CowFilter) ([]models.Cow, int, error)
	FindByID(ctx context.Context, id string) (*models.Cow, error)
	ExistsByTag(ctx context.Context, userID, tagNumber, excludeID string) (bool, error)
	Create(ctx context.Context, cow *models.Cow) error
	Update(ctx context.Context, cow *models.Cow) error
	UpdateStatus(ctx context.Context, id string, status models.CowStatus) error
	Delete(ctx context.Context, id string) error
}

// CowService manages the herd registry.
type CowService struct {
	repo   cowRepository
	logger *zap.Logger
}

// NewCowService constructs the herd registry service.
func NewCowService(repo cowRepository, logger *zap.Logger) *CowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CowService{repo: repo, logger: logger}
}

// CreateCowRequest is the POST payload.
type CreateCowRequest struct {
	UserID    string     `json:"user_id"`
	TagNumber string     `json:"tag_number"`
	Name      *string    `json:"name"`
	Breed     *string    `json:"breed"`
	Weight    *float64   `json:"weight"`
	BirthDate *time.Time `json:"birth_date"`
	Status    string     `json:"status"`
}

// UpdateCowRequest is the PUT payload. Nil fields keep their stored
// value.
type UpdateCowRequest struct {
	TagNumber *string    `json:"tag_number"`
	Name      *string    `json:"name"`
	Breed     *string    `json:"breed"`
	Weight    *float64   `json:"weight"`
	BirthDate *time.Time `json:"birth_date"`
	Status    *string    `json:"status"`
}

// List returns cows matching the filter with the total count.
func (s *CowService) List(ctx context.Context, filter models.CowFilter) ([]models.Cow, int, error) {
	return s.repo.List(ctx, filter)
}

// Get returns a single cow.
func (s *CowService) Get(ctx context.Context, id string) (*models.Cow, error) {
	cow, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cow not found")
		}
		return nil, err
	}
	return cow, nil
}

// Create registers a cow. Tag numbers are unique per owner.
func (s *CowService) Create(ctx context.Context, req CreateCowRequest) (*models.Cow, error) {
	if req.UserID == "" || req.TagNumber == "" {
		return nil, appErrors.MissingFields("user_id", "tag_number")
	}
	status := models.CowStatus(req.Status)
	if req.Status == "" {
		status = models.CowStatusHealthy
	}
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status: %s", req.Status))
	}

	exists, err := s.repo.ExistsByTag(ctx, req.UserID, req.TagNumber, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("tag number %s already registered", req.TagNumber))
	}

	cow := models.Cow{
		UserID:    req.UserID,
		TagNumber: req.TagNumber,
		Name:      req.Name,
		Breed:     req.Breed,
		Weight:    req.Weight,
		BirthDate: req.BirthDate,
		Status:    status,
	}
	if err := s.repo.Create(ctx, &cow); err != nil {
		return nil, err
	}

	s.logger.Info("cow registered", zap.String("cow_id", cow.ID), zap.String("tag_number", cow.TagNumber))
	return &cow, nil
}

// Update overwrites the provided fields of a cow. Manual status edits go
// through the same transition table as the automated paths.
func (s *CowService) Update(ctx context.Context, id string, req UpdateCowRequest) (*models.Cow, error) {
	cow, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TagNumber != nil && *req.TagNumber != cow.TagNumber {
		exists, err := s.repo.ExistsByTag(ctx, cow.UserID, *req.TagNumber, cow.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("tag number %s already registered", *req.TagNumber))
		}
		cow.TagNumber = *req.TagNumber
	}
	if req.Name != nil {
		cow.Name = req.Name
	}
	if req.Breed != nil {
		cow.Breed = req.Breed
	}
	if req.Weight != nil {
		cow.Weight = req.Weight
	}
	if req.BirthDate != nil {
		cow.BirthDate = req.BirthDate
	}
	if req.Status != nil {
		status := models.CowStatus(*req.Status)
		if !status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status: %s", *req.Status))
		}
		if !models.ValidTransition(cow.Status, status) {
			s.logger.Warn("unexpected status transition on cow update",
				zap.String("cow_id", cow.ID),
				zap.String("from", string(cow.Status)),
				zap.String("to", string(status)))
		}
		cow.Status = status
	}

	if err := s.repo.Update(ctx, cow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cow not found")
		}
		return nil, err
	}
	return cow, nil
}

// Delete removes a cow from the registry.
func (s *CowService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "cow not found")
		}
		return err
	}
	return nil
}
