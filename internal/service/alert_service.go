package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
)

type alertRepository interface {
	List(ctx context.Context, filter models.HeatAlertFilter) ([]models.HeatAlert, int, error)
	MarkRead(ctx context.Context, id string) error
	Dismiss(ctx context.Context, id string) error
}

// AlertService exposes heat alerts to the dashboard.
type AlertService struct {
	repo   alertRepository
	logger *zap.Logger
}

// NewAlertService constructs the alert service.
func NewAlertService(repo alertRepository, logger *zap.Logger) *AlertService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlertService{repo: repo, logger: logger}
}

// List returns alerts matching the filter with the total count.
func (s *AlertService) List(ctx context.Context, filter models.HeatAlertFilter) ([]models.HeatAlert, int, error) {
	return s.repo.List(ctx, filter)
}

// MarkRead flips the read flag. Dismissal is tracked separately.
func (s *AlertService) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.MissingFields("id")
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "alert not found")
		}
		return err
	}
	return nil
}

// Dismiss flips the dismissed flag.
func (s *AlertService) Dismiss(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.MissingFields("id")
	}
	if err := s.repo.Dismiss(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "alert not found")
		}
		return err
	}
	return nil
}
