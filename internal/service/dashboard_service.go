package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
)

type dashboardCowRepository interface {
	StatusCounts(ctx context.Context, userID string) ([]models.HerdStatusCount, error)
}

type dashboardMilkRepository interface {
	MilkDailyTotals(ctx context.Context, userID string, from, to time.Time) ([]models.MilkDailyTotal, error)
	MilkTotalSince(ctx context.Context, userID string, since time.Time) (float64, error)
}

type dashboardAttendanceRepository interface {
	CountOpen(ctx context.Context, userID string) (int, error)
	StaffSummaries(ctx context.Context, userID string, from, to time.Time) ([]models.StaffAttendanceSummary, error)
}

type dashboardAlertRepository interface {
	CountActive(ctx context.Context, userID string) (int, error)
}

// DashboardService composes read-only aggregates for the farm overview.
type DashboardService struct {
	cows       dashboardCowRepository
	milk       dashboardMilkRepository
	attendance dashboardAttendanceRepository
	alerts     dashboardAlertRepository
	cache      *CacheService
	metrics    *MetricsService
	cacheTTL   time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(
	cows dashboardCowRepository,
	milk dashboardMilkRepository,
	attendance dashboardAttendanceRepository,
	alerts dashboardAlertRepository,
	cache *CacheService,
	metrics *MetricsService,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		cows:       cows,
		milk:       milk,
		attendance: attendance,
		alerts:     alerts,
		cache:      cache,
		metrics:    metrics,
		cacheTTL:   cacheTTL,
		logger:     logger,
		now:        time.Now,
	}
}

// Summary returns the composed farm overview, cached per user.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*models.DashboardSummary, error) {
	if userID == "" {
		return nil, appErrors.MissingFields("user_id")
	}

	cacheKey := fmt.Sprintf("dashboard:summary:%s", userID)
	if s.cache != nil && s.cache.Enabled() {
		var cached models.DashboardSummary
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	counts, err := s.cows.StatusCounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	herdSize := 0
	for _, c := range counts {
		herdSize += c.Count
	}

	now := s.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	milkToday, err := s.milk.MilkTotalSince(ctx, userID, dayStart)
	if err != nil {
		return nil, err
	}

	openShifts, err := s.attendance.CountOpen(ctx, userID)
	if err != nil {
		return nil, err
	}

	activeAlerts, err := s.alerts.CountActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := models.DashboardSummary{
		UserID:          userID,
		HerdSize:        herdSize,
		HerdByStatus:    counts,
		MilkTodayLiters: milkToday,
		OpenShifts:      openShifts,
		ActiveAlerts:    activeAlerts,
		GeneratedAt:     now,
	}

	if s.cache != nil && s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return &summary, nil
}

// MilkTrend returns the per-day production series for the given range.
// A zero range defaults to the trailing 7 days.
func (s *DashboardService) MilkTrend(ctx context.Context, userID string, from, to time.Time) (*models.MilkTrend, error) {
	if userID == "" {
		return nil, appErrors.MissingFields("user_id")
	}
	now := s.now().UTC()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -7)
	}
	if from.After(to) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "from date is after to date")
	}

	days, err := s.milk.MilkDailyTotals(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return &models.MilkTrend{UserID: userID, From: from, To: to, Days: days}, nil
}

// StaffSummaries returns per-staff attendance totals for the range.
func (s *DashboardService) StaffSummaries(ctx context.Context, userID string, from, to time.Time) ([]models.StaffAttendanceSummary, error) {
	if userID == "" {
		return nil, appErrors.MissingFields("user_id")
	}
	now := s.now().UTC()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	return s.attendance.StaffSummaries(ctx, userID, from, to)
}

// SystemMetrics snapshots process-level counters.
func (s *DashboardService) SystemMetrics() models.SystemMetrics {
	return s.metrics.Snapshot()
}
