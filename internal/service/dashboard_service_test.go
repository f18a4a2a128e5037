package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
)

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if s.store == nil {
		return appErrors.ErrCacheMiss
	}
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, _ string) error {
	return nil
}

type mockStatusCounter struct {
	counts []models.HerdStatusCount
	calls  int
}

func (m *mockStatusCounter) StatusCounts(ctx context.Context, userID string) ([]models.HerdStatusCount, error) {
	m.calls++
	return m.counts, nil
}

type mockMilkAggregates struct {
	totals []models.MilkDailyTotal
	today  float64
	from   time.Time
	to     time.Time
}

func (m *mockMilkAggregates) MilkDailyTotals(ctx context.Context, userID string, from, to time.Time) ([]models.MilkDailyTotal, error) {
	m.from = from
	m.to = to
	return m.totals, nil
}

func (m *mockMilkAggregates) MilkTotalSince(ctx context.Context, userID string, since time.Time) (float64, error) {
	return m.today, nil
}

type mockAttendanceAggregates struct {
	open      int
	summaries []models.StaffAttendanceSummary
}

func (m *mockAttendanceAggregates) CountOpen(ctx context.Context, userID string) (int, error) {
	return m.open, nil
}

func (m *mockAttendanceAggregates) StaffSummaries(ctx context.Context, userID string, from, to time.Time) ([]models.StaffAttendanceSummary, error) {
	return m.summaries, nil
}

type mockAlertCounter struct {
	active int
}

func (m *mockAlertCounter) CountActive(ctx context.Context, userID string) (int, error) {
	return m.active, nil
}

func TestDashboardServiceSummaryComposition(t *testing.T) {
	cows := &mockStatusCounter{counts: []models.HerdStatusCount{
		{Status: models.CowStatusHealthy, Count: 8},
		{Status: models.CowStatusInHeat, Count: 2},
	}}
	milk := &mockMilkAggregates{today: 125.5}
	attendance := &mockAttendanceAggregates{open: 3}
	alerts := &mockAlertCounter{active: 2}
	svc := NewDashboardService(cows, milk, attendance, alerts, nil, nil, time.Minute, zap.NewNop())

	summary, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, summary.HerdSize)
	assert.Equal(t, 125.5, summary.MilkTodayLiters)
	assert.Equal(t, 3, summary.OpenShifts)
	assert.Equal(t, 2, summary.ActiveAlerts)
}

func TestDashboardServiceSummaryServedFromCache(t *testing.T) {
	cows := &mockStatusCounter{counts: []models.HerdStatusCount{{Status: models.CowStatusHealthy, Count: 5}}}
	cacheSvc := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc := NewDashboardService(cows, &mockMilkAggregates{}, &mockAttendanceAggregates{}, &mockAlertCounter{}, cacheSvc, nil, time.Minute, zap.NewNop())

	_, err := svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cows.calls)

	_, err = svc.Summary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, cows.calls)
}

func TestDashboardServiceSummaryMissingUser(t *testing.T) {
	svc := NewDashboardService(&mockStatusCounter{}, &mockMilkAggregates{}, &mockAttendanceAggregates{}, &mockAlertCounter{}, nil, nil, time.Minute, zap.NewNop())

	_, err := svc.Summary(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestDashboardServiceMilkTrendDefaultsToTrailingWeek(t *testing.T) {
	milk := &mockMilkAggregates{totals: []models.MilkDailyTotal{{TotalLiters: 40}}}
	svc := NewDashboardService(&mockStatusCounter{}, milk, &mockAttendanceAggregates{}, &mockAlertCounter{}, nil, nil, time.Minute, zap.NewNop())
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	trend, err := svc.MilkTrend(context.Background(), "user-1", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, now, trend.To)
	assert.Equal(t, now.AddDate(0, 0, -7), trend.From)
	assert.Len(t, trend.Days, 1)
}

func TestDashboardServiceMilkTrendInvalidRange(t *testing.T) {
	svc := NewDashboardService(&mockStatusCounter{}, &mockMilkAggregates{}, &mockAttendanceAggregates{}, &mockAlertCounter{}, nil, nil, time.Minute, zap.NewNop())

	from := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err := svc.MilkTrend(context.Background(), "user-1", from, to)
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}
