package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	"github.com/farmtrack/farmtrack-api/pkg/config"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
)

type mockNotificationRepo struct {
	mu     sync.Mutex
	stored []models.Notification
	subs   []models.PushSubscription
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = "notif-1"
	m.stored = append(m.stored, *n)
	return nil
}

func (m *mockNotificationRepo) storedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stored)
}

func (m *mockNotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stored, nil
}

func (m *mockNotificationRepo) ActiveSubscriptions(ctx context.Context, userID string) ([]models.PushSubscription, error) {
	return m.subs, nil
}

type mockPublisher struct {
	channel  string
	payloads []interface{}
}

func (m *mockPublisher) Publish(ctx context.Context, channel string, payload interface{}) error {
	m.channel = channel
	m.payloads = append(m.payloads, payload)
	return nil
}

func testAlertsConfig() config.AlertsConfig {
	return config.AlertsConfig{NotifyChannel: "farmtrack:notifications", WorkerConcurrency: 1, WorkerRetries: 1}
}

func TestNotificationServiceSendWithSubscriptions(t *testing.T) {
	repo := &mockNotificationRepo{subs: []models.PushSubscription{
		{ID: "sub-1", UserID: "user-1", Endpoint: "https://push.example/1", IsActive: true},
		{ID: "sub-2", UserID: "user-1", Endpoint: "https://push.example/2", IsActive: true},
	}}
	publisher := &mockPublisher{}
	svc := NewNotificationService(repo, publisher, testAlertsConfig(), zap.NewNop())

	result, err := svc.Send(context.Background(), SendNotificationRequest{
		UserID:  "user-1",
		Title:   "Heat Detected: Bella",
		Message: "Heat detected with high intensity.",
		Type:    "heat_detected",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Sent)
	assert.Len(t, repo.stored, 1)
	assert.Equal(t, "farmtrack:notifications", publisher.channel)
	require.Len(t, publisher.payloads, 1)
}

func TestNotificationServiceSendZeroSubscriptions(t *testing.T) {
	repo := &mockNotificationRepo{}
	publisher := &mockPublisher{}
	svc := NewNotificationService(repo, publisher, testAlertsConfig(), zap.NewNop())

	result, err := svc.Send(context.Background(), SendNotificationRequest{
		UserID:  "user-1",
		Title:   "Reminder",
		Message: "Vet visit tomorrow",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	assert.Len(t, repo.stored, 1)
	assert.Empty(t, publisher.payloads)
	assert.Equal(t, models.NotificationGeneral, result.Notification.Type)
}

func TestNotificationServiceSendMissingFields(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{}, &mockPublisher{}, testAlertsConfig(), zap.NewNop())

	_, err := svc.Send(context.Background(), SendNotificationRequest{UserID: "user-1"})
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestNotificationServiceEnqueueRequiresStart(t *testing.T) {
	svc := NewNotificationService(&mockNotificationRepo{}, &mockPublisher{}, testAlertsConfig(), zap.NewNop())

	err := svc.EnqueueHeatAlert(models.HeatAlert{ID: "alert-1"}, "Bella")
	require.Error(t, err)
}

func TestNotificationServiceQueueDeliversHeatAlert(t *testing.T) {
	repo := &mockNotificationRepo{subs: []models.PushSubscription{{ID: "sub-1", UserID: "user-1", IsActive: true}}}
	publisher := &mockPublisher{}
	svc := NewNotificationService(repo, publisher, testAlertsConfig(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	err := svc.EnqueueHeatAlert(models.HeatAlert{
		ID:      "alert-1",
		CowID:   "cow-1",
		UserID:  "user-1",
		Title:   "Heat Detected: Bella",
		Message: "Heat detected with medium intensity.",
	}, "Bella")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return repo.storedCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := repo.ListByUser(context.Background(), "user-1", 10)
	require.NoError(t, err)
	assert.Equal(t, models.NotificationHeatDetected, stored[0].Type)
}
