package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
)

type mockDueBreedingRepo struct {
	due    []models.BreedingEvent
	marked []string
}

func (m *mockDueBreedingRepo) DueReminders(ctx context.Context, now time.Time, limit int) ([]models.BreedingEvent, error) {
	return m.due, nil
}

func (m *mockDueBreedingRepo) MarkReminderSent(ctx context.Context, id string) error {
	m.marked = append(m.marked, id)
	return nil
}

type mockDueHealthRepo struct {
	due    []models.HealthRecord
	marked []string
}

func (m *mockDueHealthRepo) DueFollowUps(ctx context.Context, now time.Time, limit int) ([]models.HealthRecord, error) {
	return m.due, nil
}

func (m *mockDueHealthRepo) MarkFollowUpNotified(ctx context.Context, id string) error {
	m.marked = append(m.marked, id)
	return nil
}

type recordingSender struct {
	requests []SendNotificationRequest
}

func (r *recordingSender) Send(ctx context.Context, req SendNotificationRequest) (*SendResult, error) {
	r.requests = append(r.requests, req)
	return &SendResult{Sent: 1}, nil
}

func TestReminderServiceRunOnce(t *testing.T) {
	followUp := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	breeding := &mockDueBreedingRepo{due: []models.BreedingEvent{
		{ID: "event-1", CowID: "cow-1", UserID: "user-1", EventType: models.BreedingEventPregnancyCheck, Title: "Pregnancy check", EventDate: followUp},
	}}
	health := &mockDueHealthRepo{due: []models.HealthRecord{
		{ID: "record-1", CowID: "cow-1", UserID: "user-1", RecordType: models.HealthRecordTreatment, FollowUpDate: &followUp},
	}}
	name := "Bella"
	cows := &mockCowFinder{cows: map[string]*models.Cow{
		"cow-1": {ID: "cow-1", TagNumber: "T-1", Name: &name},
	}}
	sender := &recordingSender{}
	svc := NewReminderService(breeding, health, cows, sender, zap.NewNop())

	svc.RunOnce(context.Background())

	assert.Len(t, sender.requests, 2)
	assert.Equal(t, []string{"event-1"}, breeding.marked)
	assert.Equal(t, []string{"record-1"}, health.marked)
	assert.Contains(t, sender.requests[0].Title, "Pregnancy check")
	assert.Contains(t, sender.requests[1].Title, "Bella")
	for _, req := range sender.requests {
		assert.Equal(t, string(models.NotificationReminder), req.Type)
	}
}

func TestReminderServiceRunOnceNothingDue(t *testing.T) {
	sender := &recordingSender{}
	svc := NewReminderService(&mockDueBreedingRepo{}, &mockDueHealthRepo{}, &mockCowFinder{}, sender, zap.NewNop())

	svc.RunOnce(context.Background())
	assert.Empty(t, sender.requests)
}
