package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
)

const reminderBatchSize = 100

type reminderBreedingRepository interface {
	DueReminders(ctx context.Context, now time.Time, limit int) ([]models.BreedingEvent, error)
	MarkReminderSent(ctx context.Context, id string) error
}

type reminderHealthRepository interface {
	DueFollowUps(ctx context.Context, now time.Time, limit int) ([]models.HealthRecord, error)
	MarkFollowUpNotified(ctx context.Context, id string) error
}

type reminderSender interface {
	Send(ctx context.Context, req SendNotificationRequest) (*SendResult, error)
}

// ReminderService turns due breeding reminders and health follow-ups
// into notifications. It runs from the cron scheduler.
type ReminderService struct {
	breeding reminderBreedingRepository
	health   reminderHealthRepository
	cows     heatCowRepository
	sender   reminderSender
	logger   *zap.Logger
	now      func() time.Time
}

// NewReminderService constructs the reminder scanner.
func NewReminderService(breeding reminderBreedingRepository, health reminderHealthRepository, cows heatCowRepository, sender reminderSender, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		breeding: breeding,
		health:   health,
		cows:     cows,
		sender:   sender,
		logger:   logger,
		now:      time.Now,
	}
}

// RunOnce performs a single scan. Individual failures are logged and
// skipped so one bad row never blocks the rest of the batch.
func (s *ReminderService) RunOnce(ctx context.Context) {
	now := s.now().UTC()
	s.scanBreeding(ctx, now)
	s.scanHealth(ctx, now)
}

func (s *ReminderService) scanBreeding(ctx context.Context, now time.Time) {
	events, err := s.breeding.DueReminders(ctx, now, reminderBatchSize)
	if err != nil {
		s.logger.Error("breeding reminder scan failed", zap.Error(err))
		return
	}
	for _, event := range events {
		data, _ := json.Marshal(map[string]string{
			"breeding_event_id": event.ID,
			"cow_id":            event.CowID,
			"event_type":        string(event.EventType),
		})
		_, err := s.sender.Send(ctx, SendNotificationRequest{
			UserID:  event.UserID,
			Title:   fmt.Sprintf("Reminder: %s", event.Title),
			Message: fmt.Sprintf("%s for %s is scheduled on %s", event.Title, s.cowName(ctx, event.CowID), event.EventDate.Format("2006-01-02")),
			Type:    string(models.NotificationReminder),
			Data:    data,
		})
		if err != nil {
			s.logger.Warn("breeding reminder send failed", zap.String("event_id", event.ID), zap.Error(err))
			continue
		}
		if err := s.breeding.MarkReminderSent(ctx, event.ID); err != nil {
			s.logger.Warn("mark breeding reminder sent failed", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
	if len(events) > 0 {
		s.logger.Info("breeding reminders processed", zap.Int("count", len(events)))
	}
}

func (s *ReminderService) scanHealth(ctx context.Context, now time.Time) {
	records, err := s.health.DueFollowUps(ctx, now, reminderBatchSize)
	if err != nil {
		s.logger.Error("health follow-up scan failed", zap.Error(err))
		return
	}
	for _, record := range records {
		data, _ := json.Marshal(map[string]string{
			"health_record_id": record.ID,
			"cow_id":           record.CowID,
			"record_type":      string(record.RecordType),
		})
		_, err := s.sender.Send(ctx, SendNotificationRequest{
			UserID:  record.UserID,
			Title:   fmt.Sprintf("Follow-up due: %s", s.cowName(ctx, record.CowID)),
			Message: fmt.Sprintf("A %s follow-up for %s was due on %s", record.RecordType, s.cowName(ctx, record.CowID), record.FollowUpDate.Format("2006-01-02")),
			Type:    string(models.NotificationReminder),
			Data:    data,
		})
		if err != nil {
			s.logger.Warn("health follow-up send failed", zap.String("record_id", record.ID), zap.Error(err))
			continue
		}
		if err := s.health.MarkFollowUpNotified(ctx, record.ID); err != nil {
			s.logger.Warn("mark health follow-up notified failed", zap.String("record_id", record.ID), zap.Error(err))
		}
	}
	if len(records) > 0 {
		s.logger.Info("health follow-ups processed", zap.Int("count", len(records)))
	}
}

func (s *ReminderService) cowName(ctx context.Context, cowID string) string {
	cow, err := s.cows.FindByID(ctx, cowID)
	if err != nil {
		return "Cow"
	}
	return cow.DisplayName()
}
