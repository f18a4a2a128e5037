package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/models"
	"github.com/farmtrack/farmtrack-api/pkg/config"
	appErrors "github.com/farmtrack/farmtrack-api/pkg/errors"
	"github.com/farmtrack/farmtrack-api/pkg/jobs"
)

type notificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	ActiveSubscriptions(ctx context.Context, userID string) ([]models.PushSubscription, error)
}

// NotificationPublisher fans stored notifications out on a channel.
type NotificationPublisher interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}

const jobTypeHeatAlert = "heat_alert"

// NotificationService stores notifications and fans them out on the
// redis channel. Heat alerts arrive through the in-memory job queue so
// detection requests never wait on delivery.
type NotificationService struct {
	repo      notificationRepository
	publisher NotificationPublisher
	channel   string
	queue     *jobs.Queue
	logger    *zap.Logger
}

// NewNotificationService constructs the notification service with its
// background delivery queue.
func NewNotificationService(repo notificationRepository, publisher NotificationPublisher, cfg config.AlertsConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{
		repo:      repo,
		publisher: publisher,
		channel:   cfg.NotifyChannel,
		logger:    logger,
	}
	s.queue = jobs.NewQueue("notifications", s.processJob, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		Logger:     logger,
	})
	return s
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the delivery workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// SendNotificationRequest is the POST payload.
type SendNotificationRequest struct {
	UserID  string          `json:"user_id"`
	Title   string          `json:"title"`
	Message string          `json:"message"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
}

// SendResult reports what a send stored and reached.
type SendResult struct {
	Notification models.Notification `json:"notification"`
	Sent         int                 `json:"sent"`
}

// Send stores a notification and publishes it when the user has active
// subscriptions. Zero subscriptions is a success with sent=0.
func (s *NotificationService) Send(ctx context.Context, req SendNotificationRequest) (*SendResult, error) {
	if req.UserID == "" || req.Title == "" || req.Message == "" {
		return nil, appErrors.MissingFields("user_id", "title", "message")
	}
	notifType := models.NotificationType(req.Type)
	if notifType == "" {
		notifType = models.NotificationGeneral
	}

	notification := models.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    notifType,
		Data:    req.Data,
	}
	if err := s.repo.Create(ctx, &notification); err != nil {
		return nil, err
	}

	subs, err := s.repo.ActiveSubscriptions(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(subs) > 0 {
		if err := s.publish(ctx, notification); err != nil {
			s.logger.Warn("notification publish failed",
				zap.String("notification_id", notification.ID), zap.Error(err))
		}
	}
	return &SendResult{Notification: notification, Sent: len(subs)}, nil
}

// ListForUser returns recent notifications for a user.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	if userID == "" {
		return nil, appErrors.MissingFields("user_id")
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

type heatAlertJob struct {
	Alert   models.HeatAlert
	CowName string
}

// EnqueueHeatAlert queues an alert for asynchronous delivery.
func (s *NotificationService) EnqueueHeatAlert(alert models.HeatAlert, cowName string) error {
	return s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeHeatAlert,
		Payload: heatAlertJob{Alert: alert, CowName: cowName},
	})
}

func (s *NotificationService) processJob(ctx context.Context, job jobs.Job) error {
	switch job.Type {
	case jobTypeHeatAlert:
		payload, ok := job.Payload.(heatAlertJob)
		if !ok {
			s.logger.Error("unexpected job payload", zap.String("job_id", job.ID), zap.String("type", job.Type))
			return nil
		}
		return s.deliverHeatAlert(ctx, payload)
	default:
		s.logger.Warn("unknown job type", zap.String("job_id", job.ID), zap.String("type", job.Type))
		return nil
	}
}

func (s *NotificationService) deliverHeatAlert(ctx context.Context, payload heatAlertJob) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	data, err := json.Marshal(map[string]interface{}{
		"alert_id": payload.Alert.ID,
		"cow_id":   payload.Alert.CowID,
		"cow_name": payload.CowName,
		"severity": payload.Alert.Severity,
	})
	if err != nil {
		return fmt.Errorf("marshal heat alert data: %w", err)
	}

	_, err = s.Send(ctx, SendNotificationRequest{
		UserID:  payload.Alert.UserID,
		Title:   payload.Alert.Title,
		Message: payload.Alert.Message,
		Type:    string(models.NotificationHeatDetected),
		Data:    data,
	})
	return err
}

func (s *NotificationService) publish(ctx context.Context, n models.Notification) error {
	if s.publisher == nil || s.channel == "" {
		return nil
	}
	return s.publisher.Publish(ctx, s.channel, n)
}
