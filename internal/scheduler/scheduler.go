package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/farmtrack/farmtrack-api/internal/service"
	"github.com/farmtrack/farmtrack-api/pkg/config"
)

// Scheduler runs the reminder scan on the configured cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	reminders *service.ReminderService
	cfg       config.RemindersConfig
	logger    *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.RemindersConfig, reminders *service.ReminderService, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(),
		reminders: reminders,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start registers the reminder scan and starts the cron loop. Disabled
// schedulers are a no-op.
func (s *Scheduler) Start() {
	if !s.cfg.Enabled {
		s.logger.Info("reminder scheduler disabled")
		return
	}
	s.logger.Info("starting reminder scheduler", zap.String("schedule", s.cfg.Schedule))

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.runReminderScan); err != nil {
		s.logger.Error("failed to schedule reminder scan", zap.Error(err))
		return
	}
	s.cron.Start()
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping reminder scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runReminderScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	s.reminders.RunOnce(ctx)
}
