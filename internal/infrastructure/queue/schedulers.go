package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"qna-backend/internal/shared"
	"qna-backend/pkg/logger"
)

// Scheduler registers the cron-driven maintenance tasks. The worker consumes
// them through the same mux as the on-demand tasks.
type Scheduler struct {
	scheduler     *asynq.Scheduler
	retentionDays int
}

func NewScheduler(redisAddr string, retentionDays int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler:     scheduler,
		retentionDays: retentionDays,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerNotificationCleanupJob()
}

// Runs nightly at 3 AM UTC, during low traffic. Read notifications older
// than the retention window are purged to keep the table small.
func (s *Scheduler) registerNotificationCleanupJob() error {
	payload, err := json.Marshal(shared.CleanupReadNotificationsPayload{
		OlderThanDays: s.retentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupReadNotification, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *",
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register notification cleanup job", err)
		return err
	}

	logger.Info("Registered notification cleanup: daily at 3 AM UTC", map[string]interface{}{
		"retention_days": s.retentionDays,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
