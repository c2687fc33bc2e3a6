package main

import (
	"log"

	"qna-backend/internal/infrastructure/queue"
)

// asynqScheduler wraps queue.Scheduler for the worker lifecycle.
type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(cfg *workerConfig) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.RedisAddr, cfg.RetentionDays)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register: %v", err)
	}

	go func() {
		log.Println("[Scheduler] Starting...")
		if err := scheduler.Start(); err != nil {
			log.Fatalf("[Scheduler] Failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	log.Println("[Scheduler] Shutting down...")
	s.Scheduler.Shutdown()
	log.Println("[Scheduler] Stopped")
}
