package main

import (
	"github.com/rs/zerolog/log"

	"megheza-backend/internal/infrastructure/queue"
	"megheza-backend/pkg/logger"
)

// asynqScheduler wraps queue.Scheduler with additional functionality
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler creates the scheduler and registers the retention job
func setupScheduler(cfg *Config) *asynqScheduler {
	scheduler := queue.NewScheduler(cfg.RedisOpt, cfg.Retention)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatal().Err(err).Msg("[Scheduler] Failed to register")
	}

	go func() {
		logger.Info("[Scheduler] Starting...", nil)
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("[Scheduler] Failed")
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

// Shutdown gracefully shuts down the scheduler
func (s *asynqScheduler) Shutdown() {
	logger.Info("[Scheduler] Shutting down...", nil)
	s.Scheduler.Shutdown()
	logger.Info("[Scheduler] ✓ Stopped", nil)
}
