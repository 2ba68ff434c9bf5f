package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"megheza-backend/internal/config"
	"megheza-backend/internal/domains/application/model"
	"megheza-backend/pkg/logger"
)

// RedisOpt converts the Redis settings for asynq clients, servers and schedulers.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

type Scheduler struct {
	scheduler *asynq.Scheduler
	retention config.RetentionConfig
}

func NewScheduler(redisOpt asynq.RedisConnOpt, retention config.RetentionConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		retention: retention,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerRedactDocumentsJob()
}

// ================================================
// JOB: Redact Expired Press Cards (RETENTION_CRON, daily 3 AM by default)
// ================================================
func (s *Scheduler) registerRedactDocumentsJob() error {
	payload, err := json.Marshal(model.RedactDocumentsPayload{RetentionDays: s.retention.Days})
	if err != nil {
		return err
	}

	task := asynq.NewTask(model.TypeRedactDocuments, payload)

	_, err = s.scheduler.Register(
		s.retention.Cron,
		task,
		asynq.Queue(model.QueueApplication),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
		asynq.Unique(time.Hour),
	)

	if err != nil {
		logger.Error("Failed to register RedactDocuments job", err)
		return err
	}

	logger.Info("✓ Registered RedactDocuments", map[string]interface{}{
		"cron":           s.retention.Cron,
		"retention_days": s.retention.Days,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
