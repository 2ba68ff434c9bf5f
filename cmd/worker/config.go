package main

import (
	"github.com/hibiken/asynq"

	"megheza-backend/internal/config"
	"megheza-backend/internal/infrastructure/queue"
	"megheza-backend/pkg/logger"
)

// Config holds the worker specific view of the application config
type Config struct {
	RedisOpt    asynq.RedisClientOpt
	Concurrency int
	HealthAddr  string
	SMTP        config.SMTPConfig
	Retention   config.RetentionConfig
}

// loadConfig derives the worker configuration from the shared config
func loadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		RedisOpt:    queue.RedisOpt(appCfg.Redis),
		Concurrency: 5,
		HealthAddr:  ":9999",
		SMTP:        appCfg.SMTP,
		Retention:   appCfg.Retention,
	}

	logger.Info("[Config] Worker configuration loaded", map[string]interface{}{
		"redis":          cfg.RedisOpt.Addr,
		"smtp_enabled":   cfg.SMTP.Enabled(),
		"retention_days": cfg.Retention.Days,
		"retention_cron": cfg.Retention.Cron,
	})

	return cfg
}
