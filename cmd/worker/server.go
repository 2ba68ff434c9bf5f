package main

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"megheza-backend/internal/domains/application/model"
	"megheza-backend/pkg/logger"
)

// asynqServer wraps asynq.Server with additional functionality
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates and configures the Asynq server
func setupAsynqServer(cfg *Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		cfg.RedisOpt,
		asynq.Config{
			Queues: map[string]int{
				model.QueueEmail:       6,
				model.QueueApplication: 3,
				"default":              1,
			},
			Concurrency: cfg.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).Msg("[Asynq] ❌ Task failed")
			}),
		},
	)

	go func() {
		logger.Info("[Worker] Starting...", nil)
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("[Worker] Failed")
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown waits for in-flight tasks (asynq's ShutdownTimeout, 8s by default)
func (s *asynqServer) Shutdown() {
	logger.Info("[Worker] Shutting down...", nil)
	s.Server.Shutdown()
	logger.Info("[Worker] ✓ Gracefully stopped", nil)
}
