// cmd/worker/main.go
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"megheza-backend/pkg/container"
	"megheza-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}
	defer c.Cleanup()

	cfg := loadConfig(c.Config)

	if err := startServices(c, cfg); err != nil {
		log.Fatal().Err(err).Msg("[Startup] Health check failed")
	}

	handlers := initializeHandlers(c, cfg)
	srv := setupAsynqServer(cfg, handlers)
	scheduler := setupScheduler(cfg)

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("[Shutdown] Gracefully stopping...", nil)
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("[Shutdown] ✓ Stopped", nil)
}
