package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"megheza-backend/pkg/container"
	"megheza-backend/pkg/logger"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	container *container.Container
}

// startServices performs health checks and starts the health endpoint
func startServices(c *container.Container, cfg *Config) error {
	logger.Info("🚀 Megheza Worker Starting...", nil)

	checker := &HealthChecker{container: c}
	if err := checker.checkAll(); err != nil {
		return err
	}

	go startHealthCheckServer(cfg.HealthAddr, checker)

	return nil
}

func (h *HealthChecker) checks() []struct {
	name string
	fn   func(context.Context) error
} {
	return []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Redis Connection", h.container.Redis.HealthCheck},
		{"PostgreSQL Connection", h.container.DB.Ping},
	}
}

// checkAll runs all health checks
func (h *HealthChecker) checkAll() error {
	for _, check := range h.checks() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()
		if err != nil {
			logger.Error("❌ "+check.name, err)
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		logger.Info("✓ "+check.name+": OK", nil)
	}
	return nil
}

// startHealthCheckServer serves /health (liveness) and /ready (dependencies reachable)
func startHealthCheckServer(addr string, checker *HealthChecker) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"UP","service":"megheza-worker"}`))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := checker.checkAll(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"NOT_READY"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"READY"}`))
	})

	logger.Info("[Health] Starting health check server", map[string]interface{}{"addr": addr})
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("[Health] Failed to start", err)
	}
}
