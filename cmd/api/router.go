package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"megheza-backend/internal/shared/middleware"
	"megheza-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	if c.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupRegistrationRoutes(api, c)
		setupAdminRoutes(api, c)
	}

	return router
}

// ========================================
// REGISTRATION ROUTES
// ========================================
func setupRegistrationRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/register", c.ApplicationHandler.Register)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/admin/login", c.AdminHandler.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(c.AuthService))
	{
		admin.POST("/logout", c.AdminHandler.Logout)

		admin.GET("", c.ApplicationHandler.List)
		admin.GET("/export", c.ApplicationHandler.Export)
		admin.GET("/:id", c.ApplicationHandler.Get)
		admin.PATCH("/:id/verify", c.ApplicationHandler.Verify)
		admin.DELETE("/:id", c.ApplicationHandler.Delete)
		admin.GET("/:id/documents/:field", c.ApplicationHandler.Document)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   getEnv("APP_VERSION", "1.0.0"),
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.Ping(ctx); err != nil {
			dbStatus = "error"
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.Redis.HealthCheck(ctx); err != nil {
			redisStatus = "error"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			health["status"] = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else if redisStatus != "ok" {
			health["status"] = "degraded"
		}

		c.JSON(statusCode, health)
	}
}
