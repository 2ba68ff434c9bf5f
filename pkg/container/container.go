package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"megheza-backend/internal/config"
	"megheza-backend/internal/infrastructure/cache"
	"megheza-backend/internal/infrastructure/database"
	"megheza-backend/internal/infrastructure/queue"
	"megheza-backend/internal/infrastructure/storage"
	"megheza-backend/pkg/jwt"
	"megheza-backend/pkg/logger"

	// Application domain
	appHandler "megheza-backend/internal/domains/application/handler"
	appMetrics "megheza-backend/internal/domains/application/metrics"
	appRepo "megheza-backend/internal/domains/application/repository"
	appService "megheza-backend/internal/domains/application/service"

	// Admin domain
	adminHandler "megheza-backend/internal/domains/admin/handler"
	adminRepo "megheza-backend/internal/domains/admin/repository"
	adminService "megheza-backend/internal/domains/admin/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container owns every long lived dependency of the API and the worker.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *cache.RedisClient
	AsynqClient *asynq.Client
	Documents   storage.DocumentStore
	JWTManager  *jwt.Manager
	Registry    *prometheus.Registry

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	ApplicationRepo appRepo.Repository
	RevocationList  adminRepo.RevocationList

	// ========================================
	// SERVICE LAYER
	// ========================================
	Metrics            *appMetrics.Metrics
	ApplicationService appService.ServiceInterface
	AuthService        adminService.AuthService

	// ========================================
	// HANDLER LAYER
	// ========================================
	ApplicationHandler *appHandler.ApplicationHandler
	AdminHandler       *adminHandler.AdminHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// config, database, redis, queue client, document store, repositories, services, handlers.
func NewContainer() (*Container, error) {
	logger.Info("🔧 Initializing DI Container...", nil)

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Info("✅ Config loaded", map[string]interface{}{"environment": cfg.App.Environment})

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	db := database.NewPostgresDB(cfg.DBConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.EnsureSchema(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	// ========================================
	// STEP 3: INITIALIZE REDIS + QUEUE CLIENT
	// ========================================
	c.Redis = cache.NewRedisClient(cfg.Redis)
	if err := c.Redis.Connect(ctx); err != nil {
		// Registration keeps working; admin auth answers 503 until Redis is back.
		logger.Warn("⚠️  Redis connection failed (non-critical)", map[string]interface{}{"error": err.Error()})
	}
	c.AsynqClient = asynq.NewClient(queue.RedisOpt(cfg.Redis))

	// ========================================
	// STEP 4: DOCUMENTS, TOKENS, METRICS
	// ========================================
	c.Documents, err = storage.NewDocumentStore(ctx, cfg)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init document store: %w", err)
	}
	logger.Info("✅ Document store ready", map[string]interface{}{"backend": c.Documents.Name()})

	c.JWTManager = jwt.NewManager(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		database.NewPoolCollector(db),
	)
	c.Metrics = appMetrics.New(c.Registry)

	// ========================================
	// STEP 5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()

	if err := c.initServices(); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	c.initHandlers()

	logger.Info("🎉 DI Container initialized successfully", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	c.ApplicationRepo = appRepo.NewPostgresRepository(c.DB.Pool)
	c.RevocationList = adminRepo.NewRedisRevocationList(c.Redis.Client)
}

func (c *Container) initServices() error {
	c.ApplicationService = appService.NewApplicationService(
		c.ApplicationRepo,
		c.Documents,
		c.AsynqClient,
		c.Metrics,
		appService.Options{
			RetentionDays:  c.Config.Retention.Days,
			NotifyOnVerify: c.Config.SMTP.NotifyOnVerify,
		},
	)

	hash, err := adminService.ResolvePasswordHash(c.Config.Admin.PasswordHash, c.Config.Admin.Password)
	if err != nil {
		return err
	}
	c.AuthService = adminService.NewAuthService(hash, c.JWTManager, c.RevocationList)

	return nil
}

func (c *Container) initHandlers() {
	c.ApplicationHandler = appHandler.NewApplicationHandler(c.ApplicationService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AuthService)
}

// Cleanup releases resources on shutdown. Safe on a partially built container.
func (c *Container) Cleanup() {
	logger.Info("🧹 Cleaning up container resources...", nil)

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Error("Failed to close database", err)
		}
	}

	logger.Info("✅ Container cleanup completed", nil)
}
