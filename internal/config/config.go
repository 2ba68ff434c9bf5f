package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// minJWTSecretLen is the shortest HS256 signing key accepted.
const minJWTSecretLen = 32

// Config is the whole application configuration, populated from environment variables.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Admin     AdminConfig
	Documents DocumentConfig
	MinIO     MinIOConfig
	Retention RetentionConfig
	SMTP      SMTPConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	URL               string
	MaxConns          int
	MinConns          int
	MaxRetries        int
	RetryDelay        time.Duration
	ConnectTimeout    time.Duration
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// AdminConfig holds the server side review gate.
type AdminConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	PasswordHash string // bcrypt
	Password     string // hashed at boot when PasswordHash is empty
}

type DocumentConfig struct {
	Backend string // inline, minio
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type RetentionConfig struct {
	Days int
	Cron string
}

type SMTPConfig struct {
	Host           string
	Port           int
	Username       string
	Password       string
	From           string
	NotifyOnVerify bool
}

// Enabled reports whether verification e-mails can be sent.
func (s SMTPConfig) Enabled() bool {
	return s.NotifyOnVerify && s.Host != ""
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Megheza API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			URL:               os.Getenv("DATABASE_URL"),
			MaxConns:          getEnvInt("DB_MAX_CONNS", 25),
			MinConns:          getEnvInt("DB_MIN_CONNS", 2),
			MaxRetries:        getEnvInt("DB_MAX_RETRIES", 5),
			RetryDelay:        getEnvDuration("DB_RETRY_DELAY", time.Second),
			ConnectTimeout:    getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
			MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", 5*time.Minute),
			MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", time.Minute),
			HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TokenTTL:     getEnvDuration("ADMIN_TOKEN_TTL", 2*time.Hour),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			Password:     getEnv("ADMIN_PASSWORD", ""),
		},
		Documents: DocumentConfig{
			Backend: strings.ToLower(getEnv("DOCUMENT_BACKEND", "inline")),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "megheza-documents"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Retention: RetentionConfig{
			Days: getEnvInt("RETENTION_DAYS", 30),
			Cron: getEnv("RETENTION_CRON", "0 3 * * *"),
		},
		SMTP: SMTPConfig{
			Host:           getEnv("SMTP_HOST", ""),
			Port:           getEnvInt("SMTP_PORT", 587),
			Username:       getEnv("SMTP_USERNAME", ""),
			Password:       getEnv("SMTP_PASSWORD", ""),
			From:           getEnv("SMTP_FROM", "noreply@megheza.org"),
			NotifyOnVerify: getEnvBool("NOTIFY_ON_VERIFY", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations the process cannot start with.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if c.Admin.PasswordHash == "" && c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
	}
	switch c.Documents.Backend {
	case "inline", "minio":
	default:
		return fmt.Errorf("unsupported DOCUMENT_BACKEND %q", c.Documents.Backend)
	}
	if c.Retention.Days < 1 {
		return fmt.Errorf("RETENTION_DAYS must be positive")
	}
	if c.Admin.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if len(c.Admin.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLen)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
