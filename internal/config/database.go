package config

import (
	"megheza-backend/internal/infrastructure/database"
)

// DBConfig maps the database section onto the pool configuration.
func (c *Config) DBConfig() *database.DBConfig {
	return &database.DBConfig{
		URL:               c.Database.URL,
		MaxConns:          int32(c.Database.MaxConns),
		MinConns:          int32(c.Database.MinConns),
		MaxConnLifetime:   c.Database.MaxConnLifetime,
		MaxConnIdleTime:   c.Database.MaxConnIdleTime,
		HealthCheckPeriod: c.Database.HealthCheckPeriod,
		MaxRetries:        c.Database.MaxRetries,
		RetryDelay:        c.Database.RetryDelay,
		ConnectTimeout:    c.Database.ConnectTimeout,
	}
}
