package database

import (
	"context"
	_ "embed"
	"fmt"

	"megheza-backend/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the application table and its indexes when missing.
// Every statement is idempotent.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info("[DATABASE] Schema ensured", nil)
	return nil
}
