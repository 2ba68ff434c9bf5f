//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"megheza-backend/internal/infrastructure/database"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance with the schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *database.PostgresDB
}

// NewPostgresContainer starts PostgreSQL, connects a pool and ensures the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("megheza"),
		tcpostgres.WithUsername("megheza"),
		tcpostgres.WithPassword("megheza"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db := database.NewPostgresDB(&database.DBConfig{URL: dsn, MaxConns: 10, MaxRetries: 3})
	if err := db.Connect(ctx); err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		_ = container.Terminate(context.Background())
	})

	return &PostgresContainer{Container: container, DSN: dsn, DB: db}
}

// Truncate empties the application table between tests.
func (p *PostgresContainer) Truncate(t *testing.T) {
	t.Helper()
	if _, err := p.DB.Pool.Exec(context.Background(), `TRUNCATE journalist_applications`); err != nil {
		t.Fatalf("failed to truncate: %v", err)
	}
}
