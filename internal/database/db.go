package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx pool against the given URL and verifies it with a
// ping before handing it out.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	return pool, nil
}

// Bootstrap executes the schema script at the given path. The script is
// idempotent (CREATE TABLE IF NOT EXISTS), so running it on every startup
// is safe.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool, scriptPath string) error {
	sqlBytes, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read SQL script %s: %w", scriptPath, err)
	}

	if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("failed to execute SQL script %s: %w", scriptPath, err)
	}
	return nil
}
