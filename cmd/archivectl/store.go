package main

import (
	"context"
	"database/sql"
	"fmt"

	"archive-backend/internal/shared/config"
	"archive-backend/internal/shared/storage/db"
)

// openStore connects to the configured store and applies pending
// migrations. Migrations are idempotent, so every command can run them.
func openStore(ctx context.Context) (*sql.DB, config.Config, error) {
	cfg := config.Load()
	conn, err := db.Connect(ctx, cfg.DBPath, db.DefaultOptions())
	if err != nil {
		return nil, cfg, fmt.Errorf("open store at %s: %w", cfg.DBPath, err)
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		conn.Close()
		return nil, cfg, fmt.Errorf("run migrations: %w", err)
	}
	return conn, cfg, nil
}
