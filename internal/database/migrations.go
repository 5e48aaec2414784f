package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrations are idempotent schema statements executed at startup, in order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		date TEXT NOT NULL,
		location TEXT NOT NULL,
		organizer TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		capacity INT NOT NULL,
		waitlist_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		current_registrations INT NOT NULL DEFAULT 0,
		current_waitlist INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS registrations (
		event_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		status TEXT NOT NULL,
		position INT,
		registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (event_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS registrations_user_idx ON registrations (user_id)`,
}

// Migrate applies the schema migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
