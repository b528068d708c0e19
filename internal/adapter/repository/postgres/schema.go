package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS calendar_states (
		name TEXT PRIMARY KEY,
		document JSONB NOT NULL,
		version BIGINT NOT NULL DEFAULT 1,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		guest_name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		host_owner_name TEXT NOT NULL DEFAULT '',
		venue TEXT NOT NULL DEFAULT '',
		occasion TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		partner_id TEXT NOT NULL DEFAULT '',
		total_booking NUMERIC(14, 2) NOT NULL DEFAULT 0,
		start_at TIMESTAMPTZ NOT NULL,
		end_at TIMESTAMPTZ NOT NULL,
		document JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings (status)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_window ON bookings (start_at, end_at)`,
	`CREATE TABLE IF NOT EXISTS occasions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables when they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
