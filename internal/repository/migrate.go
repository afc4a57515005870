package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is shared by Postgres and SQLite. Calendar dates and clock times are
// stored as ISO TEXT so both engines compare them lexically.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		google_id TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		profile_picture TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS campaigns (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		CHECK (start_date <= end_date)
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		post_date TEXT NOT NULL,
		post_time TEXT,
		platform TEXT NOT NULL,
		post_type TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		campaign_id TEXT,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS posts_post_date ON posts (post_date)`,
	`CREATE TABLE IF NOT EXISTS approvals (
		id TEXT PRIMARY KEY,
		post_id TEXT NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
		status TEXT NOT NULL DEFAULT 'pending',
		requested_by TEXT NOT NULL DEFAULT '',
		approved_by TEXT,
		feedback TEXT,
		created_at TIMESTAMP NOT NULL,
		resolved_at TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS approvals_open_post ON approvals (post_id) WHERE status = 'pending'`,
	`CREATE INDEX IF NOT EXISTS approvals_post ON approvals (post_id)`,
	`CREATE TABLE IF NOT EXISTS settings (
		user_id TEXT PRIMARY KEY,
		week_starts_on INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS media_assets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL DEFAULT '',
		file_name TEXT NOT NULL,
		file_type TEXT NOT NULL,
		file_size BIGINT NOT NULL DEFAULT 0,
		file_url TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS post_media (
		post_id TEXT NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
		asset_id TEXT NOT NULL REFERENCES media_assets (id),
		display_order INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (post_id, asset_id)
	)`,
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i, err)
		}
	}
	return nil
}
