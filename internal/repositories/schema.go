package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/movieshelf/movieshelf/internal/logger"
)

// Schema statements are idempotent so Initialize is safe to run on
// every startup. Foreign keys must be enabled per connection via the
// DSN pragma; the cascade below relies on it.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS movies (
		movie_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
		title TEXT NOT NULL COLLATE NOCASE,
		year INTEGER NOT NULL,
		rating REAL NOT NULL,
		poster_url TEXT,
		note TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (user_id, title)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_user_id ON movies (user_id)`,
}

// Initialize creates the users and movies tables if they do not exist.
func Initialize(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		_, err := db.ExecContext(ctx, stmt)

		logger.Log.Infow(
			"query", strings.Join(strings.Fields(stmt), " "),
			"error", err,
		)

		if err != nil {
			return err
		}
	}
	return nil
}
