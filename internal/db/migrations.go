package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS comments (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		author_name  TEXT    NOT NULL DEFAULT '',
		comment_text TEXT    NOT NULL,
		timestamp    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_timestamp ON comments (timestamp DESC)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
