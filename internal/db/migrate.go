package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS habits (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		cadence     TEXT NOT NULL
		            CHECK(cadence IN ('daily','weekly','monthly')),
		goal        INTEGER NOT NULL CHECK(goal >= 1),
		difficulty  TEXT NOT NULL
		            CHECK(difficulty IN ('easy','medium','hard')),
		unit        TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_habits_status ON habits(status)`,

	// One live ledger row per habit. Progress is bounded below in the schema;
	// the goal ceiling is enforced by the accounting engine since the goal
	// lives on the habit row.
	`CREATE TABLE IF NOT EXISTS progress_records (
		id           TEXT PRIMARY KEY,
		habit_id     TEXT NOT NULL UNIQUE REFERENCES habits(id) ON DELETE CASCADE,
		period_start TEXT NOT NULL,
		progress     INTEGER NOT NULL DEFAULT 0 CHECK(progress >= 0),
		completed    INTEGER NOT NULL DEFAULT 0,
		points       INTEGER NOT NULL DEFAULT 0,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS streaks (
		id            TEXT PRIMARY KEY,
		progress_id   TEXT NOT NULL REFERENCES progress_records(id) ON DELETE CASCADE,
		started_at    TEXT NOT NULL,
		last_extended TEXT NOT NULL,
		count         INTEGER NOT NULL DEFAULT 1 CHECK(count >= 1),
		active        INTEGER NOT NULL DEFAULT 1,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_streaks_progress ON streaks(progress_id)`,
	`CREATE INDEX IF NOT EXISTS idx_streaks_active ON streaks(active)`,

	`CREATE TABLE IF NOT EXISTS user_profile (
		id             TEXT PRIMARY KEY DEFAULT 'default',
		points         INTEGER NOT NULL DEFAULT 0 CHECK(points >= 0),
		protectors     INTEGER NOT NULL DEFAULT 0 CHECK(protectors >= 0),
		longest_streak INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	)`,

	// Seed default user profile
	`INSERT OR IGNORE INTO user_profile (id) VALUES ('default')`,
}
