// Package sqlite provides SQLite-based persistent storage for Vigor.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// User programs. baseline is fixed at creation, start_date immutable.
		`CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			baseline   REAL NOT NULL,
			start_date TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,

		// Task log: exactly one row per (user, task, calendar day).
		`CREATE TABLE IF NOT EXISTS task_log (
			user_id       TEXT NOT NULL,
			task_id       TEXT NOT NULL,
			day           TEXT NOT NULL,
			raw_progress  REAL NOT NULL DEFAULT 0,
			checked_items TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (user_id, task_id, day)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_task_log_user ON task_log(user_id)`,

		// Meal history: individual entries within a day's meal log.
		`CREATE TABLE IF NOT EXISTS meal_history (
			id        TEXT PRIMARY KEY,
			user_id   TEXT NOT NULL,
			task_id   TEXT NOT NULL,
			day       TEXT NOT NULL,
			score     REAL NOT NULL,
			note      TEXT NOT NULL DEFAULT '',
			logged_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_meal_user_day ON meal_history(user_id, day)`,

		// Streak cache: derived from task_log, rewritten on every update.
		`CREATE TABLE IF NOT EXISTS streaks (
			user_id       TEXT NOT NULL,
			task_id       TEXT NOT NULL,
			count         INTEGER NOT NULL DEFAULT 0,
			last_update   INTEGER,
			last_notified INTEGER,
			PRIMARY KEY (user_id, task_id)
		)`,

		// Unlocked achievements: append-only.
		`CREATE TABLE IF NOT EXISTS achievements (
			user_id     TEXT NOT NULL,
			id          TEXT NOT NULL,
			unlocked_at INTEGER NOT NULL,
			notified    BOOLEAN DEFAULT 0,
			PRIMARY KEY (user_id, id)
		)`,

		// Notification log.
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id    TEXT NOT NULL,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_user ON notifications(user_id, shown)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
