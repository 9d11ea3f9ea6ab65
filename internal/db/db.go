package db

import (
	"database/sql"
	"fmt"

	"streamcover/internal/logger"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
// path may be ":memory:" for tests.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS solve_history (
				id                   INTEGER PRIMARY KEY AUTOINCREMENT,
				timestamp            TEXT NOT NULL,
				request_hash         TEXT NOT NULL,
				game_count           INTEGER NOT NULL,
				status               TEXT NOT NULL,
				total_cost_cents     INTEGER,
				active_monthly_count INTEGER NOT NULL DEFAULT 0,
				active_yearly_count  INTEGER NOT NULL DEFAULT 0,
				games_with_no_offers INTEGER NOT NULL DEFAULT 0,
				duration_ms          INTEGER NOT NULL DEFAULT 0,
				request_json         TEXT NOT NULL DEFAULT '{}'
			);
			CREATE INDEX IF NOT EXISTS idx_solve_history_ts ON solve_history(timestamp);
			CREATE INDEX IF NOT EXISTS idx_solve_history_hash ON solve_history(request_hash);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1 (solve history)")
	}
	return nil
}

// SqlDB returns the underlying *sql.DB for packages that need direct access.
func (d *DB) SqlDB() *sql.DB {
	return d.sql
}
