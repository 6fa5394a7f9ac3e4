// Package benchdb persists simbench run history to a local sqlite
// database, using the same CREATE TABLE IF NOT EXISTS + db.Exec idiom
// the teacher's createSchema uses.
package benchdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the run_history sqlite database.
type DB struct {
	conn *sql.DB
}

// Open creates path's parent directory if needed, opens the database in
// WAL mode, and ensures the run_history schema exists.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.createSchema(); err != nil {
		return nil, err
	}
	return db, nil
}

func (d *DB) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT UNIQUE,
		scenario_name TEXT,
		seed INTEGER,
		ticks INTEGER,
		wall_time_ms INTEGER,
		final_tick INTEGER,
		techs_unlocked INTEGER,
		final_state_hash TEXT,
		event_log_blob BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_run_history_scenario ON run_history(scenario_name);
	`
	if _, err := d.conn.Exec(schema); err != nil {
		return fmt.Errorf("creating run_history schema: %w", err)
	}
	return nil
}

// RunHistoryRow is one seed's outcome.
type RunHistoryRow struct {
	RunID          string
	ScenarioName   string
	Seed           uint64
	Ticks          uint64
	WallTimeMs     int64
	FinalTick      uint64
	TechsUnlocked  uint32
	FinalStateHash string
	EventLogBlob   []byte
}

// Insert records one run_history row.
func (d *DB) Insert(row RunHistoryRow) error {
	_, err := d.conn.Exec(
		`INSERT INTO run_history
			(run_id, scenario_name, seed, ticks, wall_time_ms, final_tick, techs_unlocked, final_state_hash, event_log_blob)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.RunID, row.ScenarioName, row.Seed, row.Ticks, row.WallTimeMs,
		row.FinalTick, row.TechsUnlocked, row.FinalStateHash, row.EventLogBlob,
	)
	if err != nil {
		return fmt.Errorf("inserting run_history row for seed %d: %w", row.Seed, err)
	}
	return nil
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.conn.Close()
}
