// Package storage persists scan runs and their results in SQLite.
package storage

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

const schema = `
CREATE TABLE IF NOT EXISTS scan_runs (
	id             TEXT PRIMARY KEY,
	query          TEXT NOT NULL,
	started_at     TIMESTAMP NOT NULL,
	duration_ms    INTEGER NOT NULL,
	total_products INTEGER NOT NULL,
	high_risk      INTEGER NOT NULL,
	medium_risk    INTEGER NOT NULL,
	low_risk       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS scan_results (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL REFERENCES scan_runs(id),
	asin          TEXT NOT NULL,
	title         TEXT NOT NULL,
	url           TEXT NOT NULL,
	price         TEXT,
	seller        TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	category      TEXT NOT NULL,
	confidence    REAL NOT NULL,
	risk_score    INTEGER NOT NULL,
	risk_level    TEXT NOT NULL,
	price_anomaly TEXT NOT NULL DEFAULT '',
	analyzed_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scan_results_run_id ON scan_results(run_id);
CREATE INDEX IF NOT EXISTS idx_scan_results_risk_level ON scan_results(risk_level);
`

// Open opens (creating if needed) the SQLite database at path and
// applies the schema.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("storage: opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: applying schema: %w", err)
	}
	return db, nil
}
