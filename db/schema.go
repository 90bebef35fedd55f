// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Open connects using the driver matching the configured database
// type. Postgres for real deployments, sqlite for single-node ones.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	driver := "sqlite"
	if databaseType == "postgres" {
		driver = "postgres"
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", databaseType, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Voters
CREATE TABLE IF NOT EXISTS voter (
    university_id TEXT PRIMARY KEY,
    firstname TEXT NOT NULL,
    lastname TEXT NOT NULL,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    template_ref TEXT NOT NULL,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    university_id TEXT PRIMARY KEY,
    firstname TEXT NOT NULL,
    lastname TEXT NOT NULL,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    template_ref TEXT NOT NULL,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    about_yourself TEXT NOT NULL DEFAULT '',
    portrait_ref TEXT NOT NULL DEFAULT ''
);

-- Ledger entries: append-only, one row per vote attempt.
-- Never updated or deleted; corrections are new entries.
CREATE TABLE IF NOT EXISTS ledger_entry (
    sequence_number BIGINT PRIMARY KEY,
    recorded_at TIMESTAMP NOT NULL,
    voter_id TEXT NOT NULL,
    candidate_id TEXT NOT NULL,
    outcome TEXT NOT NULL CHECK (outcome IN ('accepted', 'rejected')),
    reason TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_ledger_entry_voter ON ledger_entry(voter_id);
CREATE INDEX IF NOT EXISTS idx_ledger_entry_candidate ON ledger_entry(candidate_id);
`
