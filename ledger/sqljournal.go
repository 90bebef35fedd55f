// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/unielect/models"
)

// SQLJournal persists ledger entries in the ledger_entry table.
// Strictly insert-only; historical entries are never updated or
// deleted, and the primary key on sequence_number rejects any attempt
// to rewrite history.
type SQLJournal struct {
	db *sql.DB
}

func NewSQLJournal(db *sql.DB) *SQLJournal {
	return &SQLJournal{db: db}
}

func (j *SQLJournal) Append(entry models.LedgerEntry) error {
	_, err := j.db.Exec(`
		INSERT INTO ledger_entry (sequence_number, recorded_at, voter_id, candidate_id, outcome, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, entry.SequenceNumber, entry.Timestamp, entry.VoterID, entry.CandidateID, entry.Outcome, entry.Reason)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

func (j *SQLJournal) Replay() ([]models.LedgerEntry, error) {
	rows, err := j.db.Query(`
		SELECT sequence_number, recorded_at, voter_id, candidate_id, outcome, reason
		FROM ledger_entry
		ORDER BY sequence_number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []models.LedgerEntry{}
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(
			&e.SequenceNumber, &e.Timestamp, &e.VoterID,
			&e.CandidateID, &e.Outcome, &e.Reason,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
