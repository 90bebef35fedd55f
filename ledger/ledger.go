// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/danielhkuo/unielect/auth"
	"github.com/danielhkuo/unielect/identity"
	"github.com/danielhkuo/unielect/models"
)

var (
	ErrUnknownCandidate = errors.New("candidate is not registered")
	ErrAlreadyVoted     = errors.New("identity has already voted")
)

// Journal persists the append-only entry sequence. Append must succeed
// before a commit becomes visible; Replay rebuilds state at boot.
type Journal interface {
	Append(entry models.LedgerEntry) error
	Replay() ([]models.LedgerEntry, error)
}

// nopJournal keeps the ledger purely in memory.
type nopJournal struct{}

func (nopJournal) Append(models.LedgerEntry) error       { return nil }
func (nopJournal) Replay() ([]models.LedgerEntry, error) { return nil, nil }

// NopJournal returns a Journal that persists nothing. Used by tests
// and ephemeral dev runs.
func NopJournal() Journal { return nopJournal{} }

// Ledger is the vote-commitment and tally engine. One global mutex
// serializes the whole commit path: the has-voted check-and-set, the
// counter increment, and the log append are one critical section, so
// the sequence numbers stay gap-free across accepted and rejected
// attempts and no partial commit is ever observable. Vote throughput
// is not latency-critical at single-election scale.
type Ledger struct {
	store   identity.Store
	journal Journal
	logSalt string

	mu      sync.Mutex
	entries []models.LedgerEntry
	counts  map[string]uint64
	seq     uint64
}

// New builds a ledger over the identity store, replaying any persisted
// entries so tallies are a pure projection of the log.
func New(store identity.Store, journal Journal, logSalt string) (*Ledger, error) {
	if journal == nil {
		journal = NopJournal()
	}

	replayed, err := journal.Replay()
	if err != nil {
		return nil, fmt.Errorf("failed to replay ledger journal: %w", err)
	}

	l := &Ledger{
		store:   store,
		journal: journal,
		logSalt: logSalt,
		counts:  make(map[string]uint64),
	}
	for _, e := range replayed {
		if e.SequenceNumber != l.seq+1 {
			return nil, fmt.Errorf("journal gap: entry %d follows %d", e.SequenceNumber, l.seq)
		}
		l.entries = append(l.entries, e)
		l.seq = e.SequenceNumber
		if e.Outcome == models.OutcomeAccepted {
			l.counts[e.CandidateID]++
		}
	}
	return l, nil
}

// CastVote commits one vote for an authenticated identity. The ledger
// never re-runs authentication; callers hand it the proof produced by
// a completed session. Preconditions in order, first failure wins:
// the candidate must be registered, and the identity must not have
// voted. Failures still append a Rejected entry so the audit trail
// reflects every attempt.
func (l *Ledger) CastVote(proof models.AuthenticatedIdentity, candidateID string) (models.LedgerEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.store.GetCandidate(candidateID); err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			entry, aerr := l.appendLocked(proof.ID, candidateID, models.OutcomeRejected, models.ReasonUnknownCandidate)
			if aerr != nil {
				return models.LedgerEntry{}, aerr
			}
			return entry, ErrUnknownCandidate
		}
		return models.LedgerEntry{}, err
	}

	voted, err := l.store.HasVoted(proof.ID)
	if err != nil {
		return models.LedgerEntry{}, err
	}
	if voted {
		entry, aerr := l.appendLocked(proof.ID, candidateID, models.OutcomeRejected, models.ReasonAlreadyVoted)
		if aerr != nil {
			return models.LedgerEntry{}, aerr
		}
		slog.Warn("duplicate vote attempt",
			"voter", auth.HashID(proof.ID, l.logSalt),
		)
		return entry, ErrAlreadyVoted
	}

	// Commit: flag, counter, and entry move together or not at all.
	if err := l.store.SetVoted(proof.ID, true); err != nil {
		return models.LedgerEntry{}, err
	}
	entry, err := l.appendLocked(proof.ID, candidateID, models.OutcomeAccepted, "")
	if err != nil {
		// Unwind the flag; the attempt surfaces as an error, not a vote.
		if rerr := l.store.SetVoted(proof.ID, false); rerr != nil {
			slog.Error("failed to unwind has-voted flag", "error", rerr,
				"voter", auth.HashID(proof.ID, l.logSalt))
		}
		return models.LedgerEntry{}, err
	}
	l.counts[candidateID]++

	slog.Info("vote accepted",
		"voter", auth.HashID(proof.ID, l.logSalt),
		"candidate", auth.HashID(candidateID, l.logSalt),
		"sequence", entry.SequenceNumber,
	)
	return entry, nil
}

// Tally returns the per-candidate accepted counts, sorted by count
// descending with ascending candidate ID as the tie-break. The order
// is total and deterministic, so repeated calls over the same log are
// reproducible.
func (l *Ledger) Tally() []models.TallyRow {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows := make([]models.TallyRow, 0, len(l.counts))
	for id, n := range l.counts {
		rows = append(rows, models.TallyRow{CandidateID: id, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].CandidateID < rows[j].CandidateID
	})
	return rows
}

// Log returns up to limit entries, newest first. limit <= 0 returns
// everything. Callers page by calling again; the ledger holds no
// per-caller cursor.
func (l *Ledger) Log(limit int) []models.LedgerEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := len(l.entries)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]models.LedgerEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.entries[i])
	}
	return out
}

// LatestSequence returns the sequence number of the newest entry, or
// zero for an empty log. Approvals pin to this.
func (l *Ledger) LatestSequence() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// appendLocked journals and records the next entry. The sequence
// number is consumed only if the journal accepts the entry, keeping
// the persisted and in-memory sequences gap-free. Caller must hold mu.
func (l *Ledger) appendLocked(voterID, candidateID, outcome, reason string) (models.LedgerEntry, error) {
	entry := models.LedgerEntry{
		SequenceNumber: l.seq + 1,
		Timestamp:      time.Now().UTC(),
		VoterID:        voterID,
		CandidateID:    candidateID,
		Outcome:        outcome,
		Reason:         reason,
	}
	if err := l.journal.Append(entry); err != nil {
		return models.LedgerEntry{}, fmt.Errorf("failed to journal ledger entry: %w", err)
	}
	l.seq = entry.SequenceNumber
	l.entries = append(l.entries, entry)
	return entry, nil
}
