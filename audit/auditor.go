// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/danielhkuo/unielect/models"
)

var (
	ErrNoVotesCast    = errors.New("no votes cast")
	ErrStaleApproval  = errors.New("approval cutoff not past the last approved sequence")
	ErrFutureSequence = errors.New("sequence number beyond the ledger head")
)

// Reader is the ledger's read API. The auditor never writes to the
// ledger; it only derives results from it.
type Reader interface {
	Tally() []models.TallyRow
	Log(limit int) []models.LedgerEntry
	LatestSequence() uint64
}

// Auditor computes the winner from the ledger's deterministic tally
// ordering and records one-way approvals pinned to ledger sequence
// numbers.
type Auditor struct {
	ledger Reader

	mu        sync.Mutex
	approvals []models.Approval
}

func NewAuditor(ledger Reader) *Auditor {
	return &Auditor{ledger: ledger}
}

// ComputeWinner returns the top tally row. The tie-break inside Tally
// is total, so the winner is reproducible for a given log. An empty
// tally is reported as ErrNoVotesCast, never defaulted to an arbitrary
// candidate.
func (a *Auditor) ComputeWinner() (models.TallyRow, error) {
	tally := a.ledger.Tally()
	if len(tally) == 0 {
		return models.TallyRow{}, ErrNoVotesCast
	}
	return tally[0], nil
}

// Approve records the auditor's sign-off at a ledger cutoff. The
// stored winner and tally are projected from the entries at or before
// the cutoff, not from the live head, so votes committed after the
// cutoff stay auditable as post-approval rather than silently folding
// into the approved result. One-way: a cutoff at or below the last
// approved sequence fails with ErrStaleApproval.
func (a *Auditor) Approve(sequenceNumber uint64) (models.Approval, error) {
	if sequenceNumber == 0 {
		// A zero cutoff approves nothing
		return models.Approval{}, ErrStaleApproval
	}
	if sequenceNumber > a.ledger.LatestSequence() {
		return models.Approval{}, ErrFutureSequence
	}

	tally := a.tallyAt(sequenceNumber)
	if len(tally) == 0 {
		return models.Approval{}, ErrNoVotesCast
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.approvals); n > 0 && sequenceNumber <= a.approvals[n-1].SequenceNumber {
		return models.Approval{}, ErrStaleApproval
	}

	approval := models.Approval{
		SequenceNumber: sequenceNumber,
		WinnerID:       tally[0].CandidateID,
		Tally:          tally,
		ApprovedAt:     time.Now().UTC(),
	}
	a.approvals = append(a.approvals, approval)

	slog.Info("result approved",
		"sequence", approval.SequenceNumber,
		"winner", approval.WinnerID,
	)
	return approval, nil
}

// tallyAt projects the accepted entries at or before the cutoff into
// tally rows, in the same total order the ledger's Tally uses.
func (a *Auditor) tallyAt(cutoff uint64) []models.TallyRow {
	counts := make(map[string]uint64)
	for _, e := range a.ledger.Log(0) {
		if e.SequenceNumber > cutoff || e.Outcome != models.OutcomeAccepted {
			continue
		}
		counts[e.CandidateID]++
	}

	rows := make([]models.TallyRow, 0, len(counts))
	for id, n := range counts {
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

// Latest returns the most recent approval, if any.
func (a *Auditor) Latest() (models.Approval, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.approvals) == 0 {
		return models.Approval{}, false
	}
	return a.approvals[len(a.approvals)-1], true
}

// Approvals returns the full approval history, oldest first.
func (a *Auditor) Approvals() []models.Approval {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]models.Approval, len(a.approvals))
	copy(out, a.approvals)
	return out
}
