// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger commits votes exactly once and keeps the append-only
record of every attempt.

# Committing

CastVote takes the proof produced by a completed authentication
session; the ledger never re-runs authentication:

	entry, err := l.CastVote(proof, candidateID)

Preconditions are checked in order, first failure wins:

 1. The candidate must be registered (ErrUnknownCandidate)
 2. The identity must not have voted (ErrAlreadyVoted)

Rejected attempts still append a ledger entry, so the log reflects
everything that happened, not just what counted. Sequence numbers are
strictly increasing and gap-free across accepted and rejected entries.

# Atomicity

One mutex serializes the commit path. The has-voted check-and-set, the
tally increment, and the log append form a single critical section:
two concurrent votes for the same identity always resolve to one
accepted and one rejected, and no reader ever observes a partial
commit.

# Reading

	l.Tally()          // counts, sorted desc, candidate ID tie-break
	l.Log(50)          // newest 50 entries
	l.LatestSequence() // head of the log

The tally is a projection of the accepted entries, never stored as
independent truth.

# Persistence

A Journal persists the entry sequence. SQLJournal writes each entry to
the ledger_entry table before the commit becomes visible, and Replay
rebuilds the in-memory state at boot. NopJournal keeps everything in
memory for tests and ephemeral runs.
*/
package ledger
