// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package audit is the election auditor's view: winner computation,
result approvals, and the polled leaderboard.

The auditor only reads the ledger (via the Reader interface); it never
writes entries.

# Winner

	winner, err := auditor.ComputeWinner()

The winner is the top tally row. The tally ordering is total (count
descending, candidate ID ascending on ties), so the winner is
reproducible for a given log. An empty tally is ErrNoVotesCast, never
an arbitrary default.

# Approvals

An approval pins the auditor's sign-off to a ledger sequence number:

	approval, err := auditor.Approve(sequenceNumber)

The stored winner and tally are projected from the entries at or
before the cutoff, so votes committed after it stay auditable as
post-approval instead of folding into the approved result. Approvals
are one-way: a cutoff at or below the last approved sequence fails
with ErrStaleApproval, and a cutoff past the ledger head fails with
ErrFutureSequence.

# Leaderboard

Poller refreshes a cached Leaderboard snapshot on a fixed interval:

	go poller.Run(ctx)
	board := poller.Snapshot()

Snapshots may lag the latest commit but are never partial.
*/
package audit
