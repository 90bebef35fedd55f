// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the unielect API.

# Handler Types

Each handler is a struct with its service dependencies injected:

  - IdentityHandler: Voter and candidate registration and lookup
  - VotingHandler: Two-factor login, capture submission, vote casting
  - AuditHandler: Leaderboard, winner, approvals, authentication log

Handlers are created via constructor functions:

	votingHandler := handlers.NewVotingHandler(sessions, votes, cfg)

# Voting Flow

A voter goes through three requests:

	POST /auth/login   → Login (password check, returns capture_token)
	POST /auth/capture → SubmitCapture (webcam frame, closes the session)
	POST /votes        → CastVote (redeems the token, commits the vote)

The capture token is single use. Once a vote is cast (or the session
fails), the token is dead and the voter must log in again. A rejected
vote still returns the ledger entry's sequence number, so the caller
can see the attempt in the audit log.

# Images

Registration and capture endpoints accept images as base64 strings,
with or without a data URL prefix ("data:image/jpeg;base64,...") as
the webcam widget sends them.

# Auditor Endpoints

	GET  /audit/leaderboard → cached tally and log tail
	GET  /audit/auth-log    → authentication attempt trail
	GET  /audit/winner      → current winner (404 before any votes)
	POST /audit/approve     → pin a sign-off to a sequence number
	GET  /audit/approvals   → approval history
*/
package handlers
