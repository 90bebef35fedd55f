// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the unielect API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(deps, cfg)

# Endpoints

Health:

	GET /health

Registration and lookup:

	POST /voters          - Register voter (with enrollment capture)
	GET  /voters/{id}     - Voter profile
	POST /candidates      - Register candidate
	GET  /candidates      - List candidates
	GET  /candidates/{id} - Candidate profile

Two-factor authentication:

	POST /auth/login   - Credential factor, returns capture token
	POST /auth/capture - Biometric factor, closes the session

Voting:

	POST /votes       - Cast a vote (redeems the capture token)
	GET  /votes/tally - Current counts
	GET  /votes/log   - Ledger entries, newest first (?limit=N)

Auditor:

	GET  /audit/leaderboard - Cached tally and log tail
	GET  /audit/auth-log    - Authentication attempt trail
	GET  /audit/winner      - Current winner
	POST /audit/approve     - Record a sign-off at a sequence cutoff
	GET  /audit/approvals   - Approval history

# Handler Initialization

The router creates handler instances from the injected services:

	identityHandler := handlers.NewIdentityHandler(d.Store, cfg)
	votingHandler := handlers.NewVotingHandler(d.Sessions, d.Votes, cfg)
	auditHandler := handlers.NewAuditHandler(d.Auditor, d.Poller, d.AuthLog, cfg)

Deps carries the services wired in main, so tests can assemble the
same route table over in-memory implementations.
*/
package router
