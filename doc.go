// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the unielect API server.

Unielect is a university election service: voters authenticate with a
password plus a webcam capture, cast exactly one vote each, and every
attempt lands in an append-only ledger the election auditor reads.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:election.db LOG_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..." -t postgres -log-salt "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - LOG_HASH_SALT (-log-salt): Secret for hashed IDs in audit logs

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MATCH_THRESHOLD (-match-threshold): Biometric acceptance threshold (default: 0.80)
  - CAPTURE_TIMEOUT_SECONDS (-capture-timeout): Capture window (default: 10)
  - POLL_INTERVAL_SECONDS (-poll-interval): Auditor refresh interval (default: 5)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (identities, voting, audit)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - identity: Voter and candidate store (SQL and in-memory)
  - biometric: Capture matching behind the Matcher interface
  - session: Two-factor authentication state machine
  - ledger: Exactly-once vote commitment and audit log
  - audit: Winner computation, approvals, leaderboard polling
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
