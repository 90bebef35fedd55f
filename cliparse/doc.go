// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: SQLite file or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - LogHashSalt: Secret for hashed IDs in audit logs (required)
  - MatchThreshold: Biometric acceptance threshold in (0, 1] (default: 0.80)
  - CaptureTimeout: Window for the biometric factor (default: 10s)
  - PollInterval: Auditor leaderboard refresh interval (default: 5s)

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	-match-threshold Biometric acceptance threshold
	-capture-timeout Capture window in seconds
	-poll-interval   Leaderboard poll interval in seconds
	-log-salt        Audit log hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT                    → -p
	DATABASE_URL            → -d
	DATABASE_TYPE           → -t
	MATCH_THRESHOLD         → -match-threshold
	CAPTURE_TIMEOUT_SECONDS → -capture-timeout
	POLL_INTERVAL_SECONDS   → -poll-interval
	LOG_HASH_SALT           → -log-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - LOG_HASH_SALT is missing
  - the database type is not sqlite or postgres
  - the match threshold is outside (0, 1]
*/
package cliparse
