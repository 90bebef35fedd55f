// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles driver selection and schema creation.

# Opening

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

sqlite uses the pure-Go modernc.org/sqlite driver; postgres uses
lib/pq. The rest of the system only sees *sql.DB.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The DDL sticks to the dialect both engines accept.

# Tables

  - voter: Registered voters with password hash and template reference
  - candidate: Registered candidates, plus bio and portrait
  - ledger_entry: Append-only vote attempt log keyed by sequence number

ledger_entry rows are never updated or deleted; the sequence number is
the primary key and replay order.

# Indexes

  - ledger_entry.voter_id
  - ledger_entry.candidate_id
*/
package db
