// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles driver selection and database schema creation.

# Opening a Database

Open selects the driver by configured type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"sqlite" uses the CGo-free modernc driver with foreign key enforcement and
a busy timeout; the connection pool is capped at one because sqlite allows
a single writer. "postgres" uses lib/pq.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.VotePolicy); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: Registered accounts
  - poll: Poll question and owner
  - poll_option: Ordered options with vote counters
  - vote_record: The vote ledger, one row per (poll, voter identity)

# Relationships

	users 1──* poll (owner)
	poll  1──* poll_option
	poll  1──* vote_record

poll_option and vote_record cascade on poll deletion.

# Uniqueness

Every policy gets UNIQUE (poll_id, voter_key) on the ledger. The dual-key
policy additionally creates partial unique indexes on (poll_id, user_id)
and (poll_id, ip_hash), so either colliding key rejects a vote at the
storage layer.
*/
package db
