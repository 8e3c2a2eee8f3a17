// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/pollhall/models"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The vote identity policy decides which uniqueness constraints guard the
// vote ledger: both policies get UNIQUE (poll_id, voter_key); the dual-key
// policy additionally gets independent partial unique indexes on user id and
// client address hash, so a collision on either key is rejected at the
// storage layer even if two submissions race past the engine's lookups.
func CreateSchema(db *sql.DB, votePolicy string) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if votePolicy == models.PolicyDualKey {
		if _, err := db.Exec(dualKeyIndexes); err != nil {
			return fmt.Errorf("failed to create dual-key vote indexes: %w", err)
		}
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    bio TEXT,
    avatar_url TEXT,
    created_at TIMESTAMP NOT NULL
);

-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    owner_id TEXT REFERENCES users(id),
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_owner_id ON poll(owner_id);

-- Options, embedded in their poll and addressed by position
CREATE TABLE IF NOT EXISTS poll_option (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    opt_index INTEGER NOT NULL,
    label TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    PRIMARY KEY (poll_id, opt_index)
);

-- Vote ledger: one row per (poll, voter identity), the source of truth for
-- "has this identity already voted and for what option"
CREATE TABLE IF NOT EXISTS vote_record (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    user_id TEXT,
    ip_hash TEXT,
    voter_key TEXT NOT NULL,
    option_index INTEGER NOT NULL,
    voted_at TIMESTAMP NOT NULL,
    UNIQUE (poll_id, voter_key)
);

CREATE INDEX IF NOT EXISTS idx_vote_record_poll_id ON vote_record(poll_id);
`

const dualKeyIndexes = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_vote_record_poll_user
    ON vote_record(poll_id, user_id) WHERE user_id IS NOT NULL;
CREATE UNIQUE INDEX IF NOT EXISTS idx_vote_record_poll_ip
    ON vote_record(poll_id, ip_hash) WHERE ip_hash IS NOT NULL;
`
