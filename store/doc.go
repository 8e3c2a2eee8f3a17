// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides the repositories over database/sql.

# Repositories

  - PollStore: poll records with embedded, ordered options
  - VoteLedger: one record per (poll, voter identity) pair
  - UserStore: registered accounts

Each repository wraps a DBTX, the query subset shared by *sql.DB and
*sql.Tx. This lets the voting engine run ledger lookups and counter deltas
inside a single transaction:

	tx, _ := db.Begin()
	defer tx.Rollback()
	polls := store.NewPollStore(tx)
	ledger := store.NewVoteLedger(tx)

# Counter Updates

ApplyOptionDelta issues a relative update (vote_count = vote_count + delta),
so two concurrent deltas on the same poll are both reflected. A schema CHECK
keeps counts non-negative.

# Uniqueness

The vote ledger carries UNIQUE (poll_id, voter_key); the dual-key policy
adds partial unique indexes on (poll_id, user_id) and (poll_id, ip_hash).
Constraint violations on insert surface as ErrDuplicateVote even when two
submissions race past the engine's lookups.

# Errors

Absence and conflict conditions are sentinel errors (ErrPollNotFound,
ErrUserNotFound, ErrVoteConflict, ErrDuplicateVote, ErrUsernameTaken,
ErrEmailTaken) matched with errors.Is at the handler boundary. Anything
else is a storage failure.
*/
package store
