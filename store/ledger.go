// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollhall/models"
)

// VoteLedger owns the vote records: one row per (poll, voter identity). It
// is authoritative for "who currently occupies which option"; the option
// counters are an aggregate kept in lockstep by the voting engine.
type VoteLedger struct {
	q DBTX
}

func NewVoteLedger(q DBTX) *VoteLedger {
	return &VoteLedger{q: q}
}

// Find returns the ledger entry for a voter key, or nil when the identity
// has not voted on the poll.
func (l *VoteLedger) Find(pollID, voterKey string) (*models.VoteRecord, error) {
	var rec models.VoteRecord
	var userID, ipHash sql.NullString

	err := l.q.QueryRow(`
		SELECT id, poll_id, user_id, ip_hash, voter_key, option_index, voted_at
		FROM vote_record WHERE poll_id = $1 AND voter_key = $2
	`, pollID, voterKey).Scan(
		&rec.ID, &rec.PollID, &userID, &ipHash, &rec.VoterKey, &rec.OptionIndex, &rec.VotedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote record: %w", err)
	}

	rec.UserID = userID.String
	rec.IPHash = ipHash.String
	return &rec, nil
}

// ExistsForUser reports whether a logged-in user has already voted on a poll.
func (l *VoteLedger) ExistsForUser(pollID, userID string) (bool, error) {
	return l.exists(`
		SELECT EXISTS(SELECT 1 FROM vote_record WHERE poll_id = $1 AND user_id = $2)
	`, pollID, userID)
}

// ExistsForIP reports whether a client address hash has already voted on a poll.
func (l *VoteLedger) ExistsForIP(pollID, ipHash string) (bool, error) {
	return l.exists(`
		SELECT EXISTS(SELECT 1 FROM vote_record WHERE poll_id = $1 AND ip_hash = $2)
	`, pollID, ipHash)
}

// Insert records a first vote. A uniqueness violation maps to
// ErrDuplicateVote - the engine normally checks first, this is the backstop
// for racing submissions.
func (l *VoteLedger) Insert(pollID string, voter models.Identity, optionIndex int) (models.VoteRecord, error) {
	rec := models.VoteRecord{
		ID:          uuid.NewString(),
		PollID:      pollID,
		UserID:      voter.UserID,
		IPHash:      voter.NetworkKey,
		VoterKey:    voter.Key(),
		OptionIndex: optionIndex,
		VotedAt:     time.Now().UTC(),
	}

	_, err := l.q.Exec(`
		INSERT INTO vote_record (id, poll_id, user_id, ip_hash, voter_key, option_index, voted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.PollID, nullable(rec.UserID), nullable(rec.IPHash), rec.VoterKey, rec.OptionIndex, rec.VotedAt)
	if isUniqueViolation(err) {
		return models.VoteRecord{}, ErrDuplicateVote
	}
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to insert vote record: %w", err)
	}
	return rec, nil
}

// UpdateOptionIndex moves a ledger entry from one option to another. The
// write is conditional on the entry still holding fromIndex: two racing
// changes by the same voter both read the same old index, and the guard turns
// the loser's stale write into ErrVoteConflict instead of a second decrement
// of the old counter. Must run before the counter deltas it justifies.
func (l *VoteLedger) UpdateOptionIndex(entryID string, fromIndex, toIndex int) error {
	res, err := l.q.Exec(`
		UPDATE vote_record SET option_index = $1, voted_at = $2
		WHERE id = $3 AND option_index = $4
	`, toIndex, time.Now().UTC(), entryID, fromIndex)
	if err != nil {
		return fmt.Errorf("failed to update vote record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVoteConflict
	}
	return nil
}

// DeleteForPoll clears every ledger entry of a poll. Used when a poll edit
// runs under the vote-change policy, where prior entries must not linger: a
// stale entry would make a returning voter's change decrement counters that
// only tally post-edit votes.
func (l *VoteLedger) DeleteForPoll(pollID string) error {
	if _, err := l.q.Exec(`DELETE FROM vote_record WHERE poll_id = $1`, pollID); err != nil {
		return fmt.Errorf("failed to clear vote records: %w", err)
	}
	return nil
}

// CountForPoll returns how many ledger entries a poll has.
func (l *VoteLedger) CountForPoll(pollID string) (int, error) {
	var count int
	err := l.q.QueryRow(`
		SELECT COUNT(*) FROM vote_record WHERE poll_id = $1
	`, pollID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count vote records: %w", err)
	}
	return count, nil
}

func (l *VoteLedger) exists(query string, args ...any) (bool, error) {
	var exists bool
	if err := l.q.QueryRow(query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check vote record: %w", err)
	}
	return exists, nil
}
