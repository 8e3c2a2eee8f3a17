// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/pollhall/models"
	"github.com/danielhkuo/pollhall/store"
)

var (
	ErrInvalidOptionIndex = errors.New("invalid option index")
	ErrNotPollOwner       = errors.New("not authorized to modify this poll")
	ErrVoterRequired      = errors.New("a voter identity is required")
)

// Engine orchestrates vote submissions. Every submission runs as one
// transaction: the ledger lookup, the counter deltas, and the ledger write
// either all commit or none do, so the counters and the ledger can never
// disagree about which option a voter occupies.
type Engine struct {
	db     *sql.DB
	policy string
}

// NewEngine creates a voting engine with the given identity policy
// (models.PolicyDualKey or models.PolicyUserKey).
func NewEngine(db *sql.DB, policy string) *Engine {
	return &Engine{db: db, policy: policy}
}

// SubmitVote records, repeats, or moves a vote for one identity on one poll.
//
// Under PolicyDualKey a prior vote from either the user id or the network
// key is a hard rejection. Under PolicyUserKey re-submitting the same option
// is an idempotent no-op and a different option moves the vote; anonymous
// identities are rejected in that mode, since vote-changing keyed by a
// shared network address would let one voter overwrite another's vote.
func (e *Engine) SubmitVote(pollID string, optionIndex int, voter models.Identity) error {
	if voter.Key() == "" {
		return ErrVoterRequired
	}
	if e.policy == models.PolicyUserKey && !voter.Authenticated() {
		return ErrVoterRequired
	}

	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	polls := store.NewPollStore(tx)
	ledger := store.NewVoteLedger(tx)

	poll, err := polls.Get(pollID)
	if err != nil {
		return err
	}

	// Validate before any mutation
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return ErrInvalidOptionIndex
	}

	switch e.policy {
	case models.PolicyUserKey:
		if err := e.submitUserKeyed(polls, ledger, pollID, optionIndex, voter); err != nil {
			return err
		}
	default:
		if err := e.submitDualKeyed(polls, ledger, pollID, optionIndex, voter); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vote: %w", err)
	}
	return nil
}

// submitDualKeyed rejects any identity that collides on either key; there is
// no vote-changing in this mode.
func (e *Engine) submitDualKeyed(polls *store.PollStore, ledger *store.VoteLedger, pollID string, optionIndex int, voter models.Identity) error {
	if voter.NetworkKey != "" {
		voted, err := ledger.ExistsForIP(pollID, voter.NetworkKey)
		if err != nil {
			return err
		}
		if voted {
			return store.ErrDuplicateVote
		}
	}
	if voter.Authenticated() {
		voted, err := ledger.ExistsForUser(pollID, voter.UserID)
		if err != nil {
			return err
		}
		if voted {
			return store.ErrDuplicateVote
		}
	}

	if _, err := ledger.Insert(pollID, voter, optionIndex); err != nil {
		return err
	}
	if err := polls.ApplyOptionDelta(pollID, optionIndex, +1); err != nil {
		return err
	}

	slog.Info("vote recorded", "poll_id", pollID, "option_index", optionIndex)
	return nil
}

// submitUserKeyed inserts a first vote, treats a repeat of the same option
// as a no-op, and moves the vote when the option differs.
func (e *Engine) submitUserKeyed(polls *store.PollStore, ledger *store.VoteLedger, pollID string, optionIndex int, voter models.Identity) error {
	existing, err := ledger.Find(pollID, voter.Key())
	if err != nil {
		return err
	}

	switch {
	case existing == nil:
		if _, err := ledger.Insert(pollID, voter, optionIndex); err != nil {
			return err
		}
		if err := polls.ApplyOptionDelta(pollID, optionIndex, +1); err != nil {
			return err
		}
		slog.Info("vote recorded", "poll_id", pollID, "option_index", optionIndex)

	case existing.OptionIndex == optionIndex:
		// Same choice re-submitted; nothing to change.

	default:
		// The conditional ledger write goes first: under postgres two racing
		// changes serialize on this row, and the loser sees ErrVoteConflict
		// before any counter moves.
		if err := ledger.UpdateOptionIndex(existing.ID, existing.OptionIndex, optionIndex); err != nil {
			return err
		}
		if err := polls.ApplyOptionDelta(pollID, existing.OptionIndex, -1); err != nil {
			return err
		}
		if err := polls.ApplyOptionDelta(pollID, optionIndex, +1); err != nil {
			return err
		}
		slog.Info("vote changed",
			"poll_id", pollID,
			"from_index", existing.OptionIndex,
			"to_index", optionIndex,
		)
	}

	return nil
}
