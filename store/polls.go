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

// PollStore owns poll records and their embedded, ordered options. Option
// counters are only ever changed through ApplyOptionDelta; poll edits replace
// the options list wholesale.
type PollStore struct {
	q DBTX
}

func NewPollStore(q DBTX) *PollStore {
	return &PollStore{q: q}
}

// Create stores a new poll with zeroed option counters. ownerID may be empty
// in ownerless deployments.
func (s *PollStore) Create(question string, options []string, ownerID string) (models.Poll, error) {
	poll := models.Poll{
		ID:        uuid.NewString(),
		Question:  question,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.q.Exec(`
		INSERT INTO poll (id, question, owner_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, poll.ID, poll.Question, nullable(poll.OwnerID), poll.CreatedAt)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to insert poll: %w", err)
	}

	if err := s.insertOptions(poll.ID, options); err != nil {
		return models.Poll{}, err
	}

	for _, text := range options {
		poll.Options = append(poll.Options, models.Option{Text: text})
	}
	return poll, nil
}

// Get loads a poll with its options in index order.
func (s *PollStore) Get(pollID string) (models.Poll, error) {
	var poll models.Poll
	var ownerID sql.NullString

	err := s.q.QueryRow(`
		SELECT id, question, owner_id, created_at FROM poll WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Question, &ownerID, &poll.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrPollNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}
	poll.OwnerID = ownerID.String

	poll.Options, err = s.loadOptions(pollID)
	if err != nil {
		return models.Poll{}, err
	}
	return poll, nil
}

// ListAll returns every poll in creation order.
func (s *PollStore) ListAll() ([]models.Poll, error) {
	return s.list(`
		SELECT id, question, owner_id, created_at FROM poll ORDER BY created_at
	`)
}

// ListByOwner returns the polls created by one user, in creation order.
func (s *PollStore) ListByOwner(ownerID string) ([]models.Poll, error) {
	return s.list(`
		SELECT id, question, owner_id, created_at FROM poll
		WHERE owner_id = $1 ORDER BY created_at
	`, ownerID)
}

// ReplaceContent swaps a poll's question and full options list. All option
// counters restart at zero. What happens to the poll's ledger entries is the
// caller's decision: the dual policy keeps them so prior voters stay blocked,
// the vote-change policy clears them via VoteLedger.DeleteForPoll in the same
// transaction. Ownership must be checked before calling.
func (s *PollStore) ReplaceContent(pollID, question string, options []string) (models.Poll, error) {
	res, err := s.q.Exec(`UPDATE poll SET question = $1 WHERE id = $2`, question, pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to update poll: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Poll{}, ErrPollNotFound
	}

	if _, err := s.q.Exec(`DELETE FROM poll_option WHERE poll_id = $1`, pollID); err != nil {
		return models.Poll{}, fmt.Errorf("failed to clear poll options: %w", err)
	}
	if err := s.insertOptions(pollID, options); err != nil {
		return models.Poll{}, err
	}

	return s.Get(pollID)
}

// ApplyOptionDelta adds delta (+1 or -1) to a single option's counter. The
// update is relative, so concurrent deltas on the same poll are never lost.
func (s *PollStore) ApplyOptionDelta(pollID string, optionIndex, delta int) error {
	res, err := s.q.Exec(`
		UPDATE poll_option SET vote_count = vote_count + $1
		WHERE poll_id = $2 AND opt_index = $3
	`, delta, pollID, optionIndex)
	if err != nil {
		return fmt.Errorf("failed to apply option delta: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no option at index %d for poll %s", optionIndex, pollID)
	}
	return nil
}

// Delete removes a poll; options and vote records go with it via cascade.
// Ownership must be checked before calling.
func (s *PollStore) Delete(pollID string) error {
	res, err := s.q.Exec(`DELETE FROM poll WHERE id = $1`, pollID)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPollNotFound
	}
	return nil
}

func (s *PollStore) insertOptions(pollID string, options []string) error {
	for i, text := range options {
		_, err := s.q.Exec(`
			INSERT INTO poll_option (poll_id, opt_index, label, vote_count)
			VALUES ($1, $2, $3, 0)
		`, pollID, i, text)
		if err != nil {
			return fmt.Errorf("failed to insert option %d: %w", i, err)
		}
	}
	return nil
}

func (s *PollStore) loadOptions(pollID string) ([]models.Option, error) {
	rows, err := s.q.Query(`
		SELECT label, vote_count FROM poll_option
		WHERE poll_id = $1 ORDER BY opt_index
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	var options []models.Option
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.Text, &opt.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func (s *PollStore) list(query string, args ...any) ([]models.Poll, error) {
	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	var polls []models.Poll
	for rows.Next() {
		var poll models.Poll
		var ownerID sql.NullString
		if err := rows.Scan(&poll.ID, &poll.Question, &ownerID, &poll.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		poll.OwnerID = ownerID.String
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range polls {
		polls[i].Options, err = s.loadOptions(polls[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return polls, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
