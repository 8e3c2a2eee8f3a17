// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	ErrPollNotFound  = errors.New("poll not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrVoteConflict  = errors.New("vote record changed concurrently")
	ErrDuplicateVote = errors.New("identity has already voted on this poll")
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already registered")
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx. Stores
// are built over it so the voting engine can run the same store code inside
// a transaction.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// isUniqueViolation matches the constraint error text of both supported
// drivers (modernc sqlite and lib/pq).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
