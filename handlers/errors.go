// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollhall/middleware"
	"github.com/danielhkuo/pollhall/store"
	"github.com/danielhkuo/pollhall/voting"
)

// writeDomainError maps domain error sentinels to HTTP statuses. Anything
// unrecognized is treated as a storage failure: 503 so the client may retry
// the whole request (the engine never retries internally).
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrPollNotFound), errors.Is(err, store.ErrUserNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, voting.ErrInvalidOptionIndex):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrDuplicateVote),
		errors.Is(err, store.ErrVoteConflict),
		errors.Is(err, store.ErrUsernameTaken),
		errors.Is(err, store.ErrEmailTaken):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, voting.ErrNotPollOwner):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, voting.ErrVoterRequired):
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
	default:
		slog.Error("storage failure", "error", err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Storage unavailable")
	}
}
