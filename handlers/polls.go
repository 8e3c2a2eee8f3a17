// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pollhall/cliparse"
	"github.com/danielhkuo/pollhall/middleware"
	"github.com/danielhkuo/pollhall/models"
	"github.com/danielhkuo/pollhall/store"
	"github.com/danielhkuo/pollhall/voting"
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	actor := resolveIdentity(r, h.cfg)
	if !h.cfg.Ownerless && !actor.Authenticated() {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := validatePollContent(req.Question, req.Options); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer tx.Rollback()

	poll, err := store.NewPollStore(tx).Create(req.Question, req.Options, actor.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := tx.Commit(); err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("poll created", "poll_id", poll.ID, "owner_id", poll.OwnerID)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	poll, err := store.NewPollStore(h.db).Get(pollID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := store.NewPollStore(h.db).ListAll()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// ListMyPolls handles GET /polls/my
func (h *PollHandler) ListMyPolls(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}

	polls, err := store.NewPollStore(h.db).ListByOwner(actor.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// UpdatePoll handles PUT /polls/{id}
// Replaces the question and the full options list; option counters restart
// at zero. Only the owner may update (unless running ownerless).
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	actor := resolveIdentity(r, h.cfg)

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if msg := validatePollContent(req.Question, req.Options); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer tx.Rollback()

	polls := store.NewPollStore(tx)

	poll, err := polls.Get(pollID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := voting.AuthorizeOwner(poll, actor, h.cfg.Ownerless); err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := polls.ReplaceContent(pollID, req.Question, req.Options)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Counters restart at zero on edit. Under the dual policy the old ledger
	// entries stay so prior voters still cannot revote; under the vote-change
	// policy they must go, or a returning voter's change would decrement
	// counters that only tally post-edit votes.
	if h.cfg.VotePolicy == models.PolicyUserKey {
		if err := store.NewVoteLedger(tx).DeleteForPoll(pollID); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("poll updated", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// DeletePoll handles DELETE /polls/{id}
// Cascades to the poll's options and vote records.
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	actor := resolveIdentity(r, h.cfg)

	polls := store.NewPollStore(h.db)

	poll, err := polls.Get(pollID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := voting.AuthorizeOwner(poll, actor, h.cfg.Ownerless); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := polls.Delete(pollID); err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)

	w.WriteHeader(http.StatusNoContent)
}

func validatePollContent(question string, options []string) string {
	if strings.TrimSpace(question) == "" {
		return "question is required"
	}
	if len(options) < 2 {
		return "at least two options are required"
	}
	for _, opt := range options {
		if strings.TrimSpace(opt) == "" {
			return "options must not be blank"
		}
	}
	return ""
}
