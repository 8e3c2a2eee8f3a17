// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollhall/cliparse"
	"github.com/danielhkuo/pollhall/middleware"
	"github.com/danielhkuo/pollhall/models"
	"github.com/danielhkuo/pollhall/voting"
)

type VotingHandler struct {
	engine *voting.Engine
	cfg    cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{
		engine: voting.NewEngine(db, cfg.VotePolicy),
		cfg:    cfg,
	}
}

// Vote handles POST /polls/{id}/vote
// The voter identity is the authenticated user (if a valid Bearer token is
// present) plus the salted client address hash; which keys matter depends on
// the configured vote policy.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll id is required")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	voter := resolveIdentity(r, h.cfg)

	if err := h.engine.SubmitVote(pollID, req.OptionIndex, voter); err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("vote accepted", "poll_id", pollID, "authenticated", voter.Authenticated())

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Message: "Vote recorded",
	})
}
