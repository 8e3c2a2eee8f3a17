// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/danielhkuo/pollhall/auth"
	"github.com/danielhkuo/pollhall/cliparse"
	"github.com/danielhkuo/pollhall/middleware"
	"github.com/danielhkuo/pollhall/models"
)

// resolveIdentity builds the acting identity for a request: the user id from
// a valid Bearer token (if any), plus the salted hash of the client address.
// An invalid or expired token resolves as anonymous rather than failing -
// handlers that require authentication check Identity.Authenticated.
func resolveIdentity(r *http.Request, cfg cliparse.Config) models.Identity {
	id := models.Identity{
		NetworkKey: auth.HashIP(middleware.GetClientIP(r), cfg.IPHashSalt),
	}

	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		if userID, err := auth.VerifyToken(token, cfg.TokenSecret); err == nil {
			id.UserID = userID
		}
	}

	return id
}

// requireUser resolves the identity and rejects unauthenticated callers.
// Returns ok=false after writing the 401 response.
func requireUser(w http.ResponseWriter, r *http.Request, cfg cliparse.Config) (models.Identity, bool) {
	id := resolveIdentity(r, cfg)
	if !id.Authenticated() {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return models.Identity{}, false
	}
	return id, true
}
