// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/pollhall/auth"
	"github.com/danielhkuo/pollhall/cliparse"
	"github.com/danielhkuo/pollhall/middleware"
	"github.com/danielhkuo/pollhall/models"
	"github.com/danielhkuo/pollhall/store"
)

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !strings.Contains(req.Email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	users := store.NewUserStore(h.db)

	// Username derives from the email local part; append a numeric suffix
	// until it is free. The DB unique constraint backstops the race.
	base := strings.SplitN(req.Email, "@", 2)[0]
	username := base
	for suffix := 1; ; suffix++ {
		taken, err := users.ExistsByUsername(username)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if !taken {
			break
		}
		username = base + strconv.Itoa(suffix)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	user, err := users.Create(username, req.Email, passwordHash)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.AuthResponse{
		Token: auth.SignToken(user.ID, h.cfg.TokenSecret, auth.DefaultTokenTTL),
		User:  user,
	})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := store.NewUserStore(h.db).GetByEmail(req.Email)
	if err == store.ErrUserNotFound {
		// Same message as a bad password; don't leak which emails exist
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		Token: auth.SignToken(user.ID, h.cfg.TokenSecret, auth.DefaultTokenTTL),
		User:  user,
	})
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}

	user, err := store.NewUserStore(h.db).GetByID(actor.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /users/me
// Only username (uniqueness-checked), bio, and avatar URL can change.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireUser(w, r, h.cfg)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	users := store.NewUserStore(h.db)
	user, err := users.GetByID(actor.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if req.Username != nil && strings.TrimSpace(*req.Username) != "" && *req.Username != user.Username {
		taken, err := users.ExistsByUsername(*req.Username)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if taken {
			middleware.ErrorResponse(w, http.StatusConflict, store.ErrUsernameTaken.Error())
			return
		}
		user.Username = *req.Username
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := users.UpdateProfile(user); err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("profile updated", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, user)
}
