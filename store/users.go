// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollhall/models"
)

// UserStore owns registered accounts.
type UserStore struct {
	q DBTX
}

func NewUserStore(q DBTX) *UserStore {
	return &UserStore{q: q}
}

// Create stores a new user. Uniqueness violations map to ErrEmailTaken or
// ErrUsernameTaken by the offending column.
func (s *UserStore) Create(username, email, passwordHash string) (models.User, error) {
	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := s.q.Exec(`
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if isUniqueViolation(err) {
		if strings.Contains(err.Error(), "email") {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, ErrUsernameTaken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

// GetByID loads a user by id.
func (s *UserStore) GetByID(userID string) (models.User, error) {
	return s.get(`
		SELECT id, username, email, password_hash, bio, avatar_url, created_at
		FROM users WHERE id = $1
	`, userID)
}

// GetByEmail loads a user by email, for login.
func (s *UserStore) GetByEmail(email string) (models.User, error) {
	return s.get(`
		SELECT id, username, email, password_hash, bio, avatar_url, created_at
		FROM users WHERE email = $1
	`, email)
}

// ExistsByUsername reports whether a username is taken.
func (s *UserStore) ExistsByUsername(username string) (bool, error) {
	var exists bool
	err := s.q.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)
	`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// UpdateProfile persists username, bio, and avatar changes.
func (s *UserStore) UpdateProfile(user models.User) error {
	res, err := s.q.Exec(`
		UPDATE users SET username = $1, bio = $2, avatar_url = $3 WHERE id = $4
	`, user.Username, nullable(user.Bio), nullable(user.AvatarURL), user.ID)
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserStore) get(query string, args ...any) (models.User, error) {
	var user models.User
	var bio, avatarURL sql.NullString

	err := s.q.QueryRow(query, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&bio, &avatarURL, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	user.Bio = bio.String
	user.AvatarURL = avatarURL.String
	return user, nil
}
