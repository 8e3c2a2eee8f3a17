// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Vote policy constants. The policy is a startup configuration value and is
// never mixed: PolicyDualKey dedupes on user id AND network key with no
// vote-changing; PolicyUserKey dedupes on user id only and allows changing.
const (
	PolicyDualKey = "dual"
	PolicyUserKey = "user"
)

// Poll is a question with an ordered, fixed-at-vote-time set of options.
// Option order is meaningful: votes reference options by index.
type Poll struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Options   []Option  `json:"options"`
	OwnerID   string    `json:"owner_id,omitempty"` // empty in ownerless mode
	CreatedAt time.Time `json:"created_at"`
}

// Option is one selectable choice within a poll. VoteCount is a materialized
// aggregate of the vote ledger; only the voting engine changes it.
type Option struct {
	Text      string `json:"text"`
	VoteCount int64  `json:"vote_count"`
}

// VoteRecord binds one voter identity to its current option choice on one
// poll. At most one record exists per (poll, voter identity).
type VoteRecord struct {
	ID          string
	PollID      string
	UserID      string // empty for anonymous voters
	IPHash      string
	VoterKey    string
	OptionIndex int
	VotedAt     time.Time
}

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the resolved caller identity passed into every operation that
// needs one: an authenticated user id, an anonymous network key (salted hash
// of the client address), both, or neither.
type Identity struct {
	UserID     string
	NetworkKey string
}

// Authenticated reports whether the identity carries a logged-in user.
func (id Identity) Authenticated() bool {
	return id.UserID != ""
}

// Key returns the discriminated ledger key for this identity: the user id
// when authenticated, otherwise the network key.
func (id Identity) Key() string {
	if id.UserID != "" {
		return "user:" + id.UserID
	}
	if id.NetworkKey != "" {
		return "net:" + id.NetworkKey
	}
	return ""
}
