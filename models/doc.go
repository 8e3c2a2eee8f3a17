// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain entities and request/response types.

# Domain Types

  - Poll: question, ordered options, owner reference
  - Option: display text and running vote count
  - VoteRecord: one voter identity's current choice on one poll
  - User: registered account
  - Identity: the resolved caller identity (user id and/or network key)

Identity.Key discriminates the ledger key: "user:<id>" for authenticated
callers, "net:<hash>" for anonymous ones.

# Request Types

  - RegisterRequest / LoginRequest
  - UpdateProfileRequest (pointer fields: nil means "leave unchanged")
  - CreatePollRequest / UpdatePollRequest
  - VoteRequest: option_index

# Response Types

  - AuthResponse: token plus user
  - VoteResponse: confirmation message
  - ErrorResponse: error, message

# Constants

Vote identity policies:

	PolicyDualKey = "dual"
	PolicyUserKey = "user"
*/
package models
