// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Pollhall API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: Registration, login, profile editing
  - PollHandler: Poll CRUD with ownership checks
  - VotingHandler: Vote submission through the voting engine

Handlers are created via constructor functions that accept *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Identity Resolution

Every request resolves an acting identity: the user id from a valid Bearer
token (if present) plus the salted hash of the client address. Handlers that
need an authenticated caller use requireUser; the vote path accepts
anonymous identities (allowed or rejected by the engine, depending on the
configured policy).

# Error Mapping

Domain sentinels map to HTTP statuses in one place (writeDomainError):

	not found            → 404
	invalid option index → 400
	duplicate vote       → 409
	not poll owner       → 403
	voter required       → 401
	anything else        → 503 (storage failure, client may retry)
*/
package handlers
