// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Pollhall API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts:

	POST /auth/register - Create account, returns session token
	POST /auth/login    - Sign in, returns session token
	GET  /users/me      - Current profile (auth required)
	PUT  /users/me      - Edit username/bio/avatar (auth required)

Poll management:

	POST   /polls      - Create poll (auth required unless ownerless)
	GET    /polls      - List all polls
	GET    /polls/my   - List own polls (auth required)
	GET    /polls/{id} - Poll with options and counts
	PUT    /polls/{id} - Replace question/options (owner only)
	DELETE /polls/{id} - Delete with cascade (owner only)

Voting:

	POST /polls/{id}/vote - Submit a vote

# Handler Initialization

The router creates handler instances with dependency injection:

	userHandler := handlers.NewUserHandler(db, cfg)
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
