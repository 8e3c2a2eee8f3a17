// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pollhall API server.

Pollhall is a poll creation and voting service. Users create polls with
ordered options, voters cast at most one effective vote per poll, and the
per-option counters stay consistent with the vote ledger under concurrent
submissions.

# Starting the Server

The server reads configuration from environment variables (a .env file is
loaded if present) or CLI flags:

	DATABASE_URL=file:pollhall.db TOKEN_SECRET=... IP_HASH_SALT=... go run main.go

Or with flags:

	go run main.go -p 3320 -d "file:pollhall.db" -t sqlite

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - TOKEN_SECRET (-token-secret): Secret for session token HMAC
  - IP_HASH_SALT (-ip-salt): Salt for client address hashing

Optional settings:

  - PORT (-p): Server port (default: 3320)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - VOTE_POLICY (-policy): "dual" (default) or "user", see package voting
  - OWNERLESS (-ownerless): Disable poll ownership checks

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, users)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain entities and request/response types
  - voting: Vote submission engine and ownership guard
  - store: Repositories over database/sql (polls, vote ledger, users)
  - auth: Password hashing, session tokens, IP hashing
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
