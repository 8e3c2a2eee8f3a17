// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3320)
  - DatabaseURL: sqlite path or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - TokenSecret: Secret for session token HMAC (required)
  - IPHashSalt: Salt for client address hashing (required)
  - VotePolicy: "dual" (default) or "user"
  - Ownerless: Disable poll ownership checks

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	TOKEN_SECRET   → -token-secret
	IP_HASH_SALT   → -ip-salt
	VOTE_POLICY    → -policy
	OWNERLESS=true → -ownerless

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing or a toggle has
an unknown value (DATABASE_TYPE, VOTE_POLICY).
*/
package cliparse
